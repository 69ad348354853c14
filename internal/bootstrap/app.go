package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"productfinder-backend/internal/catalog"
	"productfinder-backend/internal/finder"
	"productfinder-backend/internal/leads"
	"productfinder-backend/internal/quiz"
	"productfinder-backend/internal/recommend"
	"productfinder-backend/internal/services/health"
	"productfinder-backend/internal/sessions"
	"productfinder-backend/internal/shared/config"
	"productfinder-backend/internal/shared/server"
	"productfinder-backend/internal/shared/storage/db"
	"productfinder-backend/internal/shared/telemetry"
	"productfinder-backend/internal/tracking"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Redis           *redis.Client
	Catalog         *catalog.Catalog
	Engine          *recommend.Engine
	FinderService   *finder.Service
	SessionStore    sessions.Store
	SessionsService *sessions.Service
	LeadsRepo       leads.Repo
	LeadsService    *leads.Service
	TrackingRepo    tracking.Repo
	TrackingService *tracking.Service
	Health          *health.Service
}

// Build loads the catalog, connects optional stores and wires handlers.
// Without DATABASE_URL or REDIS_URL the dev environment falls back to
// in-memory stores; other environments fail fast.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	telemetry.Info("bootstrap.catalog_loaded", map[string]any{
		"products": len(cat.Products()),
		"features": len(cat.Features()),
		"source":   catalogSource(cfg.CatalogFile),
	})

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	redisClient, err := buildRedis(ctx, cfg)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	engine := recommend.New(cat, quiz.DefaultNeeds())
	app := &App{
		Config:        cfg,
		DB:            sqlDB,
		Redis:         redisClient,
		Catalog:       cat,
		Engine:        engine,
		FinderService: finder.NewService(engine, cfg.DefaultLocale),
	}
	buildServices(ctx, app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Health:          app.Health,
		FinderHandler:   finder.NewHandler(app.FinderService),
		SessionsHandler: sessions.NewHandler(app.SessionsService),
		LeadsHandler:    leads.NewHandler(app.LeadsService),
		TrackingHandler: tracking.NewHandler(app.TrackingService),
	})
	return app, nil
}

// Close releases database and redis connections.
func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_memory", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_memory", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		telemetry.Warn("bootstrap.sessions_memory", map[string]any{"reason": "REDIS_URL empty"})
		return nil, nil
	}
	client, err := sessions.OpenRedis(ctx, cfg.RedisURL)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.sessions_memory", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return client, nil
}

func buildServices(ctx context.Context, app *App) {
	cfg := app.Config
	dbDep := health.Dependency{Kind: "memory"}
	sessionDep := health.Dependency{Kind: "memory"}

	if app.DB != nil {
		app.LeadsRepo = &leads.PGRepo{DB: app.DB}
		app.TrackingRepo = &tracking.PGRepo{DB: app.DB}
		dbDep = health.Dependency{Kind: "postgres", Pinger: app.LeadsRepo}
	} else {
		app.LeadsRepo = leads.NewMemoryRepo()
		app.TrackingRepo = tracking.NewMemoryRepo()
	}

	if app.Redis != nil {
		app.SessionStore = sessions.NewRedisStore(app.Redis, cfg.SessionTTL)
		sessionDep = health.Dependency{Kind: "redis", Pinger: app.SessionStore}
	} else {
		app.SessionStore = sessions.NewMemoryStore(cfg.SessionTTL, nil)
	}

	crm := leads.NewHubSpotClient(ctx, leads.HubSpotConfig{
		BaseURL:     cfg.HubSpotBaseURL,
		PortalID:    cfg.HubSpotPortalID,
		FormID:      cfg.HubSpotFormID,
		AccessToken: cfg.HubSpotAccessToken,
	})
	if !crm.Configured() {
		telemetry.Warn("bootstrap.crm_disabled", map[string]any{"reason": "HUBSPOT_PORTAL_ID or HUBSPOT_FORM_ID not set"})
	}

	app.SessionsService = sessions.NewService(app.SessionStore, app.FinderService)
	app.LeadsService = leads.NewService(app.LeadsRepo, app.FinderService, crm)
	app.TrackingService = tracking.NewService(app.TrackingRepo)
	app.Health = health.NewService(app.Catalog, dbDep, sessionDep)
}

func catalogSource(path string) string {
	if strings.TrimSpace(path) == "" {
		return "embedded"
	}
	return path
}

func closeDB(sqlDB *sql.DB) {
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
