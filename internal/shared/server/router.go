package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"productfinder-backend/internal/finder"
	"productfinder-backend/internal/leads"
	"productfinder-backend/internal/services/health"
	"productfinder-backend/internal/sessions"
	"productfinder-backend/internal/shared/config"
	"productfinder-backend/internal/shared/metrics"
	"productfinder-backend/internal/shared/server/middleware"
	"productfinder-backend/internal/tracking"
)

// Rate limit groups.
const (
	GroupDefault = "DEFAULT"
	GroupLeads   = "LEADS"
	GroupEvents  = "EVENTS"
)

// RouterDeps holds the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config          config.Config
	Health          *health.Service
	FinderHandler   *finder.Handler
	SessionsHandler *sessions.Handler
	LeadsHandler    *leads.Handler
	TrackingHandler *tracking.Handler
	RateLimits      map[string]middleware.RateLimitRule
}

// DefaultRateLimits allows quiz traffic freely, events in bursts and leads rarely.
func DefaultRateLimits() map[string]middleware.RateLimitRule {
	return map[string]middleware.RateLimitRule{
		GroupDefault: {Rate: 10, Burst: 40},
		GroupEvents:  {Rate: 5, Burst: 50},
		GroupLeads:   {Rate: 0.05, Burst: 3},
	}
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	rules := deps.RateLimits
	if rules == nil {
		rules = DefaultRateLimits()
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Session(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	if deps.Health != nil {
		api.GET("/health", deps.Health.Handler())
	} else {
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
	}

	public := api.Group("")
	public.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules:        rules,
		DefaultGroup: GroupDefault,
		GroupFor: middleware.GroupByRoute(map[string]string{
			http.MethodPost + " /api/v1/leads":  GroupLeads,
			http.MethodPost + " /api/v1/events": GroupEvents,
		}),
		IPGroups: []string{GroupLeads},
	}))
	if deps.FinderHandler != nil {
		deps.FinderHandler.RegisterRoutes(public)
	}
	if deps.SessionsHandler != nil {
		deps.SessionsHandler.RegisterRoutes(public)
	}
	if deps.LeadsHandler != nil {
		deps.LeadsHandler.RegisterRoutes(public)
	}
	if deps.TrackingHandler != nil {
		deps.TrackingHandler.RegisterRoutes(public)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(deps.Config.AdminAPIKey))
	if deps.LeadsHandler != nil {
		deps.LeadsHandler.RegisterAdminRoutes(admin)
	}
	if deps.TrackingHandler != nil {
		deps.TrackingHandler.RegisterAdminRoutes(admin)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
