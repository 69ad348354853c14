package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"productfinder-backend/internal/catalog"
	"productfinder-backend/internal/shared/server/respond"
	"productfinder-backend/internal/shared/telemetry"
)

// Pinger is a dependency that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is a named backing store checked by the health endpoint.
type Dependency struct {
	// Kind describes the backend, e.g. "postgres", "redis" or "memory".
	Kind   string
	Pinger Pinger
}

// Report is the health payload.
type Report struct {
	OK              bool   `json:"ok"`
	CatalogProducts int    `json:"catalogProducts"`
	Database        string `json:"database"`
	Sessions        string `json:"sessions"`
}

// Service encapsulates health-related checks.
type Service struct {
	catalog  *catalog.Catalog
	database Dependency
	sessions Dependency
	timeout  time.Duration
}

// NewService constructs a new health service.
func NewService(cat *catalog.Catalog, database, sessions Dependency) *Service {
	return &Service{catalog: cat, database: database, sessions: sessions, timeout: 2 * time.Second}
}

// Status checks every dependency. The service is healthy while the
// catalog is loaded and reachable stores answer.
func (s *Service) Status(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report := Report{OK: true}
	if s.catalog != nil {
		report.CatalogProducts = len(s.catalog.Products())
	}
	if report.CatalogProducts == 0 {
		report.OK = false
	}
	var ok bool
	report.Database, ok = check(ctx, "database", s.database)
	report.OK = report.OK && ok
	report.Sessions, ok = check(ctx, "sessions", s.sessions)
	report.OK = report.OK && ok
	return report
}

func check(ctx context.Context, name string, dep Dependency) (string, bool) {
	if dep.Pinger == nil {
		return dep.Kind, true
	}
	if err := dep.Pinger.Ping(ctx); err != nil {
		telemetry.Warn("health.check_failed", map[string]any{"dependency": name, "kind": dep.Kind, "error": err.Error()})
		return "unavailable", false
	}
	return dep.Kind, true
}

// Handler serves the health report, answering 503 when unhealthy.
func (s *Service) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		report := s.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	}
}
