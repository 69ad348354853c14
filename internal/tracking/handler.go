package tracking

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"productfinder-backend/internal/shared/server/middleware"
	"productfinder-backend/internal/shared/server/respond"
)

// Handler exposes event ingestion and stats.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public ingestion route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/events", h.track)
}

// RegisterAdminRoutes attaches routes that require the admin key.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/events/stats", h.stats)
}

type trackRequest struct {
	Type    EventType       `json:"type" binding:"required"`
	Payload json.RawMessage `json:"payload"`
	Path    string          `json:"path"`
}

func (h *Handler) track(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "event type is required")
		return
	}
	event, err := h.Svc.Track(c.Request.Context(), middleware.SessionIDFromContext(c), req.Type, req.Payload, req.Path)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEvent):
			respond.Validation(c, err.Error())
		default:
			respond.Internal(c, "failed to record event", err)
		}
		return
	}
	respond.Accepted(c, gin.H{"id": event.ID})
}

func (h *Handler) stats(c *gin.Context) {
	var window time.Duration
	if raw := c.Query("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed < 0 {
			respond.Validation(c, "window must be a duration like 24h")
			return
		}
		window = parsed
	}
	stats, err := h.Svc.Stats(c.Request.Context(), window)
	if err != nil {
		respond.Internal(c, "failed to load event stats", err)
		return
	}
	respond.OK(c, stats)
}
