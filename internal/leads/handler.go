package leads

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"productfinder-backend/internal/quiz"
	"productfinder-backend/internal/shared/server/middleware"
	"productfinder-backend/internal/shared/server/respond"
)

// Handler exposes lead capture and the admin listing.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public lead route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/leads", h.capture)
}

// RegisterAdminRoutes attaches routes that require the admin key.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/leads", h.list)
}

type captureRequest struct {
	Answers quiz.Answers `json:"answers" binding:"required"`
	Lang    string       `json:"lang"`
	Email   string       `json:"email"`
	PageURI string       `json:"pageUri"`
}

func (h *Handler) capture(c *gin.Context) {
	var req captureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "answers object is required")
		return
	}
	result, err := h.Svc.Capture(c.Request.Context(), CaptureInput{
		SessionID: middleware.SessionIDFromContext(c),
		Answers:   req.Answers,
		Lang:      req.Lang,
		Email:     req.Email,
		PageURI:   req.PageURI,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Validation(c, "invalid email address", respond.FieldIssue{Field: "email", Issue: "invalid"})
		default:
			respond.Internal(c, "failed to store lead", err)
		}
		return
	}
	c.Set("leadId", result.LeadID)
	c.Set("topProduct", result.Recommendation.TopProduct.ID)
	respond.Created(c, result)
}

func (h *Handler) list(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respond.Validation(c, "limit must be a number")
			return
		}
		limit = parsed
	}
	items, err := h.Svc.List(c.Request.Context(), limit)
	if err != nil {
		respond.Internal(c, "failed to list leads", err)
		return
	}
	if items == nil {
		items = []Lead{}
	}
	respond.OK(c, gin.H{"items": items})
}
