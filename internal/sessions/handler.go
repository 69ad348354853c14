package sessions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"productfinder-backend/internal/quiz"
	"productfinder-backend/internal/shared/server/respond"
)

// Handler exposes quiz session endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sessions", h.create)
	rg.GET("/sessions/:id", h.get)
	rg.PATCH("/sessions/:id/answers", h.updateAnswers)
	rg.GET("/sessions/:id/recommendation", h.recommendation)
}

type createRequest struct {
	Lang    string       `json:"lang"`
	Answers quiz.Answers `json:"answers"`
}

type updateRequest struct {
	Lang    string         `json:"lang"`
	Answers map[string]any `json:"answers" binding:"required"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Validation(c, "invalid session payload")
			return
		}
	}
	session, err := h.Svc.Create(c.Request.Context(), req.Lang, req.Answers)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.Created(c, session)
}

func (h *Handler) get(c *gin.Context) {
	session, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, session)
}

func (h *Handler) updateAnswers(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "answers object is required")
		return
	}
	session, err := h.Svc.UpdateAnswers(c.Request.Context(), c.Param("id"), req.Answers, req.Lang)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, session)
}

func (h *Handler) recommendation(c *gin.Context) {
	rec, err := h.Svc.Recommendation(c.Request.Context(), c.Param("id"), c.Query("lang"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set("topProduct", rec.TopProduct.ID)
	respond.OK(c, rec)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.NotFound(c, "session not found")
	case errors.Is(err, ErrInvalidInput):
		respond.Validation(c, "answer ids must not be empty")
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, respond.CodeConflict, "session was modified concurrently, retry", nil)
	default:
		respond.Internal(c, "session store unavailable", err)
	}
}
