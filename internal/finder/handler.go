package finder

import (
	"errors"

	"github.com/gin-gonic/gin"

	"productfinder-backend/internal/quiz"
	"productfinder-backend/internal/shared/server/respond"
)

// Handler exposes the quiz, catalog and recommendation endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches finder routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quiz", h.getQuiz)
	rg.GET("/catalog", h.getCatalog)
	rg.POST("/recommendations", h.recommend)
	rg.POST("/value-propositions", h.valuePropositions)
}

type recommendRequest struct {
	Answers quiz.Answers `json:"answers" binding:"required"`
	Lang    string       `json:"lang"`
}

type valuePropositionRequest struct {
	Answers   quiz.Answers `json:"answers" binding:"required"`
	ProductID string       `json:"productId" binding:"required"`
	Lang      string       `json:"lang"`
}

func (h *Handler) getQuiz(c *gin.Context) {
	respond.OK(c, gin.H{
		"steps":             h.Svc.Steps(),
		"maturityQuestions": quiz.MaturityQuestions(),
	})
}

func (h *Handler) getCatalog(c *gin.Context) {
	respond.OK(c, h.Svc.CatalogView(h.Svc.Locale(c.Query("lang"))))
}

func (h *Handler) recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "answers object is required")
		return
	}
	lang := req.Lang
	if lang == "" {
		lang = c.Query("lang")
	}
	rec := h.Svc.Recommend(req.Answers, h.Svc.Locale(lang))
	c.Set("topProduct", rec.TopProduct.ID)
	respond.OK(c, rec)
}

func (h *Handler) valuePropositions(c *gin.Context) {
	var req valuePropositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "answers and productId are required")
		return
	}
	props, err := h.Svc.ValuePropositions(req.Answers, req.ProductID, h.Svc.Locale(req.Lang))
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownProduct):
			respond.NotFound(c, "product not found", respond.FieldIssue{Field: "productId", Issue: "unknown"})
		default:
			respond.Internal(c, "failed to calculate value propositions", err)
		}
		return
	}
	respond.OK(c, gin.H{"productId": req.ProductID, "valuePropositions": props})
}
