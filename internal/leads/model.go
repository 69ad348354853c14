package leads

import (
	"context"
	"errors"
	"time"

	"productfinder-backend/internal/quiz"
)

// CRM delivery outcomes recorded on a lead.
const (
	CRMSubmitted = "submitted"
	CRMSkipped   = "skipped"
	CRMFailed    = "failed"
)

var (
	ErrNotFound     = errors.New("lead not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Lead is a completed quiz handed over to sales.
type Lead struct {
	ID           string       `json:"id"`
	SessionID    string       `json:"sessionId,omitempty"`
	Email        string       `json:"email,omitempty"`
	Locale       string       `json:"lang"`
	TopProduct   string       `json:"topProduct"`
	Alternatives []string     `json:"alternatives"`
	Answers      quiz.Answers `json:"answers"`
	CRMStatus    string       `json:"crmStatus"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// Repo persists leads.
type Repo interface {
	Create(ctx context.Context, lead Lead) error
	UpdateCRMStatus(ctx context.Context, id, status string) error
	ListRecent(ctx context.Context, limit int) ([]Lead, error)
	Ping(ctx context.Context) error
}
