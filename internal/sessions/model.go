package sessions

import (
	"context"
	"errors"
	"time"

	"productfinder-backend/internal/quiz"
)

var (
	// ErrNotFound is returned when a session does not exist or has expired.
	ErrNotFound = errors.New("session not found")
	// ErrConflict is returned when concurrent updates keep colliding.
	ErrConflict = errors.New("session update conflict")
)

// Session collects a visitor's quiz answers across steps.
type Session struct {
	ID        string       `json:"id"`
	Lang      string       `json:"lang,omitempty"`
	Answers   quiz.Answers `json:"answers"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Store persists sessions with a sliding TTL.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	// Update applies fn atomically to the stored session and saves the result.
	Update(ctx context.Context, id string, fn func(*Session) error) (Session, error)
	Ping(ctx context.Context) error
}

// Merge applies patch to the answers. A nil value removes the answer.
func Merge(answers quiz.Answers, patch map[string]any) quiz.Answers {
	out := answers.Clone()
	if out == nil {
		out = quiz.Answers{}
	}
	for id, value := range patch {
		if value == nil {
			delete(out, id)
			continue
		}
		out[id] = value
	}
	return out
}
