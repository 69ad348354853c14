package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// EventType names a frontend interaction.
type EventType string

const (
	PageView       EventType = "page_view"
	QuizStart      EventType = "quiz_start"
	QuizComplete   EventType = "quiz_complete"
	OutboundClick  EventType = "outbound_click"
	ComparisonView EventType = "comparison_view"
	QuizAnswer     EventType = "quiz_answer"
	CTAClick       EventType = "cta_click"
	RestartQuiz    EventType = "restart_quiz"
	VisitLocation  EventType = "visit_location"
)

var knownTypes = map[EventType]bool{
	PageView:       true,
	QuizStart:      true,
	QuizComplete:   true,
	OutboundClick:  true,
	ComparisonView: true,
	QuizAnswer:     true,
	CTAClick:       true,
	RestartQuiz:    true,
	VisitLocation:  true,
}

// Valid reports whether t is an accepted event type.
func (t EventType) Valid() bool {
	return knownTypes[t]
}

var (
	ErrInvalidEvent = errors.New("invalid event")
)

// Event is one stored interaction.
type Event struct {
	ID        string          `json:"id"`
	SessionID string          `json:"sessionId"`
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Path      string          `json:"path,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Stats counts events per type.
type Stats struct {
	Total  int               `json:"total"`
	ByType map[EventType]int `json:"byType"`
}

// Repo persists events.
type Repo interface {
	Insert(ctx context.Context, event Event) error
	CountByType(ctx context.Context, since time.Time) (map[EventType]int, error)
}
