package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"productfinder-backend/internal/shared/metrics"
)

const (
	maxPayloadBytes = 8 << 10
	maxPathLength   = 512
)

// Service validates and records events.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Track stores an event for sessionID.
func (s *Service) Track(ctx context.Context, sessionID string, eventType EventType, payload json.RawMessage, path string) (Event, error) {
	if !eventType.Valid() {
		return Event{}, fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, eventType)
	}
	if strings.TrimSpace(sessionID) == "" {
		return Event{}, fmt.Errorf("%w: session id is required", ErrInvalidEvent)
	}
	payload = bytes.TrimSpace(payload)
	if bytes.Equal(payload, []byte("null")) {
		payload = nil
	}
	if len(payload) > maxPayloadBytes {
		return Event{}, fmt.Errorf("%w: payload exceeds %d bytes", ErrInvalidEvent, maxPayloadBytes)
	}
	if len(payload) > 0 && !json.Valid(payload) {
		return Event{}, fmt.Errorf("%w: payload is not valid json", ErrInvalidEvent)
	}
	path = truncatePath(path)

	event := Event{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Type:      eventType,
		Payload:   payload,
		Path:      path,
		CreatedAt: s.Now().UTC(),
	}
	if err := s.Repo.Insert(ctx, event); err != nil {
		return Event{}, err
	}
	metrics.IncTrackingEvent(string(eventType))
	return event, nil
}

// Stats counts events per type within the given window. A zero window
// counts everything.
func (s *Service) Stats(ctx context.Context, window time.Duration) (Stats, error) {
	var since time.Time
	if window > 0 {
		since = s.Now().UTC().Add(-window)
	}
	counts, err := s.Repo.CountByType(ctx, since)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{ByType: counts}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// truncatePath caps path at maxPathLength bytes without splitting a
// multi-byte character, so the stored value stays valid UTF-8.
func truncatePath(path string) string {
	path = strings.ToValidUTF8(path, "")
	if len(path) <= maxPathLength {
		return path
	}
	cut := maxPathLength
	for cut > 0 && !utf8.RuneStart(path[cut]) {
		cut--
	}
	return path[:cut]
}
