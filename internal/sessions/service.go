package sessions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"productfinder-backend/internal/catalog"
	"productfinder-backend/internal/finder"
	"productfinder-backend/internal/quiz"
	"productfinder-backend/internal/shared/metrics"
	"productfinder-backend/internal/shared/telemetry"
)

// ErrInvalidInput is returned for malformed answer patches.
var ErrInvalidInput = errors.New("invalid input")

// Recommender renders a recommendation for a set of answers.
type Recommender interface {
	Recommend(answers quiz.Answers, locale catalog.Locale) finder.Recommendation
	Locale(raw string) catalog.Locale
}

// Service manages quiz sessions.
type Service struct {
	Store       Store
	Recommender Recommender
	Now         func() time.Time
}

// NewService constructs a Service.
func NewService(store Store, recommender Recommender) *Service {
	return &Service{Store: store, Recommender: recommender, Now: time.Now}
}

// Create starts a session, optionally seeded with answers.
func (s *Service) Create(ctx context.Context, lang string, answers quiz.Answers) (Session, error) {
	if err := validatePatch(answers); err != nil {
		return Session{}, err
	}
	now := s.Now().UTC()
	session := Session{
		ID:        uuid.NewString(),
		Lang:      string(s.Recommender.Locale(lang)),
		Answers:   Merge(nil, answers),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Create(ctx, session); err != nil {
		return Session{}, err
	}
	telemetry.Info("session.created", map[string]any{"quiz_session_id": session.ID, "lang": session.Lang})
	return session, nil
}

// Get returns a session.
func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	return s.Store.Get(ctx, id)
}

// UpdateAnswers merges patch into the stored answers. lang, when set,
// switches the session language.
func (s *Service) UpdateAnswers(ctx context.Context, id string, patch map[string]any, lang string) (Session, error) {
	if err := validatePatch(patch); err != nil {
		return Session{}, err
	}
	updated, err := s.Store.Update(ctx, id, func(session *Session) error {
		session.Answers = Merge(session.Answers, patch)
		if strings.TrimSpace(lang) != "" {
			session.Lang = string(s.Recommender.Locale(lang))
		}
		session.UpdatedAt = s.Now().UTC()
		return nil
	})
	if err != nil {
		return Session{}, err
	}
	metrics.IncSessionUpdate()
	return updated, nil
}

// Recommendation computes a recommendation from the session's current
// answers. An empty lang uses the session language.
func (s *Service) Recommendation(ctx context.Context, id, lang string) (finder.Recommendation, error) {
	session, err := s.Store.Get(ctx, id)
	if err != nil {
		return finder.Recommendation{}, err
	}
	if strings.TrimSpace(lang) == "" {
		lang = session.Lang
	}
	return s.Recommender.Recommend(session.Answers, s.Recommender.Locale(lang)), nil
}

func validatePatch(patch map[string]any) error {
	for id := range patch {
		if strings.TrimSpace(id) == "" {
			return ErrInvalidInput
		}
	}
	return nil
}
