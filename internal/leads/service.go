package leads

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"productfinder-backend/internal/catalog"
	"productfinder-backend/internal/finder"
	"productfinder-backend/internal/quiz"
	"productfinder-backend/internal/shared/metrics"
	"productfinder-backend/internal/shared/telemetry"
	"productfinder-backend/internal/shared/util"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// Recommender renders a recommendation for a set of answers.
type Recommender interface {
	Recommend(answers quiz.Answers, locale catalog.Locale) finder.Recommendation
	Locale(raw string) catalog.Locale
}

// CaptureInput is a completed quiz submitted for follow-up.
type CaptureInput struct {
	SessionID string
	Answers   quiz.Answers
	Lang      string
	Email     string
	PageURI   string
}

// CaptureResult is returned to the visitor after a lead is stored.
type CaptureResult struct {
	LeadID         string                `json:"leadId"`
	CRMStatus      string                `json:"crmStatus"`
	BookingURL     string                `json:"bookingUrl,omitempty"`
	Recommendation finder.Recommendation `json:"recommendation"`
}

// Service stores leads and forwards them to the CRM.
type Service struct {
	Repo        Repo
	Recommender Recommender
	CRM         CRM
	Now         func() time.Time
}

// NewService constructs a Service. crm may be nil.
func NewService(repo Repo, recommender Recommender, crm CRM) *Service {
	return &Service{Repo: repo, Recommender: recommender, CRM: crm, Now: time.Now}
}

// Capture recommends, stores the lead and submits it to the CRM. CRM
// failures are recorded on the lead but never fail the capture.
func (s *Service) Capture(ctx context.Context, in CaptureInput) (CaptureResult, error) {
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return CaptureResult{}, ErrInvalidInput
		}
	}
	locale := s.Recommender.Locale(in.Lang)
	rec := s.Recommender.Recommend(in.Answers, locale)

	alternatives := make([]string, 0, len(rec.Alternatives))
	for _, alt := range rec.Alternatives {
		alternatives = append(alternatives, alt.ID)
	}
	lead := Lead{
		ID:           uuid.NewString(),
		SessionID:    in.SessionID,
		Email:        email,
		Locale:       string(locale),
		TopProduct:   rec.TopProduct.ID,
		Alternatives: alternatives,
		Answers:      in.Answers.Clone(),
		CRMStatus:    CRMSkipped,
		CreatedAt:    s.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, lead); err != nil {
		return CaptureResult{}, err
	}

	fields := BuildFields(in.Answers, rec.TopProduct.Name)
	status := s.submit(ctx, lead, Submission{Fields: fields, Email: email, PageURI: in.PageURI, PageName: "Product Finder"})
	if status != lead.CRMStatus {
		if err := s.Repo.UpdateCRMStatus(ctx, lead.ID, status); err != nil {
			telemetry.Error("lead.crm_status_update_failed", map[string]any{"lead_id": lead.ID, "error": err.Error()})
		}
	}
	metrics.IncLead(status)

	result := CaptureResult{LeadID: lead.ID, CRMStatus: status, Recommendation: rec}
	if rec.TopProduct.CalendarURL != "" {
		booking, err := BookingURL(rec.TopProduct.CalendarURL, fields, rec.TopProduct.Name)
		if err != nil {
			telemetry.Warn("lead.booking_url_failed", map[string]any{"lead_id": lead.ID, "error": err.Error()})
		} else {
			result.BookingURL = booking
		}
	}

	telemetry.Info("lead.captured", map[string]any{
		"lead_id":     lead.ID,
		"session_id":  lead.SessionID,
		"email_hash":  util.Fingerprint(lead.Email),
		"top_product": lead.TopProduct,
		"crm_status":  status,
		"lang":        lead.Locale,
	})
	return result, nil
}

func (s *Service) submit(ctx context.Context, lead Lead, sub Submission) string {
	if s.CRM == nil || !s.CRM.Configured() {
		telemetry.Warn("lead.crm_skipped", map[string]any{
			"lead_id": lead.ID,
			"reason":  "portal or form id not configured",
		})
		return CRMSkipped
	}
	if err := s.CRM.Submit(ctx, sub); err != nil {
		if errors.Is(err, ErrCRMNotConfigured) {
			return CRMSkipped
		}
		telemetry.Error("lead.crm_submit_failed", map[string]any{
			"lead_id": lead.ID,
			"error":   err.Error(),
		})
		return CRMFailed
	}
	return CRMSubmitted
}

// List returns recent leads. Non-positive limits use the default.
func (s *Service) List(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.Repo.ListRecent(ctx, limit)
}
