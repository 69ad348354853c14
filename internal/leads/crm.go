package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"productfinder-backend/internal/quiz"
)

// Field is one CRM form property.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

const (
	fieldRecommendedProduct = "empfohlenes_produkt"
	fieldUserType           = "user_type"
	maturityPrefix          = "maturity_q"
)

var propertyNames = map[string]string{
	quiz.QuestionLawyerCount:          "kanzleigroesse_anwaelte",
	quiz.QuestionRefaCount:            "kanzleigroesse_refas",
	quiz.QuestionNotaryCount:          "kanzleigroesse_notare",
	quiz.QuestionWorkFocus:            "kanzlei_ausrichtung",
	quiz.QuestionBillingType:          "abrechnungsart",
	quiz.QuestionNotary:               "notariat_vorhanden",
	quiz.QuestionLocation:             "standort_land",
	quiz.QuestionAverageHourlyRate:    "durchschnittlicher_stundensatz",
	quiz.QuestionCurrentSoftware:      "aktuell_genutzte_software",
	quiz.QuestionCurrentSoftwareOther: "aktuell_genutzte_software_sonstige",
	quiz.QuestionLanguage:             "quiz_language",
}

// PropertyName maps a question id to its CRM property. Maturity questions
// and unmapped ids keep their id.
func PropertyName(questionID string) string {
	if strings.HasPrefix(questionID, maturityPrefix) {
		return questionID
	}
	if name, ok := propertyNames[questionID]; ok {
		return name
	}
	return questionID
}

// BuildFields renders answers as CRM properties. The recommended product
// comes first, then user_type when the firm size is known, then every
// non-empty answer ordered by question id. Yes/no questions are sent as
// language-neutral "yes"/"no".
func BuildFields(answers quiz.Answers, topProductName string) []Field {
	fields := []Field{{Name: fieldRecommendedProduct, Value: topProductName}}

	if lawyers, ok := answers.Int(quiz.QuestionLawyerCount); ok {
		userType := "Kanzlei"
		if lawyers == 1 {
			userType = "Einzelanwalt"
		}
		fields = append(fields, Field{Name: fieldUserType, Value: userType})
	}

	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		value := quiz.Display(answers[id])
		if value == "" {
			continue
		}
		if strings.HasPrefix(id, maturityPrefix) || id == quiz.QuestionNotary {
			value = "no"
			if answers.IsYes(id) {
				value = "yes"
			}
		}
		fields = append(fields, Field{Name: PropertyName(id), Value: value})
	}
	return fields
}

// BookingURL appends the CRM prefill fields and campaign parameters to a
// product's calendar link. Later fields win on duplicate names.
func BookingURL(calendarURL string, fields []Field, topProductName string) (string, error) {
	u, err := url.Parse(calendarURL)
	if err != nil {
		return "", fmt.Errorf("parse calendar url: %w", err)
	}
	q := u.Query()
	for _, f := range fields {
		q.Set(f.Name, f.Value)
	}
	q.Set("utm_source", "ProductFinder")
	q.Set("utm_medium", "ProductFinder")
	q.Set("utm_campaign", "ProductFinder_Recommendation")
	q.Set("hs_latest_source_drill_down_1", "Productfinder")
	q.Set("hs_latest_source_drill_down_2", topProductName)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Submission is one form post to the CRM.
type Submission struct {
	Fields   []Field
	Email    string
	PageURI  string
	PageName string
}

// CRM receives leads.
type CRM interface {
	Configured() bool
	Submit(ctx context.Context, sub Submission) error
}

// ErrCRMNotConfigured is returned by Submit when portal or form id is missing.
var ErrCRMNotConfigured = errors.New("crm not configured")

// HubSpotConfig configures the forms submission endpoint.
type HubSpotConfig struct {
	BaseURL     string
	PortalID    string
	FormID      string
	AccessToken string
	Timeout     time.Duration
}

// HubSpotClient posts lead fields to the HubSpot forms API. With an access
// token the request is authenticated, otherwise it uses the public endpoint.
type HubSpotClient struct {
	cfg        HubSpotConfig
	httpClient *http.Client
}

// NewHubSpotClient constructs a HubSpotClient.
func NewHubSpotClient(ctx context.Context, cfg HubSpotConfig) *HubSpotClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.hsforms.com"
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if token := strings.TrimSpace(cfg.AccessToken); token != "" {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		httpClient.Timeout = cfg.Timeout
	}
	return &HubSpotClient{cfg: cfg, httpClient: httpClient}
}

// Configured reports whether portal and form ids are set to real values.
func (c *HubSpotClient) Configured() bool {
	return placeholderFree(c.cfg.PortalID, "YOUR_PORTAL_ID") && placeholderFree(c.cfg.FormID, "YOUR_FORM_ID")
}

func placeholderFree(v, placeholder string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != placeholder
}

type hubspotRequest struct {
	Fields  []hubspotField  `json:"fields"`
	Context *hubspotContext `json:"context,omitempty"`
}

type hubspotField struct {
	ObjectTypeID string `json:"objectTypeId,omitempty"`
	Name         string `json:"name"`
	Value        string `json:"value"`
}

type hubspotContext struct {
	PageURI  string `json:"pageUri,omitempty"`
	PageName string `json:"pageName,omitempty"`
}

// Submit posts the fields to the configured form.
func (c *HubSpotClient) Submit(ctx context.Context, sub Submission) error {
	if !c.Configured() {
		return ErrCRMNotConfigured
	}
	body := hubspotRequest{Fields: make([]hubspotField, 0, len(sub.Fields)+1)}
	for _, f := range sub.Fields {
		body.Fields = append(body.Fields, hubspotField{Name: f.Name, Value: f.Value})
	}
	if sub.Email != "" {
		body.Fields = append(body.Fields, hubspotField{ObjectTypeID: "0-1", Name: "email", Value: sub.Email})
	}
	if sub.PageURI != "" || sub.PageName != "" {
		body.Context = &hubspotContext{PageURI: sub.PageURI, PageName: sub.PageName}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/submissions/v3/integration/submit/%s/%s",
		c.cfg.BaseURL, url.PathEscape(c.cfg.PortalID), url.PathEscape(c.cfg.FormID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return fmt.Errorf("hubspot request timeout: %w", err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("hubspot http status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return nil
}
