package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productfinder-backend/internal/catalog"
	"productfinder-backend/internal/finder"
	"productfinder-backend/internal/quiz"
	"productfinder-backend/internal/recommend"
	"productfinder-backend/internal/shared/server/middleware"
)

type crmStub struct {
	mu         sync.Mutex
	configured bool
	err        error
	subs       []Submission
}

func (s *crmStub) Configured() bool { return s.configured }

func (s *crmStub) Submit(_ context.Context, sub Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, sub)
	return s.err
}

func setupLeadsRouter(t *testing.T, crm CRM) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cat, err := catalog.Default()
	require.NoError(t, err)
	repo := NewMemoryRepo()
	svc := NewService(repo, finder.NewService(recommend.New(cat, quiz.DefaultNeeds()), "de"), crm)
	h := NewHandler(svc)

	r := gin.New()
	r.Use(middleware.Session())
	h.RegisterRoutes(r.Group("/api/v1"))
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AdminAuth("admin-key"))
	h.RegisterAdminRoutes(admin)
	return r, repo
}

func postLead(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", "visitor-7")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

var forensicAnswers = gin.H{
	"lawyerCount": "10",
	"workFocus":   "forensic",
	"billingType": "rvg",
	"notary":      1,
	"location":    "de",
}

func TestCaptureSubmitsToCRM(t *testing.T) {
	crm := &crmStub{configured: true}
	r, repo := setupLeadsRouter(t, crm)

	resp := postLead(t, r, gin.H{"answers": forensicAnswers, "lang": "de", "email": "kanzlei@example.com"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var result CaptureResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.NotEmpty(t, result.LeadID)
	assert.Equal(t, CRMSubmitted, result.CRMStatus)
	assert.Equal(t, "winmacs", result.Recommendation.TopProduct.ID)

	booking, err := url.Parse(result.BookingURL)
	require.NoError(t, err)
	assert.Equal(t, "WinMACS", booking.Query().Get("empfohlenes_produkt"))
	assert.Equal(t, "yes", booking.Query().Get("notariat_vorhanden"))

	require.Len(t, crm.subs, 1)
	assert.Equal(t, "kanzlei@example.com", crm.subs[0].Email)
	assert.Equal(t, Field{Name: "empfohlenes_produkt", Value: "WinMACS"}, crm.subs[0].Fields[0])

	stored, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "visitor-7", stored[0].SessionID)
	assert.Equal(t, CRMSubmitted, stored[0].CRMStatus)
	assert.Equal(t, []string{"advoware"}, stored[0].Alternatives)
}

func TestCaptureSkipsUnconfiguredCRM(t *testing.T) {
	crm := &crmStub{configured: false}
	r, repo := setupLeadsRouter(t, crm)

	resp := postLead(t, r, gin.H{"answers": forensicAnswers})
	require.Equal(t, http.StatusCreated, resp.Code)

	var result CaptureResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, CRMSkipped, result.CRMStatus)
	assert.Empty(t, crm.subs)

	stored, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, CRMSkipped, stored[0].CRMStatus)
}

func TestCaptureSurvivesCRMFailure(t *testing.T) {
	crm := &crmStub{configured: true, err: errors.New("hubspot down")}
	r, repo := setupLeadsRouter(t, crm)

	resp := postLead(t, r, gin.H{"answers": forensicAnswers})
	require.Equal(t, http.StatusCreated, resp.Code)

	var result CaptureResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, CRMFailed, result.CRMStatus)

	stored, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, CRMFailed, stored[0].CRMStatus)
}

func TestCaptureValidation(t *testing.T) {
	r, _ := setupLeadsRouter(t, nil)

	assert.Equal(t, http.StatusBadRequest, postLead(t, r, gin.H{"lang": "de"}).Code)
	assert.Equal(t, http.StatusBadRequest, postLead(t, r, gin.H{"answers": gin.H{}, "email": "not-an-email"}).Code)
}

func TestAdminListRequiresKey(t *testing.T) {
	r, _ := setupLeadsRouter(t, nil)
	require.Equal(t, http.StatusCreated, postLead(t, r, gin.H{"answers": forensicAnswers}).Code)
	require.Equal(t, http.StatusCreated, postLead(t, r, gin.H{"answers": gin.H{"location": "ch"}}).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads?limit=1", nil)
	req.Header.Set("Authorization", "Bearer admin-key")
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		Items []Lead `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Items, 1)
	assert.Contains(t, []string{"winjur", "amberlo"}, payload.Items[0].TopProduct, "newest lead first")
}
