package finder

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productfinder-backend/internal/catalog"
	"productfinder-backend/internal/quiz"
	"productfinder-backend/internal/recommend"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return NewService(recommend.New(cat, quiz.DefaultNeeds()), "de")
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(newTestService(t)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

var forensicAnswers = map[string]any{
	"lawyerCount":       "10",
	"workFocus":         "forensic",
	"billingType":       "rvg",
	"notary":            1,
	"location":          "de",
	"averageHourlyRate": "150",
}

func TestRecommendEndpointLocalizesResult(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(t, r, "/api/v1/recommendations", gin.H{"answers": forensicAnswers, "lang": "en"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var rec Recommendation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, catalog.LocaleEN, rec.Locale)
	assert.Equal(t, "winmacs", rec.TopProduct.ID)
	assert.Equal(t, "WinMACS", rec.TopProduct.Name)
	require.Len(t, rec.Alternatives, 1)
	assert.Equal(t, "advoware", rec.Alternatives[0].ID)
	require.Len(t, rec.ValuePropositions, 2)
	assert.Equal(t, "20", rec.ValuePropositions[0].Value)
	assert.Equal(t, "3,000", rec.ValuePropositions[1].Value)
	assert.Equal(t, 15, rec.Maturity.MaxPoints)
	assert.False(t, rec.Fallback)
}

func TestRecommendEndpointDefaultsToGerman(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(t, r, "/api/v1/recommendations", gin.H{"answers": forensicAnswers})
	require.Equal(t, http.StatusOK, resp.Code)

	var rec Recommendation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, catalog.LocaleDE, rec.Locale)
	assert.Equal(t, "3.000", rec.ValuePropositions[1].Value)
	assert.Equal(t, "Stunden", rec.ValuePropositions[0].Unit)
}

func TestRecommendEndpointRejectsMissingAnswers(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(t, r, "/api/v1/recommendations", gin.H{"lang": "de"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "validation_error")
}

func TestRecommendEndpointEmptyAnswers(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(t, r, "/api/v1/recommendations", gin.H{"answers": gin.H{}})
	require.Equal(t, http.StatusOK, resp.Code)

	var rec Recommendation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "lexolution", rec.TopProduct.ID)
	assert.Len(t, rec.Alternatives, 2)
	assert.Empty(t, rec.MissingFeatures)
}

func TestValuePropositionsEndpoint(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(t, r, "/api/v1/value-propositions", gin.H{
		"answers":   gin.H{"lawyerCount": "5", "currentSoftware": "none", "maturity_q14": 0},
		"productId": "amberlo",
		"lang":      "de",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var payload struct {
		ProductID         string `json:"productId"`
		ValuePropositions []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"valuePropositions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "amberlo", payload.ProductID)
	require.Len(t, payload.ValuePropositions, 1)
	assert.Equal(t, "time", payload.ValuePropositions[0].Type)
	assert.Equal(t, "40", payload.ValuePropositions[0].Value)
}

func TestValuePropositionsUnknownProduct(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(t, r, "/api/v1/value-propositions", gin.H{
		"answers":   gin.H{},
		"productId": "excel",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCatalogEndpointBuildsComparisonTable(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog?lang=en", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var view struct {
		Lang     string `json:"lang"`
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
		Categories []struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			Features []struct {
				ID      string         `json:"id"`
				Support map[string]any `json:"support"`
			} `json:"features"`
		} `json:"categories"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, "en", view.Lang)
	require.Len(t, view.Products, 5)
	assert.Equal(t, "lexolution", view.Products[0].ID)
	require.NotEmpty(t, view.Categories)
	assert.Equal(t, "Core management", view.Categories[0].Name)
	row := view.Categories[0].Features[0]
	assert.Equal(t, "time_tracking", row.ID)
	assert.Len(t, row.Support, 5)
	assert.Equal(t, true, row.Support["winmacs"])
}

func TestQuizEndpoint(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quiz", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		Steps             []quiz.Step `json:"steps"`
		MaturityQuestions []string    `json:"maturityQuestions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.NotEmpty(t, payload.Steps)
	assert.Len(t, payload.MaturityQuestions, 15)
}
