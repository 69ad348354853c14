package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productfinder-backend/internal/shared/config"
)

func devConfig() config.Config {
	return config.Config{
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		SessionTTL:      time.Hour,
		DefaultLocale:   "de",
		AdminAPIKey:     "admin",
	}
}

func TestBuildDevUsesMemoryStores(t *testing.T) {
	app, err := Build(context.Background(), devConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Nil(t, app.DB)
	assert.Nil(t, app.Redis)
	require.NotNil(t, app.Router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var report map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, true, report["ok"])
	assert.Equal(t, float64(5), report["catalogProducts"])
	assert.Equal(t, "memory", report["database"])
	assert.Equal(t, "memory", report["sessions"])
	assert.NotEmpty(t, resp.Header().Get("X-Session-Id"))
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	cfg := devConfig()
	cfg.Env = "production"
	_, err := Build(context.Background(), cfg)
	assert.Error(t, err)
}

func TestBuildRejectsBrokenCatalog(t *testing.T) {
	cfg := devConfig()
	cfg.CatalogFile = t.TempDir() + "/missing.yaml"
	_, err := Build(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRouterServesFinderFlow(t *testing.T) {
	app, err := Build(context.Background(), devConfig())
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"answers": map[string]any{"location": "ch", "lawyerCount": "3"},
		"lang":    "en",
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var rec struct {
		TopProduct struct {
			ID string `json:"id"`
		} `json:"topProduct"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Contains(t, []string{"winjur", "amberlo"}, rec.TopProduct.ID)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/events/stats", nil)
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "productfinder_recommendations_total")
}
