package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRecommendationCounts(t *testing.T) {
	before := testutil.ToFloat64(recommendationsTotal.WithLabelValues("winmacs", "false"))
	ObserveRecommendation("winmacs", false, 2*time.Millisecond)
	after := testutil.ToFloat64(recommendationsTotal.WithLabelValues("winmacs", "false"))
	if after-before != 1 {
		t.Fatalf("expected counter to grow by 1, got %v", after-before)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncLead("skipped")
	IncTrackingEvent("page_view")

	r := gin.New()
	r.GET("/metrics", Handler())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, name := range []string{"productfinder_leads_total", "productfinder_tracking_events_total", "go_goroutines"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s in metrics output", name)
		}
	}
}
