package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "productfinder"

var (
	registry = prometheus.NewRegistry()

	recommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_total",
		Help:      "Recommendations computed, by top product.",
	}, []string{"top_product", "fallback"})

	recommendationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "recommendation_duration_seconds",
		Help:      "Time spent ranking products for one answer set.",
		Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .05},
	})

	valuePropositionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "value_propositions_total",
		Help:      "Value proposition entries produced, by type.",
	}, []string{"type"})

	leadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_total",
		Help:      "Leads submitted, by CRM delivery status.",
	}, []string{"crm_status"})

	trackingEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_events_total",
		Help:      "Tracking events recorded, by event type.",
	}, []string{"event_type"})

	sessionUpdatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_updates_total",
		Help:      "Answer updates applied to quiz sessions.",
	})

	httpPanicsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_panics_total",
		Help:      "Handler panics recovered, by route.",
	}, []string{"route"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		recommendationsTotal,
		recommendationDuration,
		valuePropositionsTotal,
		leadsTotal,
		trackingEventsTotal,
		sessionUpdatesTotal,
		httpPanicsTotal,
	)
}

// ObserveRecommendation records one computed recommendation.
func ObserveRecommendation(topProduct string, fallback bool, took time.Duration) {
	recommendationsTotal.WithLabelValues(topProduct, strconv.FormatBool(fallback)).Inc()
	recommendationDuration.Observe(took.Seconds())
}

// IncValueProposition counts one emitted value proposition entry.
func IncValueProposition(kind string) {
	valuePropositionsTotal.WithLabelValues(kind).Inc()
}

// IncLead counts a stored lead with its CRM outcome.
func IncLead(crmStatus string) {
	leadsTotal.WithLabelValues(crmStatus).Inc()
}

// IncTrackingEvent counts a recorded tracking event.
func IncTrackingEvent(eventType string) {
	trackingEventsTotal.WithLabelValues(eventType).Inc()
}

// IncSessionUpdate counts an answer update on a quiz session.
func IncSessionUpdate() {
	sessionUpdatesTotal.Inc()
}

// IncPanic counts a recovered handler panic.
func IncPanic(route string) {
	httpPanicsTotal.WithLabelValues(route).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}

// Registry returns the registry backing Handler.
func Registry() *prometheus.Registry {
	return registry
}
