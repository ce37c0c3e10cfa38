package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the backend.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration    *prometheus.HistogramVec
	collaboratorErrors *prometheus.CounterVec
	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	advisorRequests    *prometheus.CounterVec
	partialCommits     *prometheus.CounterVec
	alertsBuilt        prometheus.Counter
}

// AdvisorSnapshot summarizes the advisor counters for the ops endpoint.
type AdvisorSnapshot struct {
	TotalRequests float64 `json:"total_requests"`
	ErrorRate     float64 `json:"error_rate"`
	FallbackRate  float64 `json:"fallback_rate"`
	Period        string  `json:"period"`
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mayordomia_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		collaboratorErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mayordomia_collaborator_errors_total",
				Help: "Total errors from external collaborators.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mayordomia_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mayordomia_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		advisorRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mayordomia_advisor_requests_total",
				Help: "Advisor calls by outcome (success, error, fallback).",
			},
			[]string{"outcome"},
		),
		partialCommits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mayordomia_partial_commits_total",
				Help: "Two-phase writes that left an orphan transaction.",
			},
			[]string{"operation"},
		),
		alertsBuilt: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "mayordomia_alerts_built_total",
				Help: "Reminder list computations performed.",
			},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrCollaboratorError increments the collaborator error counter.
func (m *Metrics) IncrCollaboratorError(service string) {
	m.collaboratorErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrAdvisorRequest increments the advisor counter with an outcome label.
func (m *Metrics) IncrAdvisorRequest(outcome string) {
	m.advisorRequests.WithLabelValues(outcome).Inc()
}

// IncrPartialCommit records a two-phase write that stopped halfway.
func (m *Metrics) IncrPartialCommit(operation string) {
	m.partialCommits.WithLabelValues(operation).Inc()
}

// IncrAlertsBuilt records one reminder computation.
func (m *Metrics) IncrAlertsBuilt() {
	m.alertsBuilt.Inc()
}

// GetAdvisorSnapshot returns the current advisor counters for the
// GET /api/v1/metrics/advisor endpoint.
func (m *Metrics) GetAdvisorSnapshot() *AdvisorSnapshot {
	success := getCounterValue(m.advisorRequests, "success")
	errs := getCounterValue(m.advisorRequests, "error")
	fallbacks := getCounterValue(m.advisorRequests, "fallback")
	total := success + errs + fallbacks

	snap := &AdvisorSnapshot{TotalRequests: total, Period: "all_time"}
	if total > 0 {
		snap.ErrorRate = errs / total
		snap.FallbackRate = fallbacks / total
	}
	return snap
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
