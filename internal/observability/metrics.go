package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "safeland"

// Metrics holds the Prometheus collectors for the HTTP surface and the advisory pipeline.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec   // labels: route, method, status
	HTTPDuration *prometheus.HistogramVec // labels: route, method

	LLMRequests *prometheus.CounterVec   // labels: use_case, outcome={ok,error}
	LLMDuration *prometheus.HistogramVec // labels: use_case

	ExtractionFallbacks *prometheus.CounterVec // labels: use_case
	SchemaIssues        *prometheus.CounterVec // labels: use_case

	RiskLookups *prometheus.CounterVec // labels: source
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build many instances.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"route", "method"}),
		LLMRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Chat completion calls by use case and outcome.",
		}, []string{"use_case", "outcome"}),
		LLMDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "Chat completion latency including stream draining.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"use_case"}),
		ExtractionFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_fallbacks_total",
			Help:      "Completions replaced by the fixed fallback result.",
		}, []string{"use_case"}),
		SchemaIssues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_schema_issues_total",
			Help:      "Parsed completions that did not match the expected JSON shape.",
		}, []string{"use_case"}),
		RiskLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_lookups_total",
			Help:      "Risk lookups by record source.",
		}, []string{"source"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.HTTPRequests,
		m.HTTPDuration,
		m.LLMRequests,
		m.LLMDuration,
		m.ExtractionFallbacks,
		m.SchemaIssues,
		m.RiskLookups,
	}
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveCompletion records one chat completion call.
func (m *Metrics) ObserveCompletion(useCase, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.LLMRequests.WithLabelValues(useCase, outcome).Inc()
	m.LLMDuration.WithLabelValues(useCase).Observe(elapsed.Seconds())
}

// ObserveExtractionFallback counts a substituted fallback result.
func (m *Metrics) ObserveExtractionFallback(useCase string) {
	if m == nil {
		return
	}
	m.ExtractionFallbacks.WithLabelValues(useCase).Inc()
}

// ObserveSchemaIssue counts a completion whose JSON drifted from the expected shape.
func (m *Metrics) ObserveSchemaIssue(useCase string) {
	if m == nil {
		return
	}
	m.SchemaIssues.WithLabelValues(useCase).Inc()
}

// ObserveRiskLookup counts a resolved risk record.
func (m *Metrics) ObserveRiskLookup(source string) {
	if m == nil {
		return
	}
	m.RiskLookups.WithLabelValues(source).Inc()
}
