package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcomes recorded by the tracking flow.
const (
	OutcomeFound       = "found"
	OutcomeNotFound    = "not_found"
	OutcomeInvalid     = "invalid_input"
	OutcomeUpstreamErr = "upstream_error"
)

// Metrics holds all Prometheus metrics for the portal.
type Metrics struct {
	Searches          *prometheus.CounterVec
	UpstreamFetches   *prometheus.CounterVec
	UpstreamLatency   prometheus.Histogram
	DatasetCacheHits  prometheus.Counter
	Logins            prometheus.Counter
	Logouts           prometheus.Counter
	RequestLatency    *prometheus.HistogramVec
	RecentStoreErrors prometheus.Counter
	UpstreamCircuit   prometheus.Gauge
	RateLimited       prometheus.Counter
}

// New creates and registers all metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not panic.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dataforall_tracking_searches_total",
			Help: "Folio searches by outcome",
		}, []string{"outcome"}),
		UpstreamFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dataforall_denuncias_fetches_total",
			Help: "Complaint dataset fetches by source and result",
		}, []string{"source", "result"}),
		UpstreamLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dataforall_denuncias_fetch_duration_seconds",
			Help:    "Latency of complaint dataset fetches",
			Buckets: prometheus.DefBuckets,
		}),
		DatasetCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "dataforall_denuncias_cache_hits_total",
			Help: "Searches served from the cached complaint dataset",
		}),
		Logins: factory.NewCounter(prometheus.CounterOpts{
			Name: "dataforall_logins_total",
			Help: "Successful login form submissions",
		}),
		Logouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "dataforall_logouts_total",
			Help: "Logouts",
		}),
		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dataforall_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status class",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route", "status"}),
		RecentStoreErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "dataforall_recent_store_errors_total",
			Help: "Failures remembering a searched folio",
		}),
		UpstreamCircuit: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dataforall_denuncias_circuit_state",
			Help: "Upstream circuit breaker state (0=closed/healthy, 1=open/serving fallback)",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "dataforall_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		}),
	}
}

// ObserveSearch increments the search counter for outcome.
func (m *Metrics) ObserveSearch(outcome string) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(outcome).Inc()
}

// ObserveFetch records one dataset fetch.
func (m *Metrics) ObserveFetch(source string, ok bool, seconds float64) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.UpstreamFetches.WithLabelValues(source, result).Inc()
	m.UpstreamLatency.Observe(seconds)
}

// SetCircuitOpen records the upstream breaker state.
func (m *Metrics) SetCircuitOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.UpstreamCircuit.Set(1)
		return
	}
	m.UpstreamCircuit.Set(0)
}
