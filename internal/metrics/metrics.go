// Package metrics defines the Prometheus collectors of a search engine instance.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for QueriesTotal.
const (
	OutcomeMatches     = "matches"
	OutcomeSuggestions = "suggestions"
	OutcomeEmpty       = "empty"
	OutcomeCancelled   = "cancelled"
	OutcomeTimeout     = "timeout"
	OutcomeError       = "error"
)

// Cache status labels for SearchLatency.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// CacheStats is the cache counter snapshot exported through CounterFuncs.
type CacheStats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Evictions   int64 `json:"evictions"`
	Expirations int64 `json:"expirations"`
	Len         int   `json:"len"`
}

// Metrics holds the Prometheus collectors of one engine. A nil *Metrics is a valid no-op.
type Metrics struct {
	QueriesTotal        *prometheus.CounterVec
	SearchLatency       *prometheus.HistogramVec
	ResultsCount        prometheus.Histogram
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registerer prometheus.Registerer
	namespace  string
}

// New creates the collectors and registers them on reg. A nil reg returns nil,
// which disables metrics.
func New(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}
	m := &Metrics{
		registerer: reg,
		namespace:  namespace,
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Total queries by outcome (matches, suggestions, empty, cancelled, timeout, error).",
			},
			[]string{"outcome"},
		),
		SearchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_latency_seconds",
				Help:      "Time from debounce settlement to resolution, in seconds.",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
			},
			[]string{"cache_status"},
		),
		ResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "results_count",
				Help:      "Number of records returned per resolved query (matches or suggestions).",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
	}

	for _, c := range []prometheus.Collector{
		m.QueriesTotal, m.SearchLatency, m.ResultsCount, m.HTTPRequestsTotal, m.HTTPRequestDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RegisterCache exports the cache counters read from stats on every scrape.
func (m *Metrics) RegisterCache(stats func() CacheStats) error {
	if m == nil {
		return nil
	}
	counter := func(name, help string, read func(CacheStats) float64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
		}, func() float64 { return read(stats()) })
	}

	collectors := []prometheus.Collector{
		counter("cache_hits_total", "Total number of cache hits.", func(s CacheStats) float64 { return float64(s.Hits) }),
		counter("cache_misses_total", "Total number of cache misses.", func(s CacheStats) float64 { return float64(s.Misses) }),
		counter("cache_evictions_total", "Total number of capacity evictions.", func(s CacheStats) float64 { return float64(s.Evictions) }),
		counter("cache_expirations_total", "Total number of entries dropped after their TTL.", func(s CacheStats) float64 { return float64(s.Expirations) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: m.namespace,
			Name:      "cache_entries",
			Help:      "Number of entries currently held by the cache.",
		}, func() float64 { return float64(stats().Len) }),
	}
	for _, c := range collectors {
		if err := m.registerer.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveQuery records a resolved query.
func (m *Metrics) ObserveQuery(outcome string, fromCache bool, took time.Duration, results int) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(outcome).Inc()

	status := CacheMiss
	if fromCache {
		status = CacheHit
	}
	m.SearchLatency.WithLabelValues(status).Observe(took.Seconds())
	m.ResultsCount.Observe(float64(results))
}

// ObserveFailure records a query that did not resolve to an outcome.
func (m *Metrics) ObserveFailure(outcome string) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(outcome).Inc()
}

// ObserveHTTP records one served HTTP request.
func (m *Metrics) ObserveHTTP(method, path, status string, took time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(took.Seconds())
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
