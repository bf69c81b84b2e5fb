package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NilRegistererDisablesMetrics(t *testing.T) {
	m, err := New(nil, "fuzzy")
	require.NoError(t, err)
	assert.Nil(t, m)

	// Every method is a no-op on nil
	m.ObserveQuery(OutcomeMatches, false, time.Millisecond, 1)
	m.ObserveFailure(OutcomeTimeout)
	m.ObserveHTTP("GET", "/health", "200", time.Millisecond)
	assert.NoError(t, m.RegisterCache(func() CacheStats { return CacheStats{} }))
}

func TestObserveQuery(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg, "fuzzy")
	require.NoError(t, err)

	m.ObserveQuery(OutcomeMatches, false, 2*time.Millisecond, 1)
	m.ObserveQuery(OutcomeMatches, true, time.Microsecond, 1)
	m.ObserveQuery(OutcomeSuggestions, false, time.Millisecond, 0)
	m.ObserveFailure(OutcomeCancelled)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues(OutcomeMatches)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues(OutcomeSuggestions)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues(OutcomeCancelled)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.SearchLatency))
}

func TestNew_DuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg, "fuzzy")
	require.NoError(t, err)

	_, err = New(reg, "fuzzy")
	assert.Error(t, err)

	// A different namespace can share the registry
	_, err = New(reg, "other")
	assert.NoError(t, err)
}

func TestRegisterCache(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg, "fuzzy")
	require.NoError(t, err)

	stats := CacheStats{Hits: 3, Misses: 2, Evictions: 1, Len: 4}
	require.NoError(t, m.RegisterCache(func() CacheStats { return stats }))

	expected := `
# HELP fuzzy_cache_hits_total Total number of cache hits.
# TYPE fuzzy_cache_hits_total counter
fuzzy_cache_hits_total 3
# HELP fuzzy_cache_entries Number of entries currently held by the cache.
# TYPE fuzzy_cache_entries gauge
fuzzy_cache_entries 4
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"fuzzy_cache_hits_total", "fuzzy_cache_entries"))

	stats.Hits = 10
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(strings.Replace(expected, "total 3", "total 10", 1)),
		"fuzzy_cache_hits_total", "fuzzy_cache_entries"))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg, "fuzzy")
	require.NoError(t, err)
	m.ObserveHTTP("POST", "/search", "200", time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fuzzy_http_requests_total{method="POST",path="/search",status="200"} 1`)
}

func TestQueryStats(t *testing.T) {
	s := NewQueryStats()
	s.RecordResolved(OutcomeMatches, false, 10*time.Millisecond)
	s.RecordResolved(OutcomeSuggestions, true, 20*time.Millisecond)
	s.RecordFailed(OutcomeTimeout)

	snap := s.Snapshot()
	assert.Equal(t, int64(2), snap.QueriesResolved)
	assert.Equal(t, int64(1), snap.QueriesFailed)
	assert.Equal(t, int64(1), snap.CacheHits)
	assert.Equal(t, 15*time.Millisecond, snap.AverageSearchTime)
	assert.Equal(t, int64(1), snap.QueriesByOutcome[OutcomeTimeout])
	assert.False(t, snap.LastQueryAt.IsZero())

	// Snapshot maps are copies
	snap.QueriesByOutcome[OutcomeMatches] = 100
	assert.Equal(t, int64(1), s.Snapshot().QueriesByOutcome[OutcomeMatches])

	s.Reset()
	assert.Zero(t, s.Snapshot().QueriesResolved)
	assert.Empty(t, s.Snapshot().QueriesByOutcome)
}

func TestQueryStats_NilSafe(t *testing.T) {
	var s *QueryStats
	s.RecordResolved(OutcomeMatches, false, time.Millisecond)
	s.RecordFailed(OutcomeError)
	s.Reset()
	assert.NotNil(t, s.Snapshot().QueriesByOutcome)
}
