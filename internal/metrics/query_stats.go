package metrics

import (
	"sync"
	"time"
)

// QueryStatsData is a point-in-time copy of QueryStats (safe for copying and JSON)
type QueryStatsData struct {
	QueriesResolved   int64            `json:"queries_resolved"`
	QueriesFailed     int64            `json:"queries_failed"`
	CacheHits         int64            `json:"cache_hits"`
	TotalSearchTime   time.Duration    `json:"total_search_time_ns"`
	AverageSearchTime time.Duration    `json:"average_search_time_ns"`
	QueriesByOutcome  map[string]int64 `json:"queries_by_outcome"`
	LastQueryAt       time.Time        `json:"last_query_at,omitempty"`
	LastUpdated       time.Time        `json:"last_updated"`
}

// QueryStats keeps in-process query counters for the stats endpoint.
// It complements the Prometheus collectors for deployments that do not scrape.
type QueryStats struct {
	mu                sync.RWMutex
	queriesResolved   int64
	queriesFailed     int64
	cacheHits         int64
	totalSearchTime   time.Duration
	averageSearchTime time.Duration
	queriesByOutcome  map[string]int64
	lastQueryAt       time.Time
	lastUpdated       time.Time
}

// NewQueryStats creates an empty stats collector
func NewQueryStats() *QueryStats {
	return &QueryStats{
		queriesByOutcome: make(map[string]int64),
		lastUpdated:      time.Now(),
	}
}

// RecordResolved records a query that produced an outcome
func (s *QueryStats) RecordResolved(outcome string, fromCache bool, took time.Duration) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queriesResolved++
	s.queriesByOutcome[outcome]++
	if fromCache {
		s.cacheHits++
	}
	s.totalSearchTime += took
	s.averageSearchTime = s.totalSearchTime / time.Duration(s.queriesResolved)
	s.lastQueryAt = time.Now()
	s.lastUpdated = s.lastQueryAt
}

// RecordFailed records a query that was cancelled, timed out or errored
func (s *QueryStats) RecordFailed(outcome string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queriesFailed++
	s.queriesByOutcome[outcome]++
	s.lastUpdated = time.Now()
}

// Snapshot returns a copy of the current counters
func (s *QueryStats) Snapshot() QueryStatsData {
	if s == nil {
		return QueryStatsData{QueriesByOutcome: map[string]int64{}}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	byOutcome := make(map[string]int64, len(s.queriesByOutcome))
	for k, v := range s.queriesByOutcome {
		byOutcome[k] = v
	}

	return QueryStatsData{
		QueriesResolved:   s.queriesResolved,
		QueriesFailed:     s.queriesFailed,
		CacheHits:         s.cacheHits,
		TotalSearchTime:   s.totalSearchTime,
		AverageSearchTime: s.averageSearchTime,
		QueriesByOutcome:  byOutcome,
		LastQueryAt:       s.lastQueryAt,
		LastUpdated:       s.lastUpdated,
	}
}

// Reset clears all counters
func (s *QueryStats) Reset() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queriesResolved = 0
	s.queriesFailed = 0
	s.cacheHits = 0
	s.totalSearchTime = 0
	s.averageSearchTime = 0
	s.queriesByOutcome = make(map[string]int64)
	s.lastQueryAt = time.Time{}
	s.lastUpdated = time.Now()
}
