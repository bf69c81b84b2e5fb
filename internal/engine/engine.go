// Package engine orchestrates fuzzy queries: it debounces rapid resubmissions,
// cancels superseded queries, races each search against a timeout and caches
// the winning results.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"

	"github.com/gcbaptista/go-fuzzy-search/config"
	internalErrors "github.com/gcbaptista/go-fuzzy-search/internal/errors"
	"github.com/gcbaptista/go-fuzzy-search/internal/logger"
	"github.com/gcbaptista/go-fuzzy-search/internal/messages"
	"github.com/gcbaptista/go-fuzzy-search/internal/metrics"
	"github.com/gcbaptista/go-fuzzy-search/internal/similarity"
	"github.com/gcbaptista/go-fuzzy-search/model"
	"github.com/gcbaptista/go-fuzzy-search/services"
)

// MetricsNamespace prefixes every collector an engine registers.
const MetricsNamespace = "fuzzysearch"

var (
	_ services.Searcher    = (*Engine)(nil)
	_ services.QueryEngine = (*Engine)(nil)
)

// Engine answers fuzzy queries over one record set.
//
// Search is the interactive path: calls are debounced and each call supersedes
// the previous one. Lookup is the concurrent path used by servers: it skips the
// debounce, never supersedes, and collapses identical concurrent queries.
//
// Memory stays bounded on long-running servers: the result cache holds CacheSize
// entries and the distance memo at most similarity.DefaultMemoLimit pairs. Both are
// emptied by Reset, SetRecords and UpdateSettings.
type Engine struct {
	mu       sync.Mutex
	pipe     *pipeline
	records  []model.Record
	inflight *query
	state    State
	closed   bool

	synonyms     model.SynonymTable
	usage        model.UsageFrequency
	memo         *similarity.Memo
	customSearch similarity.Predicate
	messages     messages.Provider
	now          func() time.Time

	debouncer  *Debouncer
	lookups    singleflight.Group
	logger     *log.Logger
	registerer prometheus.Registerer
	metrics    *metrics.Metrics
	stats      *metrics.QueryStats
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. The default logs with the "engine" prefix.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCustomSearch replaces the algorithm pipeline with fn for every query/word comparison.
func WithCustomSearch(fn func(query, word string) bool) Option {
	return func(e *Engine) {
		if fn != nil {
			e.customSearch = fn
		}
	}
}

// WithMessageProvider replaces the built-in message catalog.
func WithMessageProvider(p messages.Provider) Option {
	return func(e *Engine) {
		e.messages = p
	}
}

// WithRegisterer registers the engine's Prometheus collectors on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.registerer = reg
	}
}

// WithQueryStats records every settled query into stats.
func WithQueryStats(stats *metrics.QueryStats) Option {
	return func(e *Engine) {
		e.stats = stats
	}
}

// WithClock replaces time.Now for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New builds an engine over records. Records are validated and indexed up front;
// a missing or duplicate ID fails construction with an InvalidRecordError.
func New(records []model.Record, synonyms model.SynonymTable, usage model.UsageFrequency, settings config.SearchSettings, opts ...Option) (*Engine, error) {
	e := &Engine{
		records:  append([]model.Record(nil), records...),
		synonyms: synonyms,
		usage:    usage,
		memo:     similarity.NewMemo(),
		now:      time.Now,
		logger:   logger.New("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}

	pipe, err := e.buildPipeline(e.records, settings)
	if err != nil {
		return nil, err
	}
	e.pipe = pipe
	e.debouncer = NewDebouncer(pipe.settings.DebounceDelay)

	m, err := metrics.New(e.registerer, MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	if err := m.RegisterCache(e.cacheStats); err != nil {
		return nil, fmt.Errorf("failed to register cache metrics: %w", err)
	}
	e.metrics = m

	e.logger.Info("Engine ready",
		"records", pipe.index.Len(),
		"index_mode", pipe.settings.IndexMode,
		"algorithms", pipe.settings.Algorithms,
		"threshold", pipe.settings.Threshold)
	return e, nil
}

// State reports the orchestrator state of the most recent Search call.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Reset cancels the in-flight query and clears the result cache and distance memo.
func (e *Engine) Reset() {
	e.mu.Lock()
	prev := e.inflight
	e.inflight = nil
	e.state = StateIdle
	pipe := e.pipe
	e.mu.Unlock()

	e.debouncer.Cancel()
	if prev != nil {
		e.finish(prev, result{err: internalErrors.NewQueryCancelledError(prev.text, "engine reset")}, nil)
	}
	pipe.cache.Clear()
	e.memo.Clear()
	e.logger.Debug("Engine reset")
}

// Close stops pending timers and cancels the in-flight query. Calls made after
// Close fail with ErrEngineClosed. Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	prev := e.inflight
	e.inflight = nil
	e.mu.Unlock()

	e.debouncer.Cancel()
	if prev != nil {
		e.finish(prev, result{
			err: internalErrors.NewQueryCancelledError(prev.text, "engine closed", internalErrors.ErrEngineClosed),
		}, nil)
	}
	e.logger.Info("Engine closed")
	return nil
}

// Settings returns a copy of the active settings with defaults applied.
func (e *Engine) Settings() config.SearchSettings {
	return e.current().settings
}

// Stats returns the in-process query statistics, or an empty snapshot when
// the engine was built without WithQueryStats.
func (e *Engine) Stats() metrics.QueryStatsData {
	return e.stats.Snapshot()
}

// CacheStats returns the counters of the active result cache.
func (e *Engine) CacheStats() metrics.CacheStats {
	return e.cacheStats()
}

func (e *Engine) cacheStats() metrics.CacheStats {
	s := e.current().cache.Stats()
	return metrics.CacheStats{
		Hits:        s.Hits,
		Misses:      s.Misses,
		Evictions:   s.Evictions,
		Expirations: s.Expirations,
		Len:         s.Len,
	}
}

func (e *Engine) current() *pipeline {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pipe
}

// Metrics returns the engine's Prometheus collectors, or nil when the engine was
// built without WithRegisterer. A nil *metrics.Metrics is a valid no-op.
func (e *Engine) Metrics() *metrics.Metrics {
	return e.metrics
}
