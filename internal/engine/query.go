package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-fuzzy-search/internal/cache"
	internalErrors "github.com/gcbaptista/go-fuzzy-search/internal/errors"
	"github.com/gcbaptista/go-fuzzy-search/internal/metrics"
	"github.com/gcbaptista/go-fuzzy-search/internal/synonyms"
	"github.com/gcbaptista/go-fuzzy-search/model"
)

type result struct {
	outcome *model.Outcome
	err     error
}

// query is one submitted query. Its result slot is filled exactly once; whoever
// fills it first (search, timeout, supersession or the caller) wins.
type query struct {
	id      string
	text    string
	tracked bool // Search queries drive the engine state, Lookup queries do not

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	done   chan result
}

func newQuery(parent context.Context, text string, tracked bool) *query {
	ctx, cancel := context.WithCancel(parent)
	return &query{
		id:      uuid.NewString(),
		text:    text,
		tracked: tracked,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan result, 1),
	}
}

// settle stores res if the slot is still empty, runs commit while holding the
// settlement, then cancels any work still running for the query.
func (q *query) settle(res result, commit func()) bool {
	won := false
	q.once.Do(func() {
		won = true
		if commit != nil {
			commit()
		}
		q.cancel()
		q.done <- res
	})
	return won
}

// Search submits query for debounced execution and waits for its outcome.
//
// A later Search call cancels this one with a QueryCancelledError before it
// resolves. Once the debounce period ends the cache is consulted; on a miss the
// search races the configured timeout and loses with a QueryTimeoutError.
// Cancelling ctx resolves the call as cancelled, wrapping ctx.Err().
func (e *Engine) Search(ctx context.Context, raw string) (*model.Outcome, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, internalErrors.ErrEngineClosed
	}
	pipe := e.pipe
	q := newQuery(ctx, pipe.service.Normalize(raw), true)
	prev := e.inflight
	e.inflight = q
	e.state = StateDebouncing
	e.debouncer.Call(func() { e.run(q, pipe) })
	e.mu.Unlock()

	if prev != nil {
		e.finish(prev, result{err: internalErrors.NewQueryCancelledError(prev.text, "superseded by a newer query")}, nil)
	}

	select {
	case res := <-q.done:
		return res.outcome, res.err
	case <-ctx.Done():
		e.finish(q, result{err: internalErrors.NewQueryCancelledError(q.text, "caller gave up", ctx.Err())}, nil)
		res := <-q.done
		return res.outcome, res.err
	}
}

// Lookup runs query immediately and waits for its outcome. It is not debounced and
// never cancels other calls, so any number of callers may use it concurrently.
// Identical queries running at the same time share one execution. The cache and
// the timeout apply as for Search.
func (e *Engine) Lookup(ctx context.Context, raw string) (*model.Outcome, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, internalErrors.ErrEngineClosed
	}
	pipe := e.pipe
	e.mu.Unlock()

	text := pipe.service.Normalize(raw)
	ch := e.lookups.DoChan(text, func() (any, error) {
		q := newQuery(context.Background(), text, false)
		go e.run(q, pipe)
		res := <-q.done
		return res.outcome, res.err
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		outcome := res.Val.(*model.Outcome).Clone()
		if res.Shared {
			outcome.QueryID = uuid.NewString()
		}
		return outcome, nil
	case <-ctx.Done():
		return nil, internalErrors.NewQueryCancelledError(text, "caller gave up", ctx.Err())
	}
}

// run executes a query whose debounce period has ended.
func (e *Engine) run(q *query, pipe *pipeline) {
	if q.ctx.Err() != nil {
		return
	}
	e.transition(q, StateRacing)
	started := time.Now()

	// Blank queries resolve empty without touching the cache
	if q.text == "" {
		e.finish(q, result{outcome: annotate(q, &model.Outcome{}, false, time.Since(started))}, nil)
		return
	}

	if cached, ok := lookupCache(pipe.cache, q.text); ok {
		e.logger.Debug("Cache hit", "query", q.text)
		e.finish(q, result{outcome: annotate(q, cached, true, time.Since(started))}, nil)
		return
	}

	timeout := pipe.settings.Timeout
	timer := time.AfterFunc(timeout, func() {
		e.finish(q, result{err: internalErrors.NewQueryTimeoutError(q.text, timeout)}, nil)
	})
	defer timer.Stop()

	// Synonym resolutions are kept only if this search wins its settlement
	stage := synonyms.NewStage(pipe.cache)
	outcome, err := pipe.service.SearchStaged(q.ctx, q.text, stage)
	if err != nil {
		if q.ctx.Err() != nil {
			// Already settled, or the caller is settling it as cancelled
			return
		}
		e.finish(q, result{err: fmt.Errorf("searching %q: %w", q.text, err)}, nil)
		return
	}

	e.finish(q, result{outcome: annotate(q, outcome, false, time.Since(started))}, func() {
		stage.Commit()
		storeCache(pipe.cache, q.text, outcome)
	})
}

// finish settles q with res. commit runs only when res wins the settlement.
func (e *Engine) finish(q *query, res result, commit func()) bool {
	return q.settle(res, func() {
		if commit != nil {
			commit()
		}
		e.observe(q, res)
	})
}

// observe updates the engine state, metrics and stats for a settled query.
func (e *Engine) observe(q *query, res result) {
	state, label := classify(res)

	if q.tracked {
		e.mu.Lock()
		if e.inflight == q {
			e.state = state
			e.inflight = nil
		}
		e.mu.Unlock()
	}

	if res.err != nil {
		e.metrics.ObserveFailure(label)
		e.stats.RecordFailed(label)
		if state == StateFailed {
			e.logger.Error("Query failed", "query", q.text, "err", res.err)
		} else {
			e.logger.Debug("Query did not resolve", "query", q.text, "state", state, "reason", res.err)
		}
		return
	}

	results := len(res.outcome.Matches)
	if res.outcome.IsSuggestion() {
		results = len(res.outcome.Suggestion.Suggestions)
	}
	e.metrics.ObserveQuery(label, res.outcome.FromCache, res.outcome.Took, results)
	e.stats.RecordResolved(label, res.outcome.FromCache, res.outcome.Took)
}

func (e *Engine) transition(q *query, state State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inflight == q {
		e.state = state
	}
}

// classify maps a settlement to its engine state and metrics label.
func classify(res result) (State, string) {
	switch {
	case res.err == nil && res.outcome.HasMatches():
		return StateResolved, metrics.OutcomeMatches
	case res.err == nil && res.outcome.IsSuggestion():
		return StateResolved, metrics.OutcomeSuggestions
	case res.err == nil:
		return StateResolved, metrics.OutcomeEmpty
	case errors.Is(res.err, internalErrors.ErrTimeout):
		return StateTimedOut, metrics.OutcomeTimeout
	case errors.Is(res.err, internalErrors.ErrCancelled):
		return StateCancelled, metrics.OutcomeCancelled
	default:
		return StateFailed, metrics.OutcomeError
	}
}

// annotate returns a copy of outcome stamped with the query's identity.
func annotate(q *query, outcome *model.Outcome, fromCache bool, took time.Duration) *model.Outcome {
	c := outcome.Clone()
	c.QueryID = q.id
	c.Query = q.text
	c.FromCache = fromCache
	c.Took = took
	return c
}

// lookupCache checks the query namespace, then the suggestion namespace.
func lookupCache(c *cache.Cache[any], text string) (*model.Outcome, bool) {
	for _, key := range []string{cache.QueryKey(text), cache.SuggestionKey(text)} {
		if v, ok := c.Get(key); ok {
			if outcome, ok := v.(*model.Outcome); ok {
				return outcome, true
			}
		}
	}
	return nil, false
}

// storeCache files suggestion payloads under the suggestion namespace and
// everything else, including empty outcomes, under the query namespace.
func storeCache(c *cache.Cache[any], text string, outcome *model.Outcome) {
	if outcome.IsSuggestion() {
		c.Put(cache.SuggestionKey(text), outcome)
		return
	}
	c.Put(cache.QueryKey(text), outcome)
}
