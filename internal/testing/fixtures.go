// Package testing provides shared fixtures for the engine's tests.
package testing

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gcbaptista/go-fuzzy-search/model"
)

// FruitRecords returns the two-record set used by the end-to-end scenarios.
func FruitRecords() []model.Record {
	return []model.Record{
		{ID: "1", Name: "apple", Tags: []string{"fruit"}},
		{ID: "2", Name: "grape", Tags: []string{"fruit"}},
	}
}

// Catalog returns a larger record set with multi-word names and shared tags.
func Catalog() []model.Record {
	return []model.Record{
		{ID: "1", Name: "apple", Tags: []string{"fruit", "red"}},
		{ID: "2", Name: "grape", Tags: []string{"fruit", "purple"}},
		{ID: "3", Name: "Green Apple", Tags: []string{"fruit", "sour"}},
		{ID: "4", Name: "banana", Tags: []string{"fruit", "yellow"}},
		{ID: "5", Name: "automobile", Tags: []string{"vehicle"}},
		{ID: "6", Name: "bicycle", Tags: []string{"vehicle", "two wheels"}},
		{ID: "7", Name: "cherry", Tags: []string{"fruit", "red"}},
		{ID: "8", Name: "İstanbul", Tags: []string{"city"}},
	}
}

// CatalogSynonyms returns a synonym table matching Catalog.
func CatalogSynonyms() model.SynonymTable {
	return model.SynonymTable{
		"automobile": {"car", "auto", "motorcar"},
		"bicycle":    {"bike", "cycle"},
		"apple":      {"pomme"},
	}
}

// CatalogUsage returns usage weights for CatalogSynonyms.
func CatalogUsage() model.UsageFrequency {
	return model.UsageFrequency{
		"car":  10,
		"bike": 5,
	}
}

// GeneratedRecords returns n records named "item-<i>" with a rotating tag.
func GeneratedRecords(n int) []model.Record {
	tags := []string{"alpha", "beta", "gamma", "delta"}
	records := make([]model.Record, n)
	for i := range records {
		records[i] = model.Record{
			ID:   fmt.Sprintf("rec-%d", i),
			Name: fmt.Sprintf("item %d", i),
			Tags: []string{tags[i%len(tags)]},
		}
	}
	return records
}

// SlowPredicate returns a match predicate that sleeps for delay on every call and
// matches when word contains query. It is used to make searches outlast timeouts.
func SlowPredicate(delay time.Duration) func(query, word string) bool {
	return func(query, word string) bool {
		time.Sleep(delay)
		return strings.Contains(word, query)
	}
}

// CallRecorder is a match predicate that records every query it is called with.
type CallRecorder struct {
	mu      sync.Mutex
	queries []string
	calls   atomic.Int64
}

// Predicate matches when word contains query and records the query.
func (r *CallRecorder) Predicate(query, word string) bool {
	r.calls.Add(1)
	r.mu.Lock()
	if len(r.queries) == 0 || r.queries[len(r.queries)-1] != query {
		r.queries = append(r.queries, query)
	}
	r.mu.Unlock()
	return strings.Contains(word, query)
}

// Queries returns the distinct consecutive queries the predicate saw.
func (r *CallRecorder) Queries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

// Calls returns the number of predicate invocations.
func (r *CallRecorder) Calls() int64 {
	return r.calls.Load()
}
