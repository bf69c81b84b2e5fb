// Package synonyms expands words into their synonyms ordered by usage weight.
package synonyms

import (
	"sort"
	"sync"

	"github.com/gcbaptista/go-fuzzy-search/internal/cache"
	"github.com/gcbaptista/go-fuzzy-search/model"
)

// Store memoizes resolutions. *cache.Cache[any] satisfies it.
type Store interface {
	Get(key string) (any, bool)
	Put(key string, value any)
}

// Resolver expands a word into itself plus its synonyms.
type Resolver struct {
	table model.SynonymTable
	usage model.UsageFrequency
	store Store
}

// NewResolver creates a Resolver. store may be nil to disable memoization.
func NewResolver(table model.SynonymTable, usage model.UsageFrequency, store Store) *Resolver {
	return &Resolver{table: table, usage: usage, store: store}
}

// Resolve returns word followed by its synonyms, heaviest usage weight first.
// Equal weights keep synonym-table order. An empty word resolves to itself.
// The returned slice must not be modified.
func (r *Resolver) Resolve(word string) []string {
	if word == "" {
		return []string{word}
	}

	key := cache.SynonymKey(word)
	if r.store != nil {
		if cached, ok := r.store.Get(key); ok {
			if words, ok := cached.([]string); ok {
				return words
			}
		}
	}

	synonyms := r.table[word]
	words := make([]string, 0, len(synonyms)+1)
	words = append(words, word)

	weighted := append([]string(nil), synonyms...)
	sort.SliceStable(weighted, func(i, j int) bool {
		return r.usage.Weight(weighted[i]) > r.usage.Weight(weighted[j])
	})
	words = append(words, weighted...)

	if r.store != nil {
		r.store.Put(key, words)
	}
	return words
}

// WithStore returns a copy of r that memoizes through store instead.
func (r *Resolver) WithStore(store Store) *Resolver {
	return &Resolver{table: r.table, usage: r.usage, store: store}
}

// Stage buffers resolutions for one query on top of a shared store. Reads fall
// through to the shared store; writes stay local until Commit. It is safe for
// concurrent use.
type Stage struct {
	base Store

	mu      sync.Mutex
	pending map[string]any
}

// NewStage creates a Stage over base.
func NewStage(base Store) *Stage {
	return &Stage{base: base, pending: make(map[string]any)}
}

// Get returns a pending value, or the value held by the shared store.
func (s *Stage) Get(key string) (any, bool) {
	s.mu.Lock()
	v, ok := s.pending[key]
	s.mu.Unlock()
	if ok {
		return v, true
	}
	if s.base == nil {
		return nil, false
	}
	return s.base.Get(key)
}

// Put records value without touching the shared store.
func (s *Stage) Put(key string, value any) {
	s.mu.Lock()
	s.pending[key] = value
	s.mu.Unlock()
}

// Len returns the number of pending writes.
func (s *Stage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Commit writes every pending value to the shared store and empties the stage.
func (s *Stage) Commit() {
	s.mu.Lock()
	pending := s.pending
	s.pending = make(map[string]any)
	s.mu.Unlock()

	if s.base == nil {
		return
	}
	for key, value := range pending {
		s.base.Put(key, value)
	}
}
