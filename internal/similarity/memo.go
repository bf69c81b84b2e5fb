package similarity

import (
	"sync"
	"sync/atomic"
)

type memoKey struct {
	alg  Algorithm
	a, b string
}

// DefaultMemoLimit is the number of pairs a Memo created by NewMemo holds.
const DefaultMemoLimit = 100_000

// Memo caches edit distances keyed by (algorithm, a, b). It is safe for concurrent use
// and is owned by a single engine instance. Once it holds limit pairs the next insert
// starts over from an empty map, so its size stays bounded on long-running servers.
type Memo struct {
	mu        sync.RWMutex
	distances map[memoKey]int
	limit     int
	hits      atomic.Int64
	misses    atomic.Int64
}

// NewMemo creates an empty Memo holding at most DefaultMemoLimit pairs.
func NewMemo() *Memo {
	return NewMemoWithLimit(DefaultMemoLimit)
}

// NewMemoWithLimit creates an empty Memo holding at most limit pairs.
// A non-positive limit means DefaultMemoLimit.
func NewMemoWithLimit(limit int) *Memo {
	if limit <= 0 {
		limit = DefaultMemoLimit
	}
	return &Memo{distances: make(map[memoKey]int), limit: limit}
}

// Distance returns the memoized distance for (alg, a, b), calling compute on a miss.
func (m *Memo) Distance(alg Algorithm, a, b string, compute func(a, b string) int) int {
	key := memoKey{alg: alg, a: a, b: b}

	m.mu.RLock()
	d, ok := m.distances[key]
	m.mu.RUnlock()
	if ok {
		m.hits.Add(1)
		return d
	}

	m.misses.Add(1)
	d = compute(a, b)

	m.mu.Lock()
	if _, ok := m.distances[key]; !ok && len(m.distances) >= m.limit {
		m.distances = make(map[memoKey]int)
	}
	m.distances[key] = d
	m.mu.Unlock()
	return d
}

// Len returns the number of memoized pairs.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.distances)
}

// Clear drops every memoized distance and resets the counters.
func (m *Memo) Clear() {
	m.mu.Lock()
	m.distances = make(map[memoKey]int)
	m.mu.Unlock()
	m.hits.Store(0)
	m.misses.Store(0)
}

// Stats returns the hit and miss counts since creation or the last Clear.
func (m *Memo) Stats() (hits, misses int64) {
	return m.hits.Load(), m.misses.Load()
}
