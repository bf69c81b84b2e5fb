// Package cache implements the bounded, time-expiring result cache shared by the
// query, synonym and suggestion namespaces of one engine.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Key namespaces. All of them share one capacity budget.
const (
	QueryPrefix      = "query:"
	SynonymPrefix    = "synonym:"
	SuggestionPrefix = "suggestion:"
)

// QueryKey returns the cache key of a normalized query's match result.
func QueryKey(query string) string { return QueryPrefix + query }

// SynonymKey returns the cache key of a word's synonym expansion.
func SynonymKey(word string) string { return SynonymPrefix + word }

// SuggestionKey returns the cache key of a query's suggestion payload.
func SuggestionKey(query string) string { return SuggestionPrefix + query }

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	Expirations int64
	Len         int
}

type entry[V any] struct {
	key        string
	value      V
	insertedAt time.Time
	expiresAt  time.Time
}

// Cache is a least-recently-used cache with an absolute per-entry expiry.
// A Get hit moves the entry to the front; Put evicts from the back at capacity.
// It is safe for concurrent use.
type Cache[V any] struct {
	mu       sync.Mutex
	items    map[string]*list.Element
	order    *list.List
	capacity int
	ttl      time.Duration
	now      func() time.Time

	hits, misses, evictions, expirations int64
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates a cache holding at most capacity entries, each living for ttl.
// capacity < 1 is raised to 1; ttl <= 0 disables expiry.
func New[V any](capacity int, ttl time.Duration, opts ...Option) *Cache[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if capacity < 1 {
		capacity = 1
	}
	return &Cache[V]{
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
		capacity: capacity,
		ttl:      ttl,
		now:      o.now,
	}
}

// Get returns the value stored under key. An expired entry is removed and reported absent.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}

	e := elem.Value.(*entry[V])
	if c.ttl > 0 && !c.now().Before(e.expiresAt) {
		c.removeElement(elem)
		c.expirations++
		c.misses++
		return zero, false
	}

	c.order.MoveToFront(elem)
	c.hits++
	return e.value, true
}

// Put stores value under key, evicting the least recently used entry when full.
// Overwriting a key restamps its expiry.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if elem, ok := c.items[key]; ok {
		e := elem.Value.(*entry[V])
		e.value = value
		e.insertedAt = now
		e.expiresAt = now.Add(c.ttl)
		c.order.MoveToFront(elem)
		return
	}

	for c.order.Len() >= c.capacity {
		c.removeElement(c.order.Back())
		c.evictions++
	}

	e := &entry[V]{key: key, value: value, insertedAt: now, expiresAt: now.Add(c.ttl)}
	c.items[key] = c.order.PushFront(e)
}

// Delete removes key and reports whether it was present.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
		return true
	}
	return false
}

// Contains reports whether key is present and unexpired without touching recency or counters.
func (c *Cache[V]) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}
	return c.ttl <= 0 || c.now().Before(elem.Value.(*entry[V]).expiresAt)
}

// Keys returns the keys from most to least recently used.
func (c *Cache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.order.Len())
	for e := c.order.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Value.(*entry[V]).key)
	}
	return keys
}

// Len returns the number of stored entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Capacity returns the maximum number of entries.
func (c *Cache[V]) Capacity() int {
	return c.capacity
}

// Clear removes every entry. Counters are kept.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element, c.capacity)
	c.order.Init()
}

// Stats returns a snapshot of the counters.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		Expirations: c.expirations,
		Len:         c.order.Len(),
	}
}

func (c *Cache[V]) removeElement(elem *list.Element) {
	e := elem.Value.(*entry[V])
	c.order.Remove(elem)
	delete(c.items, e.key)
}
