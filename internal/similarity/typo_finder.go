package similarity

import (
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTypoTimeLimit bounds a single TypoFinder scan.
const DefaultTypoTimeLimit = 50 * time.Millisecond

// TypoFinder finds indexed tokens within a Damerau-Levenshtein budget of a term.
// Scans stop at a result count or a time limit, whichever comes first, and
// results are cached per (term, distance) until the token set changes.
type TypoFinder struct {
	mu     sync.RWMutex
	tokens []string

	cache        map[string][]string
	cacheMu      sync.RWMutex
	maxCacheSize int

	logger *log.Logger
}

// NewTypoFinder creates a typo finder over tokens. logger may be nil.
func NewTypoFinder(tokens []string, logger *log.Logger) *TypoFinder {
	tf := &TypoFinder{
		cache:        make(map[string][]string),
		maxCacheSize: 1000,
		logger:       logger,
	}
	tf.UpdateTokens(tokens)
	return tf
}

// UpdateTokens replaces the token list and invalidates the cache.
func (tf *TypoFinder) UpdateTokens(tokens []string) {
	copied := make([]string, len(tokens))
	copy(copied, tokens)

	tf.mu.Lock()
	tf.tokens = copied
	tf.mu.Unlock()

	tf.cacheMu.Lock()
	tf.cache = make(map[string][]string)
	tf.cacheMu.Unlock()
}

// Find returns tokens within maxDistance of term using the default time limit.
func (tf *TypoFinder) Find(term string, maxDistance, maxResults int) []string {
	return tf.FindWithTimeLimit(term, maxDistance, maxResults, DefaultTypoTimeLimit)
}

// FindWithTimeLimit returns up to maxResults tokens within maxDistance of term
// (excluding term itself), stopping early once timeLimit elapses.
// maxResults <= 0 means unlimited.
func (tf *TypoFinder) FindWithTimeLimit(term string, maxDistance, maxResults int, timeLimit time.Duration) []string {
	tf.mu.RLock()
	tokens := tf.tokens
	tf.mu.RUnlock()

	if maxDistance <= 0 || term == "" || len(tokens) == 0 {
		return []string{}
	}

	cacheKey := term + "\x00" + strconv.Itoa(maxDistance)
	tf.cacheMu.RLock()
	if cached, ok := tf.cache[cacheKey]; ok {
		tf.cacheMu.RUnlock()
		if maxResults > 0 && len(cached) > maxResults {
			return cached[:maxResults]
		}
		return cached
	}
	tf.cacheMu.RUnlock()

	typos, complete := tf.scan(tokens, term, maxDistance, maxResults, timeLimit)

	// Partial scans are not cached, a later call with more time may find more.
	if complete {
		tf.cacheMu.Lock()
		if len(tf.cache) < tf.maxCacheSize {
			tf.cache[cacheKey] = typos
		}
		tf.cacheMu.Unlock()
	}
	return typos
}

func (tf *TypoFinder) scan(tokens []string, term string, maxDistance, maxResults int, timeLimit time.Duration) ([]string, bool) {
	termLen := len([]rune(term))
	typos := make([]string, 0)
	start := time.Now()

	for i, token := range tokens {
		if time.Since(start) >= timeLimit {
			if tf.logger != nil {
				tf.logger.Warn("typo scan time limit reached",
					"limit", timeLimit, "found", len(typos), "unchecked", len(tokens)-i,
					"term", term, "distance", maxDistance)
			}
			return typos, false
		}
		if token == term {
			continue
		}

		lengthDiff := len([]rune(token)) - termLen
		if lengthDiff < 0 {
			lengthDiff = -lengthDiff
		}
		if lengthDiff > maxDistance {
			continue
		}

		dist := DamerauLevenshteinDistanceWithLimit(term, token, maxDistance)
		if dist > 0 && dist <= maxDistance {
			typos = append(typos, token)
			if maxResults > 0 && len(typos) >= maxResults {
				return typos, false
			}
		}
	}
	return typos, true
}
