package similarity

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher_SingleAlgorithm(t *testing.T) {
	m := NewMatcher([]Algorithm{AlgorithmDamerauLevenshtein}, 0.8)

	assert.True(t, m.Match("aple", "apple"))
	assert.False(t, m.Match("aple", "grape"))
	assert.False(t, m.Match("xyz", "apple"))
	assert.True(t, m.Match("apple", "apple"))
}

func TestMatcher_DefaultsToDamerau(t *testing.T) {
	m := NewMatcher(nil, 0.8)

	assert.Equal(t, []Algorithm{AlgorithmDamerauLevenshtein}, m.Algorithms())
	assert.True(t, m.Match("form", "from"))
	assert.Equal(t, AlgorithmDamerauLevenshtein, m.DistanceAlgorithm())
}

func TestMatcher_DistanceAlgorithm(t *testing.T) {
	assert.Equal(t, AlgorithmLevenshtein, NewMatcher([]Algorithm{AlgorithmLevenshtein, AlgorithmSoundex}, 0.8).DistanceAlgorithm())
	assert.Equal(t, AlgorithmDamerauLevenshtein, NewMatcher([]Algorithm{AlgorithmJaroWinkler}, 0.8).DistanceAlgorithm())
}

func TestMatcher_MeanOfContributors(t *testing.T) {
	// soundex contributes 1.0, levenshtein contributes 0.8 -> mean 0.9
	m := NewMatcher([]Algorithm{AlgorithmLevenshtein, AlgorithmSoundex}, 0.8)

	score, ok := m.Score("aple", "apple")
	assert.True(t, ok)
	assert.InDelta(t, 0.9, score, 1e-9)

	// Only soundex contributes: Robert/Rupert have distance 2 over 6 characters
	score, ok = m.Score("robert", "rupert")
	assert.True(t, ok)
	assert.Equal(t, 1.0, score)
	assert.True(t, m.Match("robert", "rupert"))
}

func TestMatcher_NoContributors(t *testing.T) {
	m := NewMatcher([]Algorithm{AlgorithmLevenshtein, AlgorithmJaroWinkler}, 0.95)

	score, ok := m.Score("xyz", "apple")
	assert.False(t, ok)
	assert.Equal(t, 0.0, score)
	assert.False(t, m.Match("xyz", "apple"))
}

func TestMatcher_UnknownAlgorithmNeverContributes(t *testing.T) {
	m := NewMatcher([]Algorithm{AlgorithmUnknown}, 0.5)
	assert.False(t, m.Match("apple", "apple"))

	mixed := NewMatcher([]Algorithm{AlgorithmUnknown, AlgorithmLevenshtein}, 0.5)
	assert.True(t, mixed.Match("apple", "apple"))
}

func TestMatcher_PrefixBonus(t *testing.T) {
	plain := NewMatcher([]Algorithm{AlgorithmJaccard}, 0.5)
	boosted := NewMatcher([]Algorithm{AlgorithmJaccard}, 0.5, WithPrefixCap(2))

	// {a,b,c} vs {a,b,d}: 2/4 = 0.5
	base, ok := plain.Score("abc", "abd")
	assert.True(t, ok)
	assert.InDelta(t, 0.5, base, 1e-9)

	// common prefix "ab" (2) -> 0.5 + 2*(1-0.5) = 1.5, clamped
	score, ok := boosted.Score("abc", "abd")
	assert.True(t, ok)
	assert.Equal(t, 1.0, score)

	// no common prefix, no bonus
	score, _ = boosted.Score("cab", "abd")
	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestMatcher_CustomPredicateOverrides(t *testing.T) {
	var mu sync.Mutex
	var calls []string
	m := NewMatcher([]Algorithm{AlgorithmLevenshtein}, 0.8, WithCustom(func(query, word string) bool {
		mu.Lock()
		calls = append(calls, query+"|"+word)
		mu.Unlock()
		return strings.HasPrefix(word, query)
	}))

	assert.True(t, m.Match("ap", "apple"))
	assert.False(t, m.Match("aple", "apple"))
	assert.Equal(t, []string{"ap|apple", "aple|apple"}, calls)
}

func TestCommonPrefixLength(t *testing.T) {
	assert.Equal(t, 3, CommonPrefixLength("apple", "apply", 3))
	assert.Equal(t, 4, CommonPrefixLength("apple", "apply", 10))
	assert.Equal(t, 0, CommonPrefixLength("apple", "grape", 4))
	assert.Equal(t, 0, CommonPrefixLength("", "grape", 4))
	assert.Equal(t, 2, CommonPrefixLength("éa", "éau", 5))
}

func TestMemo_Clear(t *testing.T) {
	memo := NewMemo()
	calls := 0
	compute := func(a, b string) int {
		calls++
		return LevenshteinDistance(a, b)
	}

	assert.Equal(t, 3, memo.Distance(AlgorithmLevenshtein, "kitten", "sitting", compute))
	assert.Equal(t, 3, memo.Distance(AlgorithmLevenshtein, "kitten", "sitting", compute))
	assert.Equal(t, 1, calls)

	memo.Clear()
	assert.Equal(t, 0, memo.Len())
	hits, misses := memo.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)

	memo.Distance(AlgorithmLevenshtein, "kitten", "sitting", compute)
	assert.Equal(t, 2, calls)
}

func TestMemo_StaysWithinLimit(t *testing.T) {
	memo := NewMemoWithLimit(3)
	for _, w := range []string{"apple", "grape", "fruit", "melon", "lemon", "peach", "mango"} {
		memo.Distance(AlgorithmLevenshtein, "aple", w, LevenshteinDistance)
		assert.LessOrEqual(t, memo.Len(), 3, w)
	}
	assert.Equal(t, 1, memo.Len(), "the seventh pair starts a fresh map after two resets")

	// Re-storing a known pair never triggers a reset
	full := NewMemoWithLimit(1)
	full.Distance(AlgorithmLevenshtein, "a", "b", LevenshteinDistance)
	full.Distance(AlgorithmLevenshtein, "a", "b", LevenshteinDistance)
	assert.Equal(t, 1, full.Len())

	assert.Equal(t, DefaultMemoLimit, NewMemoWithLimit(0).limit)
}

func TestMemo_KeyIncludesAlgorithm(t *testing.T) {
	memo := NewMemo()
	assert.Equal(t, 2, memo.Distance(AlgorithmLevenshtein, "ab", "ba", LevenshteinDistance))
	assert.Equal(t, 1, memo.Distance(AlgorithmDamerauLevenshtein, "ab", "ba", DamerauLevenshteinDistance))
	assert.Equal(t, 2, memo.Len())
}

func TestMemo_ConcurrentAccess(t *testing.T) {
	memo := NewMemo()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, w := range []string{"apple", "grape", "fruit"} {
				memo.Distance(AlgorithmDamerauLevenshtein, "aple", w, DamerauLevenshteinDistance)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, memo.Len())
	hits, misses := memo.Stats()
	assert.Equal(t, int64(48), hits+misses)
}
