package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/go-fuzzy-search/internal/errors"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Algorithm
		wantErr bool
	}{
		{"levenshtein", "levenshtein", AlgorithmLevenshtein, false},
		{"damerau", "damerau-levenshtein", AlgorithmDamerauLevenshtein, false},
		{"case and underscores", " Damerau_Levenshtein ", AlgorithmDamerauLevenshtein, false},
		{"jaro-winkler", "jaro-winkler", AlgorithmJaroWinkler, false},
		{"soundex", "soundex", AlgorithmSoundex, false},
		{"metaphone", "metaphone", AlgorithmMetaphone, false},
		{"jaccard", "jaccard", AlgorithmJaccard, false},
		{"ngram", "ngram", AlgorithmNGram, false},
		{"cosine", "cosine", AlgorithmCosine, false},
		{"tf-idf", "tf-idf", AlgorithmTFIDF, false},
		{"smith-waterman", "smith-waterman", AlgorithmSmithWaterman, false},
		{"unknown", "bm25", AlgorithmUnknown, true},
		{"empty", "", AlgorithmUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.input)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, internalErrors.ErrInvalidConfiguration)
				return
			}
			require.NoError(t, err)
			roundTrip, err := ParseAlgorithm(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, roundTrip)
		})
	}
}

func TestParseAlgorithms_KeepsUnknownAsZeroScoring(t *testing.T) {
	algs, unknown := ParseAlgorithms([]string{"levenshtein", "nope", "soundex"})

	assert.Equal(t, []Algorithm{AlgorithmLevenshtein, AlgorithmUnknown, AlgorithmSoundex}, algs)
	assert.Equal(t, []string{"nope"}, unknown)
	assert.Equal(t, 0.0, Score(AlgorithmUnknown, "apple", "apple"))
}

func TestAlgorithm_IsDistance(t *testing.T) {
	assert.True(t, AlgorithmLevenshtein.IsDistance())
	assert.True(t, AlgorithmDamerauLevenshtein.IsDistance())
	assert.False(t, AlgorithmJaroWinkler.IsDistance())
	assert.Equal(t, "unknown", Algorithm(99).String())
}

func TestJaroWinkler(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"both empty", "", "", 1},
		{"one empty", "abc", "", 0},
		{"identical", "apple", "apple", 1},
		{"martha", "MARTHA", "MARHTA", 0.9611},
		{"dixon", "DIXON", "DICKSONX", 0.8133},
		{"no common characters", "abc", "xyz", 0},
		{"single characters", "a", "a", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JaroWinkler(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 0.0001)
			assert.InDelta(t, got, JaroWinkler(tt.b, tt.a), 1e-9)
		})
	}
}

func TestJaroWinkler_Bounded(t *testing.T) {
	pairs := [][2]string{
		{"a", "abcdefghijklmnop"},
		{"abcabcabc", "cba"},
		{"aaaaaaaa", "a"},
		{"ab", "ba"},
	}
	for _, p := range pairs {
		got := JaroWinkler(p[0], p[1])
		assert.GreaterOrEqual(t, got, 0.0, "%q/%q", p[0], p[1])
		assert.LessOrEqual(t, got, 1.0, "%q/%q", p[0], p[1])
	}
}

func TestSoundex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Robert", "R163"},
		{"Rupert", "R163"},
		{"Ashcraft", "A261"},
		{"Tymczak", "T522"},
		{"Pfister", "P236"},
		{"a", "A000"},
		{"Lee", "L000"},
		{"", ""},
		{"123", ""},
		{"über", "U160"},
		{"ü", "U000"},
		{"Müller", "M460"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Soundex(tt.input))
		})
	}

	assert.Equal(t, Soundex("Muller"), Soundex("Müller"))
	for _, word := range []string{"apple", "x", "Washington", "zzzzzzzz", "é", "Ångström"} {
		assert.Len(t, Soundex(word), 4, word)
	}
}

func TestMetaphone(t *testing.T) {
	assert.Equal(t, "FN", Metaphone("phone"))
	assert.Equal(t, Metaphone("phone"), Metaphone("fone"))
	assert.Equal(t, Metaphone("knight"), Metaphone("night"))
	assert.Equal(t, "SN", Metaphone("xenon"))
	assert.Equal(t, "", Metaphone("42"))
	assert.Equal(t, Metaphone("cafe"), Metaphone("café"))
	assert.NotEqual(t, Metaphone("apple"), Metaphone("grape"))
}

func TestSetAndVectorMeasures(t *testing.T) {
	assert.InDelta(t, 0.5, Jaccard("abc", "bcd"), 1e-9)
	assert.Equal(t, 1.0, Jaccard("", ""))
	assert.Equal(t, 1.0, Jaccard("aab", "ab"))

	assert.InDelta(t, 0.6, NGram("apple", "apply", 2), 1e-9)
	assert.Equal(t, 0.0, NGram("a", "apple", 2))
	assert.Equal(t, 1.0, NGram("abc", "abc", 3))

	assert.InDelta(t, 1.0, Cosine("ab", "ba"), 1e-9)
	assert.Equal(t, 0.0, Cosine("", "a"))
	assert.Equal(t, 0.0, Cosine("ab", "cd"))

	assert.Equal(t, 0.0, TFIDF("hello world", "hello there"))
	assert.Equal(t, 0.0, TFIDF("", "hello"))
}

func TestSmithWaterman(t *testing.T) {
	assert.Equal(t, 2.0, SmithWaterman("abc", "abc"))
	assert.Equal(t, 0.0, SmithWaterman("abc", "xyz"))
	assert.Equal(t, 0.0, SmithWaterman("", ""))
	// "ple" aligns locally: 3 matches over max length 5
	assert.InDelta(t, 6.0/5.0, SmithWaterman("ple", "apple"), 1e-9)
}

func TestScorer_Score(t *testing.T) {
	scorer := NewScorer(nil, 0)

	assert.InDelta(t, 0.8, scorer.Score(AlgorithmDamerauLevenshtein, "aple", "apple"), 1e-9)
	assert.InDelta(t, 0.8, scorer.Score(AlgorithmLevenshtein, "aple", "apple"), 1e-9)
	assert.Equal(t, 1.0, scorer.Score(AlgorithmSoundex, "Robert", "Rupert"))
	assert.Equal(t, 0.0, scorer.Score(AlgorithmSoundex, "123", "456"))
	assert.Equal(t, 1.0, scorer.Score(AlgorithmMetaphone, "phone", "fone"))
	assert.InDelta(t, 0.6, scorer.Score(AlgorithmNGram, "apple", "apply"), 1e-9)

	trigrams := NewScorer(nil, 3)
	assert.InDelta(t, NGram("apple", "apply", 3), trigrams.Score(AlgorithmNGram, "apple", "apply"), 1e-9)
}

func TestScorer_DistanceUsesMemo(t *testing.T) {
	memo := NewMemo()
	scorer := NewScorer(memo, 2)

	assert.Equal(t, 1, scorer.Distance(AlgorithmDamerauLevenshtein, "ab", "ba"))
	assert.Equal(t, 2, scorer.Distance(AlgorithmLevenshtein, "ab", "ba"))
	assert.Equal(t, 1, scorer.Distance(AlgorithmDamerauLevenshtein, "ab", "ba"))
	// Non-distance algorithms fall back to Damerau-Levenshtein
	assert.Equal(t, 1, scorer.Distance(AlgorithmJaroWinkler, "ab", "ba"))

	hits, misses := memo.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(2), misses)
	assert.Equal(t, 2, memo.Len())
}
