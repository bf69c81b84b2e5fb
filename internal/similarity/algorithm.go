package similarity

import (
	"strings"

	"github.com/gcbaptista/go-fuzzy-search/internal/errors"
)

// Algorithm identifies one similarity measure.
type Algorithm int

// Supported algorithms. AlgorithmUnknown stands in for unrecognized names and always scores 0.
const (
	AlgorithmUnknown Algorithm = iota
	AlgorithmLevenshtein
	AlgorithmDamerauLevenshtein
	AlgorithmJaroWinkler
	AlgorithmSoundex
	AlgorithmMetaphone
	AlgorithmJaccard
	AlgorithmNGram
	AlgorithmCosine
	AlgorithmTFIDF
	AlgorithmSmithWaterman
)

var algorithmNames = map[Algorithm]string{
	AlgorithmUnknown:            "unknown",
	AlgorithmLevenshtein:        "levenshtein",
	AlgorithmDamerauLevenshtein: "damerau-levenshtein",
	AlgorithmJaroWinkler:        "jaro-winkler",
	AlgorithmSoundex:            "soundex",
	AlgorithmMetaphone:          "metaphone",
	AlgorithmJaccard:            "jaccard",
	AlgorithmNGram:              "ngram",
	AlgorithmCosine:             "cosine",
	AlgorithmTFIDF:              "tf-idf",
	AlgorithmSmithWaterman:      "smith-waterman",
}

var algorithmsByName = func() map[string]Algorithm {
	m := make(map[string]Algorithm, len(algorithmNames))
	for alg, name := range algorithmNames {
		if alg != AlgorithmUnknown {
			m[name] = alg
		}
	}
	return m
}()

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return algorithmNames[AlgorithmUnknown]
}

// IsDistance reports whether the algorithm is an edit distance with an integer Distance.
func (a Algorithm) IsDistance() bool {
	return a == AlgorithmLevenshtein || a == AlgorithmDamerauLevenshtein
}

// ParseAlgorithm resolves a configuration name such as "damerau-levenshtein".
// Matching ignores case and accepts underscores for dashes.
// Unrecognized names return AlgorithmUnknown with an UnknownAlgorithmError.
func ParseAlgorithm(name string) (Algorithm, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if alg, ok := algorithmsByName[normalized]; ok {
		return alg, nil
	}
	return AlgorithmUnknown, errors.NewUnknownAlgorithmError(name)
}

// ParseAlgorithms resolves every name in order. Unknown names are kept as AlgorithmUnknown
// so partial algorithm sets stay usable; the returned slice lists the names that failed.
func ParseAlgorithms(names []string) ([]Algorithm, []string) {
	algorithms := make([]Algorithm, 0, len(names))
	var unknown []string
	for _, name := range names {
		alg, err := ParseAlgorithm(name)
		if err != nil {
			unknown = append(unknown, name)
		}
		algorithms = append(algorithms, alg)
	}
	return algorithms, unknown
}

// Scorer computes similarity scores, memoizing edit distances when a Memo is attached.
type Scorer struct {
	memo      *Memo
	ngramSize int
}

// NewScorer creates a Scorer. memo may be nil; ngramSize <= 0 selects DefaultNGramSize.
func NewScorer(memo *Memo, ngramSize int) *Scorer {
	if ngramSize <= 0 {
		ngramSize = DefaultNGramSize
	}
	return &Scorer{memo: memo, ngramSize: ngramSize}
}

// Distance returns the edit distance of a and b under a distance algorithm.
// Any other algorithm falls back to Damerau-Levenshtein.
func (s *Scorer) Distance(alg Algorithm, a, b string) int {
	if alg != AlgorithmLevenshtein {
		alg = AlgorithmDamerauLevenshtein
	}
	compute := DamerauLevenshteinDistance
	if alg == AlgorithmLevenshtein {
		compute = LevenshteinDistance
	}
	if s == nil || s.memo == nil {
		return compute(a, b)
	}
	return s.memo.Distance(alg, a, b, compute)
}

// Score returns the similarity of a and b under alg. The switch is total over Algorithm.
func (s *Scorer) Score(alg Algorithm, a, b string) float64 {
	switch alg {
	case AlgorithmLevenshtein, AlgorithmDamerauLevenshtein:
		return DistanceSimilarity(s.Distance(alg, a, b), a, b)
	case AlgorithmJaroWinkler:
		return JaroWinkler(a, b)
	case AlgorithmSoundex:
		return codesEqual(Soundex(a), Soundex(b))
	case AlgorithmMetaphone:
		return codesEqual(Metaphone(a), Metaphone(b))
	case AlgorithmJaccard:
		return Jaccard(a, b)
	case AlgorithmNGram:
		n := DefaultNGramSize
		if s != nil {
			n = s.ngramSize
		}
		return NGram(a, b, n)
	case AlgorithmCosine:
		return Cosine(a, b)
	case AlgorithmTFIDF:
		return TFIDF(a, b)
	case AlgorithmSmithWaterman:
		return SmithWaterman(a, b)
	default:
		return 0
	}
}

// Score is a convenience for scoring without memoization and the default n-gram size.
func Score(alg Algorithm, a, b string) float64 {
	return (*Scorer)(nil).Score(alg, a, b)
}

// codesEqual is the equality similarity used by the phonetic algorithms.
// Empty codes (no letters) never match.
func codesEqual(a, b string) float64 {
	if a != "" && a == b {
		return 1
	}
	return 0
}
