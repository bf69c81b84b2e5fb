package similarity

import (
	"math"
	"strings"

	"github.com/gcbaptista/go-fuzzy-search/internal/tokenizer"
)

// DefaultNGramSize is the n used by the n-gram algorithm unless configured otherwise.
const DefaultNGramSize = 2

// Jaccard returns |A∩B| / |A∪B| over the character sets of a and b.
// Duplicate characters collapse. Two empty strings are identical (1.0).
func Jaccard(a, b string) float64 {
	setA := runeSet(a)
	setB := runeSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}
	return setRatio(setA, setB)
}

// NGram returns the Jaccard ratio of the length-n substring sets of a and b.
// It is 0 when either string is shorter than n.
func NGram(a, b string, n int) float64 {
	gramsA := tokenizer.NGrams(a, n)
	gramsB := tokenizer.NGrams(b, n)
	if len(gramsA) == 0 || len(gramsB) == 0 {
		return 0
	}
	return setRatio(gramsA, gramsB)
}

// Cosine treats a and b as character-frequency vectors and returns their cosine.
// It is 0 when either vector has zero magnitude.
func Cosine(a, b string) float64 {
	freqA := runeFrequencies(a)
	freqB := runeFrequencies(b)

	var dot, magA, magB float64
	for r, fa := range freqA {
		magA += fa * fa
		dot += fa * freqB[r]
	}
	for _, fb := range freqB {
		magB += fb * fb
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// TFIDF scores a against b treating the pair as a two-document corpus.
//
// Each input is whitespace-tokenized; idf(t) = log(2 / (inA + inB)) where inX is 1 when
// the term occurs in that string. The score is the dot product of the tf·idf vectors,
// restricted to terms of a. With only two documents every shared term has idf 0, so the
// score is 0 for any pair: this is the degenerate two-document case, not a corpus IDF.
func TFIDF(a, b string) float64 {
	docA := strings.Fields(a)
	docB := strings.Fields(b)
	if len(docA) == 0 || len(docB) == 0 {
		return 0
	}

	tfA := termFrequencies(docA)
	tfB := termFrequencies(docB)

	score := 0.0
	for term, fa := range tfA {
		df := 1
		fb, inB := tfB[term]
		if inB {
			df++
		}
		idf := math.Log(2 / float64(df))
		score += (fa * idf) * (fb * idf)
	}
	return score
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

func runeFrequencies(s string) map[rune]float64 {
	freq := make(map[rune]float64, len(s))
	for _, r := range s {
		freq[r]++
	}
	return freq
}

func termFrequencies(terms []string) map[string]float64 {
	tf := make(map[string]float64, len(terms))
	for _, t := range terms {
		tf[t]++
	}
	for t := range tf {
		tf[t] /= float64(len(terms))
	}
	return tf
}

// setRatio returns |A∩B| / |A∪B|. The caller guarantees the union is non-empty.
func setRatio[K comparable](a, b map[K]struct{}) float64 {
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
