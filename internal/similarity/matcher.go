package similarity

// Predicate decides whether query matches word. It replaces the algorithm pipeline entirely.
type Predicate func(query, word string) bool

// Matcher applies the combination policy over an ordered set of algorithms.
//
// Every algorithm scores the pair independently. Scores at or above the threshold
// contribute, and the pair matches when at least one algorithm contributes and the
// mean of the contributing scores (after the optional prefix bonus) is at or above
// the threshold.
type Matcher struct {
	algorithms []Algorithm
	threshold  float64
	prefixCap  int
	custom     Predicate
	scorer     *Scorer
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithPrefixCap enables the common-prefix bonus, considering at most cap leading characters.
func WithPrefixCap(cap int) MatcherOption {
	return func(m *Matcher) {
		if cap > 0 {
			m.prefixCap = cap
		}
	}
}

// WithCustom installs a predicate that overrides algorithm scoring.
func WithCustom(p Predicate) MatcherOption {
	return func(m *Matcher) {
		m.custom = p
	}
}

// WithScorer sets the scorer used for each algorithm, typically one backed by a Memo.
func WithScorer(s *Scorer) MatcherOption {
	return func(m *Matcher) {
		if s != nil {
			m.scorer = s
		}
	}
}

// NewMatcher creates a Matcher. An empty algorithm list selects Damerau-Levenshtein.
func NewMatcher(algorithms []Algorithm, threshold float64, opts ...MatcherOption) *Matcher {
	if len(algorithms) == 0 {
		algorithms = []Algorithm{AlgorithmDamerauLevenshtein}
	}
	m := &Matcher{
		algorithms: append([]Algorithm(nil), algorithms...),
		threshold:  threshold,
		scorer:     NewScorer(nil, DefaultNGramSize),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Algorithms returns the configured algorithms in order.
func (m *Matcher) Algorithms() []Algorithm {
	return append([]Algorithm(nil), m.algorithms...)
}

// Threshold returns the match threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// DistanceAlgorithm returns the edit distance used for suggestions:
// Levenshtein when the primary algorithm is Levenshtein, Damerau-Levenshtein otherwise.
func (m *Matcher) DistanceAlgorithm() Algorithm {
	if m.algorithms[0] == AlgorithmLevenshtein {
		return AlgorithmLevenshtein
	}
	return AlgorithmDamerauLevenshtein
}

// Scorer returns the scorer backing this matcher.
func (m *Matcher) Scorer() *Scorer {
	return m.scorer
}

// Score returns the aggregate score for query against word and whether any algorithm contributed.
// The custom predicate, when set, is not consulted here.
func (m *Matcher) Score(query, word string) (float64, bool) {
	var sum float64
	contributors := 0
	for _, alg := range m.algorithms {
		score := m.scorer.Score(alg, query, word)
		if score >= m.threshold {
			sum += score
			contributors++
		}
	}
	if contributors == 0 {
		return 0, false
	}

	aggregate := sum / float64(contributors)
	if m.prefixCap > 0 {
		if prefix := CommonPrefixLength(query, word, m.prefixCap); prefix > 0 {
			aggregate += float64(prefix) * (1 - aggregate)
			if aggregate > 1 {
				aggregate = 1
			}
		}
	}
	return aggregate, true
}

// Match reports whether query matches word.
func (m *Matcher) Match(query, word string) bool {
	if m.custom != nil {
		return m.custom(query, word)
	}
	aggregate, ok := m.Score(query, word)
	return ok && aggregate >= m.threshold
}

// CommonPrefixLength returns the number of identical leading runes of a and b, at most limit.
func CommonPrefixLength(a, b string, limit int) int {
	ra, rb := []rune(a), []rune(b)
	n := 0
	for n < len(ra) && n < len(rb) && n < limit && ra[n] == rb[n] {
		n++
	}
	return n
}
