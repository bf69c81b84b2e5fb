package model

import "time"

// Messages holds the two localized strings used in suggestion payloads.
type Messages struct {
	Suggest   string `json:"suggest" yaml:"suggest" toml:"suggest"`
	NoResults string `json:"no_results" yaml:"no_results" toml:"no_results"`
}

// Suggestion is the "did you mean" payload returned when a query matched nothing.
type Suggestion struct {
	Message     string   `json:"message"`
	Suggestions []Record `json:"suggestions"`
}

// Outcome is the resolved result of a single query.
// Exactly one of Matches (non-empty) or Suggestion (non-nil) is set for a completed search,
// except when suggestions are disabled or the query was blank, in which case both are empty.
type Outcome struct {
	QueryID    string        `json:"query_id"` // unique UUID for this query
	Query      string        `json:"query"`
	Matches    []Record      `json:"matches,omitempty"`
	Suggestion *Suggestion   `json:"suggestion,omitempty"`
	FromCache  bool          `json:"from_cache"`
	Took       time.Duration `json:"took_ns"`
}

// HasMatches reports whether the outcome carries at least one matching record.
func (o *Outcome) HasMatches() bool {
	return o != nil && len(o.Matches) > 0
}

// IsSuggestion reports whether the outcome is a suggestion payload.
func (o *Outcome) IsSuggestion() bool {
	return o != nil && o.Suggestion != nil
}

// Clone returns a shallow copy that callers may annotate (QueryID, FromCache, Took)
// without touching a cached value. Record slices are shared and must be treated as read-only.
func (o *Outcome) Clone() *Outcome {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}
