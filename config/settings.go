// Package config provides configuration structures for the fuzzy search engine.
// It defines the matching algorithms, thresholds, cache and timing settings.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gcbaptista/go-fuzzy-search/internal/similarity"
	"github.com/gcbaptista/go-fuzzy-search/model"
)

// Index modes
const (
	IndexModeDirect   = "direct"
	IndexModeInverted = "inverted"
)

// Defaults used by ApplyDefaults
const (
	DefaultAlgorithm           = "damerau-levenshtein"
	DefaultThreshold           = 0.8
	DefaultSuggestionThreshold = 0.5
	DefaultNGramSize           = 2
	DefaultDebounceDelay       = 300 * time.Millisecond
	DefaultCacheSize           = 100
	DefaultCacheTTL            = 60 * time.Second
	DefaultTimeout             = 5 * time.Second
	DefaultLanguage            = "en"
	DefaultWorkers             = 4
)

// SearchSettings contains all configuration options for a search engine instance.
//
// Algorithms is ordered: with more than one entry every algorithm scores the pair
// independently and the scores that clear Threshold are averaged. The first entry
// also selects the distance used by the suggestion pass (Levenshtein when it is
// "levenshtein", Damerau-Levenshtein otherwise).
type SearchSettings struct {
	Algorithms          []string                  `json:"algorithms" yaml:"algorithms" toml:"algorithms"`                               // Algorithm names, e.g. ["damerau-levenshtein"]
	Threshold           float64                   `json:"threshold" yaml:"threshold" toml:"threshold"`                                  // Minimum similarity for a match, in [0,1]. Zero means default.
	SuggestOnNoMatch    *bool                     `json:"suggest_on_no_match,omitempty" yaml:"suggest_on_no_match" toml:"suggest_on_no_match"` // Run the suggestion pass when nothing matches
	SuggestionThreshold float64                   `json:"suggestion_threshold" yaml:"suggestion_threshold" toml:"suggestion_threshold"` // Minimum similarity for a suggestion, in [0,1]
	PrefixCap           int                       `json:"prefix_cap" yaml:"prefix_cap" toml:"prefix_cap"`                               // Max common-prefix length for the prefix bonus; 0 disables it
	NGramSize           int                       `json:"ngram_size" yaml:"ngram_size" toml:"ngram_size"`                               // n for the n-gram algorithm
	DebounceDelay       time.Duration             `json:"debounce_delay" yaml:"debounce_delay" toml:"debounce_delay"`
	CacheSize           int                       `json:"cache_size" yaml:"cache_size" toml:"cache_size"`
	CacheTTL            time.Duration             `json:"cache_ttl" yaml:"cache_ttl" toml:"cache_ttl"`
	Timeout             time.Duration             `json:"timeout" yaml:"timeout" toml:"timeout"`
	Language            string                    `json:"language" yaml:"language" toml:"language"`
	CustomMessages      map[string]model.Messages `json:"custom_messages,omitempty" yaml:"custom_messages" toml:"custom_messages"` // Per-language overrides merged over the catalog
	IndexMode           string                    `json:"index_mode" yaml:"index_mode" toml:"index_mode"`                         // "direct" or "inverted"
	Workers             int                       `json:"workers" yaml:"workers" toml:"workers"`                                  // Parallelism of the match pass
}

// Default returns settings with every default applied.
func Default() SearchSettings {
	s := SearchSettings{}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults applies default values to the search settings
func (s *SearchSettings) ApplyDefaults() {
	if len(s.Algorithms) == 0 {
		s.Algorithms = []string{DefaultAlgorithm}
	}
	if s.Threshold == 0 {
		s.Threshold = DefaultThreshold
	}
	if s.SuggestOnNoMatch == nil {
		enabled := true
		s.SuggestOnNoMatch = &enabled
	}
	if s.SuggestionThreshold == 0 {
		s.SuggestionThreshold = DefaultSuggestionThreshold
	}
	if s.NGramSize <= 0 {
		s.NGramSize = DefaultNGramSize
	}
	if s.DebounceDelay == 0 {
		s.DebounceDelay = DefaultDebounceDelay
	}
	if s.CacheSize <= 0 {
		s.CacheSize = DefaultCacheSize
	}
	if s.CacheTTL == 0 {
		s.CacheTTL = DefaultCacheTTL
	}
	if s.Timeout == 0 {
		s.Timeout = DefaultTimeout
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if s.IndexMode == "" {
		s.IndexMode = IndexModeDirect
	}
	if s.Workers <= 0 {
		s.Workers = DefaultWorkers
	}
	if s.CustomMessages == nil {
		s.CustomMessages = map[string]model.Messages{}
	}
}

// SuggestionsEnabled reports whether the suggestion pass should run on empty results.
func (s *SearchSettings) SuggestionsEnabled() bool {
	return s.SuggestOnNoMatch == nil || *s.SuggestOnNoMatch
}

// ResolveAlgorithms maps the configured names onto the algorithm set, in order.
// Unknown names stay in place as similarity.AlgorithmUnknown (which scores zero)
// and are also returned so the caller can report them.
func (s *SearchSettings) ResolveAlgorithms() ([]similarity.Algorithm, []string) {
	return similarity.ParseAlgorithms(s.Algorithms)
}

// Validate checks the settings and returns a list of problems.
// Unknown algorithm names are not reported here: they are resolved permissively
// at engine construction and score zero.
func (s *SearchSettings) Validate() []string {
	var problems []string

	problems = append(problems, checkUnitRange("threshold", s.Threshold)...)
	problems = append(problems, checkUnitRange("suggestion_threshold", s.SuggestionThreshold)...)

	if s.DebounceDelay < 0 {
		problems = append(problems, "debounce_delay cannot be negative")
	}
	if s.CacheTTL < 0 {
		problems = append(problems, "cache_ttl cannot be negative")
	}
	if s.Timeout < 0 {
		problems = append(problems, "timeout cannot be negative")
	}
	if s.CacheSize < 0 {
		problems = append(problems, "cache_size cannot be negative")
	}
	if s.PrefixCap < 0 {
		problems = append(problems, "prefix_cap cannot be negative")
	}
	if s.IndexMode != "" && s.IndexMode != IndexModeDirect && s.IndexMode != IndexModeInverted {
		problems = append(problems, "Invalid index_mode '"+s.IndexMode+"' (must be 'direct' or 'inverted')")
	}

	seen := make(map[string]bool)
	for _, name := range s.Algorithms {
		if strings.TrimSpace(name) == "" {
			problems = append(problems, "Algorithm name cannot be empty or whitespace-only")
			continue
		}
		if seen[name] {
			problems = append(problems, "Duplicate algorithm '"+name+"' found in algorithms")
		}
		seen[name] = true
	}

	return problems
}

func checkUnitRange(field string, v float64) []string {
	if v < 0 || v > 1 {
		return []string{fmt.Sprintf("%s must be between 0 and 1, got %v", field, v)}
	}
	return nil
}
