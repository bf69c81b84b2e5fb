// Package index builds the read-only lookup structures over a record set.
package index

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/gcbaptista/go-fuzzy-search/config"
	"github.com/gcbaptista/go-fuzzy-search/internal/errors"
	"github.com/gcbaptista/go-fuzzy-search/model"
	"github.com/gcbaptista/go-fuzzy-search/store"
)

// Index is a record set indexed for retrieval. It is built once and never mutated,
// so it is safe for concurrent reads. Rebuild it when the record set changes.
type Index struct {
	mode     string
	store    *store.RecordStore
	inverted *InvertedIndex // nil in direct mode
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	logger *log.Logger
}

// WithLogger sets the logger used by the inverted index typo scan.
func WithLogger(logger *log.Logger) Option {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

// Build validates records and builds an index of the given mode ("direct" or "inverted";
// empty selects direct). Any invalid record fails the whole build.
func Build(records []model.Record, mode string, opts ...Option) (*Index, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	if mode == "" {
		mode = config.IndexModeDirect
	}
	if mode != config.IndexModeDirect && mode != config.IndexModeInverted {
		return nil, errors.NewValidationError("index_mode", fmt.Sprintf("unknown index mode '%s'", mode))
	}

	rs, err := store.NewRecordStore(records)
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}

	idx := &Index{mode: mode, store: rs}
	if mode == config.IndexModeInverted {
		idx.inverted = newInvertedIndex(rs.Records(), o.logger)
	}
	return idx, nil
}

// Mode returns the index mode.
func (idx *Index) Mode() string {
	return idx.mode
}

// Records returns every record in insertion order. Callers must not modify the slice.
func (idx *Index) Records() []model.Record {
	return idx.store.Records()
}

// Get returns the record with the given ID.
func (idx *Index) Get(id string) (model.Record, bool) {
	return idx.store.Get(id)
}

// Len returns the number of records.
func (idx *Index) Len() int {
	return idx.store.Len()
}

// Inverted returns the inverted index, or nil in direct mode.
func (idx *Index) Inverted() *InvertedIndex {
	return idx.inverted
}

// Candidates returns the records worth scoring for query, in insertion order.
// Direct mode returns every record. Inverted mode returns records holding a query
// token exactly, a token that starts with a query token, or a token within budget
// Damerau-Levenshtein edits of a query token.
func (idx *Index) Candidates(ctx context.Context, query string, budget int) ([]model.Record, error) {
	if idx.inverted == nil {
		return idx.store.Records(), nil
	}

	ids, err := idx.inverted.candidateIDs(ctx, query, budget)
	if err != nil {
		return nil, err
	}
	return idx.recordsInOrder(ids), nil
}

// Lookup returns the records containing token exactly, in insertion order.
// Direct indexes have no postings and return nil.
func (idx *Index) Lookup(token string) []model.Record {
	if idx.inverted == nil {
		return nil
	}
	return idx.recordsInOrder(idx.inverted.Lookup(token))
}

// TokensWithPrefix returns indexed tokens starting with prefix.
// Direct indexes have no token set and return nil.
func (idx *Index) TokensWithPrefix(prefix string, limit int) []string {
	if idx.inverted == nil {
		return nil
	}
	return idx.inverted.TokensWithPrefix(prefix, limit)
}

func (idx *Index) recordsInOrder(ids map[string]struct{}) []model.Record {
	positions := make([]int, 0, len(ids))
	for id := range ids {
		if pos, ok := idx.store.Position(id); ok {
			positions = append(positions, pos)
		}
	}
	sort.Ints(positions)

	all := idx.store.Records()
	records := make([]model.Record, 0, len(positions))
	for _, pos := range positions {
		records = append(records, all[pos])
	}
	return records
}

// TypoBudget returns the largest edit distance that can still reach threshold for a
// token of the given rune length, never less than 1.
func TypoBudget(tokenLen int, threshold float64) int {
	budget := int(math.Floor((1-threshold)*float64(tokenLen) + 1e-9))
	if budget < 1 {
		return 1
	}
	return budget
}
