package services

import (
	"context"

	"github.com/gcbaptista/go-fuzzy-search/internal/metrics"
	"github.com/gcbaptista/go-fuzzy-search/model"
)

// Searcher runs interactive queries. Each call supersedes the previous one.
type Searcher interface {
	Search(ctx context.Context, query string) (*model.Outcome, error)
}

// Looker runs independent queries that may execute concurrently.
type Looker interface {
	Lookup(ctx context.Context, query string) (*model.Outcome, error)
}

// Completer lists indexed tokens for autocomplete.
type Completer interface {
	Complete(prefix string, limit int) []string
}

// StatsProvider exposes query and cache statistics.
type StatsProvider interface {
	Stats() metrics.QueryStatsData
	CacheStats() metrics.CacheStats
}

// RecordReader gives read access to the indexed records.
type RecordReader interface {
	Records() []model.Record
	Get(id string) (model.Record, bool)
	Len() int
}

// QueryEngine is everything the HTTP layer needs from an engine.
type QueryEngine interface {
	Looker
	Completer
	StatsProvider
	RecordReader
}
