package engine

import (
	"fmt"
	"strings"

	"github.com/gcbaptista/go-fuzzy-search/config"
	"github.com/gcbaptista/go-fuzzy-search/index"
	"github.com/gcbaptista/go-fuzzy-search/internal/cache"
	internalErrors "github.com/gcbaptista/go-fuzzy-search/internal/errors"
	"github.com/gcbaptista/go-fuzzy-search/internal/messages"
	"github.com/gcbaptista/go-fuzzy-search/internal/search"
	"github.com/gcbaptista/go-fuzzy-search/internal/similarity"
	"github.com/gcbaptista/go-fuzzy-search/internal/synonyms"
	"github.com/gcbaptista/go-fuzzy-search/model"
)

// pipeline holds everything derived from one record set and one settings value.
// It is immutable once built; reconfiguration builds a new one and swaps it in,
// so a query keeps the pipeline it started with.
type pipeline struct {
	settings config.SearchSettings
	index    *index.Index
	matcher  *similarity.Matcher
	service  *search.Service
	cache    *cache.Cache[any] // query, suggestion and synonym entries
}

// buildPipeline validates settings and builds the cache, index, matcher and search service.
// Edit distances only depend on the strings, so the engine's memo is shared by every
// pipeline; it is bounded by similarity.DefaultMemoLimit and cleared on every swap.
func (e *Engine) buildPipeline(records []model.Record, settings config.SearchSettings) (*pipeline, error) {
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", internalErrors.ErrInvalidConfiguration, strings.Join(problems, "; "))
	}

	algorithms, unknown := settings.ResolveAlgorithms()
	for _, name := range unknown {
		e.logger.Warn("Unknown algorithm will never match", "algorithm", name)
	}

	results := cache.New[any](settings.CacheSize, settings.CacheTTL, cache.WithClock(e.now))

	idx, err := index.Build(records, settings.IndexMode, index.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}

	matcherOpts := []similarity.MatcherOption{
		similarity.WithScorer(similarity.NewScorer(e.memo, settings.NGramSize)),
		similarity.WithPrefixCap(settings.PrefixCap),
	}
	if e.customSearch != nil {
		matcherOpts = append(matcherOpts, similarity.WithCustom(e.customSearch))
	}
	matcher := similarity.NewMatcher(algorithms, settings.Threshold, matcherOpts...)

	provider := e.messages
	if provider == nil {
		provider = messages.NewCatalog(settings.CustomMessages)
	}

	service, err := search.NewService(search.Options{
		Index:               idx,
		Resolver:            synonyms.NewResolver(e.synonyms, e.usage, results),
		Matcher:             matcher,
		Messages:            provider.Messages(settings.Language),
		SuggestOnNoMatch:    settings.SuggestionsEnabled(),
		SuggestionThreshold: settings.SuggestionThreshold,
		Workers:             settings.Workers,
		Language:            settings.Language,
		Logger:              e.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	return &pipeline{
		settings: settings,
		index:    idx,
		matcher:  matcher,
		service:  service,
		cache:    results,
	}, nil
}
