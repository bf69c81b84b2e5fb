package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gcbaptista/go-fuzzy-search/config"
	"github.com/gcbaptista/go-fuzzy-search/index"
	"github.com/gcbaptista/go-fuzzy-search/internal/logger"
	"github.com/gcbaptista/go-fuzzy-search/internal/similarity"
	"github.com/gcbaptista/go-fuzzy-search/internal/synonyms"
	"github.com/gcbaptista/go-fuzzy-search/internal/tokenizer"
	"github.com/gcbaptista/go-fuzzy-search/model"
)

// minParallelRecords is the record count below which passes run on the calling goroutine.
const minParallelRecords = 64

// Options configures a Service.
type Options struct {
	Index               *index.Index
	Resolver            *synonyms.Resolver
	Matcher             *similarity.Matcher
	Messages            model.Messages
	SuggestOnNoMatch    bool
	SuggestionThreshold float64
	Workers             int
	Language            string
	Logger              *log.Logger
}

// Service runs the match pass and, when nothing matches, the suggestion pass over one index.
// It holds no per-query state and is safe for concurrent use.
type Service struct {
	index               *index.Index
	resolver            *synonyms.Resolver
	matcher             *similarity.Matcher
	messages            model.Messages
	suggestOnNoMatch    bool
	suggestionThreshold float64
	workers             int
	lang                language.Tag
	logger              *log.Logger

	fields map[string][]string // record ID -> normalized non-empty fields
}

// NewService creates a new search Service.
func NewService(opts Options) (*Service, error) {
	if opts.Index == nil {
		return nil, fmt.Errorf("index cannot be nil")
	}
	if opts.Matcher == nil {
		return nil, fmt.Errorf("matcher cannot be nil")
	}
	if opts.Resolver == nil {
		opts.Resolver = synonyms.NewResolver(nil, nil, nil)
	}
	if opts.Workers <= 0 {
		opts.Workers = config.DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	tag, err := language.Parse(opts.Language)
	if err != nil {
		tag = language.Und
	}

	svc := &Service{
		index:               opts.Index,
		resolver:            opts.Resolver,
		matcher:             opts.Matcher,
		messages:            opts.Messages,
		suggestOnNoMatch:    opts.SuggestOnNoMatch,
		suggestionThreshold: opts.SuggestionThreshold,
		workers:             opts.Workers,
		lang:                tag,
		logger:              opts.Logger,
	}
	svc.fields = make(map[string][]string, opts.Index.Len())
	for _, record := range opts.Index.Records() {
		svc.fields[record.ID] = svc.normalizeFields(record)
	}
	return svc, nil
}

func (s *Service) normalizeFields(record model.Record) []string {
	fields := make([]string, 0, len(record.Tags)+1)
	for _, field := range record.Fields() {
		if normalized := s.Normalize(field); normalized != "" {
			fields = append(fields, normalized)
		}
	}
	return fields
}

func (s *Service) fieldsOf(record model.Record) []string {
	if fields, ok := s.fields[record.ID]; ok {
		return fields
	}
	return s.normalizeFields(record)
}

// Normalize trims and lower-cases text using the configured language's casing rules
// (for example the dotted and dotless i in Turkish and Azerbaijani).
func (s *Service) Normalize(text string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Lower(s.lang).String(strings.TrimSpace(text))
}

// Search runs the pipeline for a query that is already normalized. The outcome holds
// the matches in insertion order, or the suggestion payload when nothing matched and
// suggestions are enabled, or neither.
func (s *Service) Search(ctx context.Context, query string) (*model.Outcome, error) {
	return s.search(ctx, query, s.resolver)
}

// SearchStaged is Search with synonym resolutions memoized through store instead of
// the service's own store, so a caller can decide later whether to keep them.
func (s *Service) SearchStaged(ctx context.Context, query string, store synonyms.Store) (*model.Outcome, error) {
	return s.search(ctx, query, s.resolver.WithStore(store))
}

func (s *Service) search(ctx context.Context, query string, resolver *synonyms.Resolver) (*model.Outcome, error) {
	outcome := &model.Outcome{Query: query}
	if query == "" {
		return outcome, nil
	}

	matches, err := s.match(ctx, query, resolver)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		outcome.Matches = matches
		return outcome, nil
	}
	if !s.suggestOnNoMatch {
		return outcome, nil
	}

	suggestion, err := s.Suggest(ctx, query)
	if err != nil {
		return nil, err
	}
	outcome.Suggestion = suggestion
	return outcome, nil
}

// Match returns every record with at least one field word matching query, in insertion order.
// In inverted mode only index candidates are scored first; when none of them match,
// the full record set is scored.
func (s *Service) Match(ctx context.Context, query string) ([]model.Record, error) {
	return s.match(ctx, query, s.resolver)
}

func (s *Service) match(ctx context.Context, query string, resolver *synonyms.Resolver) ([]model.Record, error) {
	budget := index.TypoBudget(len([]rune(query)), s.matcher.Threshold())
	candidates, err := s.index.Candidates(ctx, query, budget)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchPass(ctx, query, candidates, resolver)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 && len(candidates) < s.index.Len() {
		s.logger.Debug("candidate pass found nothing, scanning all records",
			"query", query, "candidates", len(candidates), "records", s.index.Len())
		return s.matchPass(ctx, query, s.index.Records(), resolver)
	}
	return matches, nil
}

func (s *Service) matchPass(ctx context.Context, query string, records []model.Record, resolver *synonyms.Resolver) ([]model.Record, error) {
	matched := make([]bool, len(records))
	err := s.forEach(ctx, len(records), func(i int) {
		matched[i] = s.matchRecord(query, records[i], resolver)
	})
	if err != nil {
		return nil, err
	}

	results := make([]model.Record, 0)
	for i, ok := range matched {
		if ok {
			results = append(results, records[i])
		}
	}
	return results, nil
}

// matchRecord checks query against each field, its synonyms, and for multi-word
// fields each word and its synonyms.
func (s *Service) matchRecord(query string, record model.Record, resolver *synonyms.Resolver) bool {
	for _, normalized := range s.fieldsOf(record) {
		if s.matchAny(query, resolver.Resolve(normalized)) {
			return true
		}

		words := tokenizer.Tokenize(normalized)
		if len(words) < 2 {
			continue
		}
		for _, word := range words {
			if s.matchAny(query, resolver.Resolve(word)) {
				return true
			}
		}
	}
	return false
}

func (s *Service) matchAny(query string, words []string) bool {
	for _, word := range words {
		if s.matcher.Match(query, word) {
			return true
		}
	}
	return false
}

type scoredRecord struct {
	record     model.Record
	similarity float64
	position   int
}

// Suggest finds records whose closest field is at least SuggestionThreshold similar to
// query by edit distance, most similar first (ties keep insertion order). The message is
// the "suggest" string when any were found and the "no results" string otherwise.
func (s *Service) Suggest(ctx context.Context, query string) (*model.Suggestion, error) {
	records := s.index.Records()
	best := make([]float64, len(records))

	err := s.forEach(ctx, len(records), func(i int) {
		best[i] = s.closestField(query, records[i])
	})
	if err != nil {
		return nil, err
	}

	kept := make([]scoredRecord, 0)
	for i, sim := range best {
		if sim > 0 && sim >= s.suggestionThreshold {
			kept = append(kept, scoredRecord{record: records[i], similarity: sim, position: i})
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].similarity > kept[j].similarity
	})

	suggestions := make([]model.Record, 0, len(kept))
	for _, k := range kept {
		suggestions = append(suggestions, k.record)
	}

	message := s.messages.NoResults
	if len(suggestions) > 0 {
		message = s.messages.Suggest
	}
	return &model.Suggestion{Message: message, Suggestions: suggestions}, nil
}

// closestField returns the best distance similarity between query and any field of record.
// Only strictly better fields replace the running best, which starts at 0.
func (s *Service) closestField(query string, record model.Record) float64 {
	alg := s.matcher.DistanceAlgorithm()
	scorer := s.matcher.Scorer()

	best := 0.0
	for _, normalized := range s.fieldsOf(record) {
		distance := scorer.Distance(alg, query, normalized)
		if sim := similarity.DistanceSimilarity(distance, query, normalized); sim > best {
			best = sim
		}
	}
	return best
}

// forEach calls fn for every index in [0, n), fanning out over contiguous chunks with at
// most workers goroutines. ctx is checked before each call; the first error stops the pass.
func (s *Service) forEach(ctx context.Context, n int, fn func(i int)) error {
	if n < minParallelRecords || s.workers == 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
		}
		return nil
	}

	chunk := (n + s.workers - 1) / s.workers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for start := 0; start < n; start += chunk {
		start, end := start, min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				fn(i)
			}
			return nil
		})
	}
	return g.Wait()
}
