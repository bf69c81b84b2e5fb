package index

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/gcbaptista/go-fuzzy-search/internal/similarity"
	"github.com/gcbaptista/go-fuzzy-search/internal/tokenizer"
	"github.com/gcbaptista/go-fuzzy-search/model"
)

// InvertedIndex maps every normalized token of a record's name and tags to the IDs of
// the records containing it. Tokens are also kept in a patricia trie for prefix walks.
type InvertedIndex struct {
	postings map[string]map[string]struct{} // token -> record IDs
	trie     *patricia.Trie
	typos    *similarity.TypoFinder
}

func newInvertedIndex(records []model.Record, logger *log.Logger) *InvertedIndex {
	ii := &InvertedIndex{
		postings: make(map[string]map[string]struct{}),
		trie:     patricia.NewTrie(),
	}

	tokens := make([]string, 0)
	for _, record := range records {
		for _, token := range tokenizer.TokenizeAll(record.Fields()...) {
			ids, ok := ii.postings[token]
			if !ok {
				ids = make(map[string]struct{})
				ii.postings[token] = ids
				ii.trie.Insert(patricia.Prefix(token), token)
				tokens = append(tokens, token)
			}
			ids[record.ID] = struct{}{}
		}
	}

	ii.typos = similarity.NewTypoFinder(tokens, logger)
	return ii
}

// Len returns the number of distinct tokens.
func (ii *InvertedIndex) Len() int {
	return len(ii.postings)
}

// Has reports whether token is an index key.
func (ii *InvertedIndex) Has(token string) bool {
	_, ok := ii.postings[token]
	return ok
}

// Lookup returns the IDs of records containing token. The map must not be modified.
func (ii *InvertedIndex) Lookup(token string) map[string]struct{} {
	return ii.postings[token]
}

// TokensWithPrefix returns up to limit tokens starting with prefix in lexical order.
// limit <= 0 means unlimited.
func (ii *InvertedIndex) TokensWithPrefix(prefix string, limit int) []string {
	tokens := make([]string, 0)
	_ = ii.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		tokens = append(tokens, string(p))
		return nil
	})
	sort.Strings(tokens)
	if limit > 0 && len(tokens) > limit {
		tokens = tokens[:limit]
	}
	return tokens
}

func (ii *InvertedIndex) candidateIDs(ctx context.Context, query string, budget int) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	add := func(token string) {
		for id := range ii.postings[token] {
			ids[id] = struct{}{}
		}
	}

	for _, qt := range tokenizer.Tokenize(query) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		add(qt)
		for _, token := range ii.TokensWithPrefix(qt, 0) {
			add(token)
		}
		for _, token := range ii.typos.Find(qt, budget, 0) {
			add(token)
		}
	}
	return ids, nil
}
