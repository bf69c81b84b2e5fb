package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-fuzzy-search/config"
	internalErrors "github.com/gcbaptista/go-fuzzy-search/internal/errors"
	"github.com/gcbaptista/go-fuzzy-search/internal/logger"
	"github.com/gcbaptista/go-fuzzy-search/model"
)

func fruitRecords() []model.Record {
	return []model.Record{
		{ID: "1", Name: "apple", Tags: []string{"fruit"}},
		{ID: "2", Name: "grape", Tags: []string{"fruit"}},
		{ID: "3", Name: "Green Apple", Tags: []string{"fruit", "sour snack"}},
		{ID: "4", Name: "banana"},
	}
}

func recordIDs(records []model.Record) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestBuild_Direct(t *testing.T) {
	idx, err := Build(fruitRecords(), "")
	require.NoError(t, err)

	assert.Equal(t, config.IndexModeDirect, idx.Mode())
	assert.Equal(t, 4, idx.Len())
	assert.Nil(t, idx.Inverted())

	rec, ok := idx.Get("2")
	require.True(t, ok)
	assert.Equal(t, "grape", rec.Name)

	candidates, err := idx.Candidates(context.Background(), "anything", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, recordIDs(candidates))

	assert.Nil(t, idx.Lookup("apple"))
	assert.Nil(t, idx.TokensWithPrefix("ap", 0))
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build([]model.Record{{ID: "1"}, {ID: "1"}}, config.IndexModeInverted)
	assert.ErrorIs(t, err, internalErrors.ErrInvalidRecord)

	_, err = Build([]model.Record{{Name: "no id"}}, config.IndexModeDirect)
	assert.ErrorIs(t, err, internalErrors.ErrInvalidRecord)

	_, err = Build(fruitRecords(), "btree")
	assert.ErrorIs(t, err, internalErrors.ErrInvalidConfiguration)
}

func TestInvertedIndex_EveryTokenIsAKey(t *testing.T) {
	records := fruitRecords()
	idx, err := Build(records, config.IndexModeInverted, WithLogger(logger.Discard()))
	require.NoError(t, err)

	inv := idx.Inverted()
	require.NotNil(t, inv)

	for _, token := range []string{"apple", "grape", "fruit", "green", "sour", "snack", "banana"} {
		assert.True(t, inv.Has(token), token)
	}
	assert.False(t, inv.Has("Green"), "tokens are lower-cased")
	assert.Equal(t, 7, inv.Len())

	assert.Equal(t, []string{"1", "3"}, recordIDs(idx.Lookup("apple")))
	assert.Equal(t, []string{"1", "2", "3"}, recordIDs(idx.Lookup("fruit")))
	assert.Empty(t, idx.Lookup("kiwi"))
}

func TestInvertedIndex_TokensWithPrefix(t *testing.T) {
	idx, err := Build([]model.Record{
		{ID: "1", Name: "apricot"},
		{ID: "2", Name: "apple pie"},
		{ID: "3", Name: "application"},
		{ID: "4", Name: "banana"},
	}, config.IndexModeInverted)
	require.NoError(t, err)

	assert.Equal(t, []string{"application", "apple", "apricot"}, idx.TokensWithPrefix("ap", 0))
	assert.Equal(t, []string{"application", "apple"}, idx.TokensWithPrefix("appl", 0))
	assert.Equal(t, []string{"application"}, idx.TokensWithPrefix("ap", 1))
	assert.Empty(t, idx.TokensWithPrefix("z", 0))
}

func TestInvertedIndex_Candidates(t *testing.T) {
	idx, err := Build(fruitRecords(), config.IndexModeInverted)
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name   string
		query  string
		budget int
		want   []string
	}{
		{"exact token", "grape", 1, []string{"2"}},
		{"prefix", "ban", 1, []string{"4"}},
		{"typo within budget", "aple", 1, []string{"1", "3"}},
		{"multi-token query", "sour grape", 1, []string{"2", "3"}},
		{"no candidate", "xyz", 1, []string{}},
		{"insertion order is kept", "fruit", 1, []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := idx.Candidates(ctx, tt.query, tt.budget)
			require.NoError(t, err)
			assert.Equal(t, tt.want, recordIDs(candidates))
		})
	}
}

func TestInvertedIndex_CandidatesHonoursContext(t *testing.T) {
	idx, err := Build(fruitRecords(), config.IndexModeInverted)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = idx.Candidates(ctx, "apple", 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTypoBudget(t *testing.T) {
	assert.Equal(t, 1, TypoBudget(5, 0.8))
	assert.Equal(t, 2, TypoBudget(10, 0.8))
	assert.Equal(t, 1, TypoBudget(2, 0.9))
	assert.Equal(t, 5, TypoBudget(10, 0.5))
}
