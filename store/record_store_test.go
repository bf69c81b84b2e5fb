package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/go-fuzzy-search/internal/errors"
	"github.com/gcbaptista/go-fuzzy-search/model"
)

func TestNewRecordStore(t *testing.T) {
	records := []model.Record{
		{ID: "2", Name: "grape", Tags: []string{"fruit"}},
		{ID: "1", Name: "apple", Tags: []string{"fruit"}},
	}

	rs, err := NewRecordStore(records)
	require.NoError(t, err)

	assert.Equal(t, 2, rs.Len())
	assert.Equal(t, "grape", rs.Records()[0].Name, "insertion order is preserved")

	got, ok := rs.Get("1")
	require.True(t, ok)
	assert.Equal(t, "apple", got.Name)

	pos, ok := rs.Position("1")
	require.True(t, ok)
	assert.Equal(t, 1, pos)

	_, ok = rs.Get("3")
	assert.False(t, ok)
}

func TestNewRecordStore_CopiesTags(t *testing.T) {
	records := []model.Record{{ID: "1", Name: "apple", Tags: []string{"fruit"}}}
	rs, err := NewRecordStore(records)
	require.NoError(t, err)

	records[0].Tags[0] = "vegetable"
	got, _ := rs.Get("1")
	assert.Equal(t, []string{"fruit"}, got.Tags)
}

func TestNewRecordStore_InvalidRecords(t *testing.T) {
	tests := []struct {
		name         string
		records      []model.Record
		wantPosition int
	}{
		{
			name:         "missing id",
			records:      []model.Record{{ID: "1", Name: "apple"}, {Name: "grape"}},
			wantPosition: 1,
		},
		{
			name:         "blank id",
			records:      []model.Record{{ID: "  ", Name: "apple"}},
			wantPosition: 0,
		},
		{
			name:         "duplicate id",
			records:      []model.Record{{ID: "1", Name: "apple"}, {ID: "2"}, {ID: "1", Name: "grape"}},
			wantPosition: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := NewRecordStore(tt.records)
			require.Error(t, err)
			assert.Nil(t, rs)
			assert.ErrorIs(t, err, internalErrors.ErrInvalidRecord)

			var recordErr *internalErrors.InvalidRecordError
			require.ErrorAs(t, err, &recordErr)
			assert.Equal(t, tt.wantPosition, recordErr.Position)
		})
	}
}

func TestNewRecordStore_Empty(t *testing.T) {
	rs, err := NewRecordStore(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, rs.Len())
	assert.Empty(t, rs.Records())
}
