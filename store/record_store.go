package store

import (
	"strconv"
	"strings"

	"github.com/gcbaptista/go-fuzzy-search/internal/errors"
	"github.com/gcbaptista/go-fuzzy-search/model"
)

// RecordStore holds records in insertion order with an ID lookup.
// It is built once and read-only afterwards, so it needs no locking.
type RecordStore struct {
	records    []model.Record
	idPosition map[string]int // External ID to position in records
}

// NewRecordStore validates records and stores them. A record with an empty ID or an
// ID already seen fails the whole construction with an InvalidRecordError.
func NewRecordStore(records []model.Record) (*RecordStore, error) {
	rs := &RecordStore{
		records:    make([]model.Record, 0, len(records)),
		idPosition: make(map[string]int, len(records)),
	}

	for i, record := range records {
		if strings.TrimSpace(record.ID) == "" {
			return nil, errors.NewInvalidRecordError(i, "", "missing id")
		}
		if prev, exists := rs.idPosition[record.ID]; exists {
			return nil, errors.NewInvalidRecordError(i, record.ID, "duplicate id (first seen at position "+strconv.Itoa(prev)+")")
		}
		rs.idPosition[record.ID] = len(rs.records)
		rs.records = append(rs.records, cloneRecord(record))
	}
	return rs, nil
}

// Records returns the records in insertion order. Callers must not modify the slice.
func (rs *RecordStore) Records() []model.Record {
	return rs.records
}

// Get returns the record with the given ID.
func (rs *RecordStore) Get(id string) (model.Record, bool) {
	pos, ok := rs.idPosition[id]
	if !ok {
		return model.Record{}, false
	}
	return rs.records[pos], true
}

// Position returns the insertion position of id.
func (rs *RecordStore) Position(id string) (int, bool) {
	pos, ok := rs.idPosition[id]
	return pos, ok
}

// Len returns the number of records.
func (rs *RecordStore) Len() int {
	return len(rs.records)
}

// cloneRecord copies the tag slice so later caller mutations cannot leak in.
func cloneRecord(r model.Record) model.Record {
	if r.Tags != nil {
		r.Tags = append([]string(nil), r.Tags...)
	}
	return r
}
