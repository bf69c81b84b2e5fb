package engine

import (
	"fmt"

	internalErrors "github.com/gcbaptista/go-fuzzy-search/internal/errors"
	"github.com/gcbaptista/go-fuzzy-search/model"
)

// SetRecords rebuilds the index over records with the active settings and swaps it in.
// The new index starts with an empty cache and distance memo. On error the current
// index stays in place.
func (e *Engine) SetRecords(records []model.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return internalErrors.ErrEngineClosed
	}

	owned := append([]model.Record(nil), records...)
	pipe, err := e.buildPipeline(owned, e.pipe.settings)
	if err != nil {
		return fmt.Errorf("failed to rebuild index: %w", err)
	}

	e.records = owned
	e.pipe = pipe
	e.memo.Clear()
	e.logger.Info("Index rebuilt", "records", pipe.index.Len(), "index_mode", pipe.settings.IndexMode)
	return nil
}

// Records returns the indexed records in insertion order.
func (e *Engine) Records() []model.Record {
	return e.current().index.Records()
}

// Get returns the record with the given ID.
func (e *Engine) Get(id string) (model.Record, bool) {
	return e.current().index.Get(id)
}

// Len returns the number of indexed records.
func (e *Engine) Len() int {
	return e.current().index.Len()
}

// Complete returns indexed tokens starting with prefix, at most limit of them
// (no limit when limit <= 0). Only inverted indexes hold tokens; direct indexes
// return nil.
func (e *Engine) Complete(prefix string, limit int) []string {
	pipe := e.current()
	return pipe.index.TokensWithPrefix(pipe.service.Normalize(prefix), limit)
}
