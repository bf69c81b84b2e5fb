package engine

import (
	"fmt"

	"github.com/gcbaptista/go-fuzzy-search/config"
	internalErrors "github.com/gcbaptista/go-fuzzy-search/internal/errors"
)

// UpdateSettings validates settings, rebuilds the pipeline with them and swaps it in.
// Cached results and memoized distances are discarded. Queries
// already running finish with the settings they started with. On error the
// current settings stay in place.
func (e *Engine) UpdateSettings(settings config.SearchSettings) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return internalErrors.ErrEngineClosed
	}

	pipe, err := e.buildPipeline(e.records, settings)
	if err != nil {
		return fmt.Errorf("failed to apply settings: %w", err)
	}

	e.pipe = pipe
	e.memo.Clear()
	e.debouncer.SetDelay(pipe.settings.DebounceDelay)
	e.logger.Info("Settings updated",
		"algorithms", pipe.settings.Algorithms,
		"threshold", pipe.settings.Threshold,
		"index_mode", pipe.settings.IndexMode)
	return nil
}
