// Package api provides validation utilities for API request handling.
package api

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// MaxQueryLength bounds the number of characters accepted in a query.
	MaxQueryLength = 256
	// DefaultCompleteLimit is used when the complete endpoint gets no limit.
	DefaultCompleteLimit = 10
	// MaxCompleteLimit caps the number of completions returned.
	MaxCompleteLimit = 100
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateSearchRequest validates a search request. Blank queries are allowed
// and resolve to an empty outcome.
func ValidateSearchRequest(req *SearchRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req == nil {
		result.AddError("query", "Search request is required")
		return result
	}

	if !utf8.ValidString(req.Query) {
		result.AddError("query", "Query must be valid UTF-8")
		return result
	}

	if n := utf8.RuneCountInString(req.Query); n > MaxQueryLength {
		result.AddError("query", fmt.Sprintf("Query is %d characters long, the maximum is %d", n, MaxQueryLength))
	}

	return result
}

// ValidateLimit parses a limit parameter, applying the default when raw is empty
// and capping it at max.
func ValidateLimit(raw string, def, max int) (int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	if raw == "" {
		return def, result
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		result.AddError("limit", "Limit must be an integer")
		return def, result
	}
	if limit < 1 {
		result.AddError("limit", "Limit must be greater than 0")
		return def, result
	}
	if limit > max {
		limit = max
	}

	return limit, result
}

// ValidateRecordID validates a record ID path parameter
func ValidateRecordID(id string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if id == "" {
		result.AddError("id", "Record ID is required")
		return result
	}

	if strings.TrimSpace(id) != id {
		result.AddError("id", "Record ID cannot have leading or trailing whitespace")
	}

	return result
}
