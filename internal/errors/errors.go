package errors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common error conditions
var (
	// ErrTimeout is returned when a query did not settle within the configured timeout
	ErrTimeout = errors.New("query timed out")

	// ErrCancelled is returned when a newer query superseded this one, or the caller gave up
	ErrCancelled = errors.New("query cancelled")

	// ErrInvalidConfiguration is returned when settings fail validation
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidRecord is returned when a record cannot be indexed
	ErrInvalidRecord = errors.New("invalid record")

	// ErrEngineClosed is returned for queries submitted after Close
	ErrEngineClosed = errors.New("engine closed")
)

// QueryTimeoutError represents a query that lost the race against its timeout
type QueryTimeoutError struct {
	Query   string
	Timeout time.Duration
}

func (e *QueryTimeoutError) Error() string {
	return fmt.Sprintf("query '%s' timed out after %v", e.Query, e.Timeout)
}

func (e *QueryTimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// NewQueryTimeoutError creates a new QueryTimeoutError
func NewQueryTimeoutError(query string, timeout time.Duration) *QueryTimeoutError {
	return &QueryTimeoutError{Query: query, Timeout: timeout}
}

// QueryCancelledError represents a query that never delivered a result.
// Cause is the caller's context error when the caller gave up, nil when superseded.
type QueryCancelledError struct {
	Query  string
	Reason string
	Cause  error
}

func (e *QueryCancelledError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("query '%s' cancelled: %s", e.Query, e.Reason)
	}
	return fmt.Sprintf("query '%s' cancelled", e.Query)
}

func (e *QueryCancelledError) Is(target error) bool {
	return target == ErrCancelled
}

func (e *QueryCancelledError) Unwrap() error {
	return e.Cause
}

// NewQueryCancelledError creates a new QueryCancelledError
func NewQueryCancelledError(query, reason string, cause ...error) *QueryCancelledError {
	err := &QueryCancelledError{Query: query, Reason: reason}
	if len(cause) > 0 {
		err.Cause = cause[0]
	}
	return err
}

// InvalidRecordError represents a record rejected during index construction
type InvalidRecordError struct {
	Position int
	ID       string
	Reason   string
}

func (e *InvalidRecordError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("record '%s' at position %d: %s", e.ID, e.Position, e.Reason)
	}
	return fmt.Sprintf("record at position %d: %s", e.Position, e.Reason)
}

func (e *InvalidRecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}

// NewInvalidRecordError creates a new InvalidRecordError
func NewInvalidRecordError(position int, id, reason string) *InvalidRecordError {
	return &InvalidRecordError{Position: position, ID: id, Reason: reason}
}

// UnknownAlgorithmError represents an algorithm name outside the supported set
type UnknownAlgorithmError struct {
	Name string
}

func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("unknown algorithm '%s'", e.Name)
}

func (e *UnknownAlgorithmError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// NewUnknownAlgorithmError creates a new UnknownAlgorithmError
func NewUnknownAlgorithmError(name string) *UnknownAlgorithmError {
	return &UnknownAlgorithmError{Name: name}
}

// ValidationError represents a settings validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
