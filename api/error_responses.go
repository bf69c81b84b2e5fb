package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-fuzzy-search/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeRecordNotFound   ErrorCode = "RECORD_NOT_FOUND"
	ErrorCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrorCodeQueryCancelled   ErrorCode = "QUERY_CANCELLED"

	// Server Error Codes (5xx)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrorCodeSearchFailed  ErrorCode = "SEARCH_FAILED"
	ErrorCodeQueryTimeout  ErrorCode = "QUERY_TIMEOUT"
	ErrorCodeEngineClosed  ErrorCode = "ENGINE_CLOSED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	// Add request ID if available
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.AbortWithStatusJSON(statusCode, errorResponse)
}

// SendValidationError sends a validation error with one detail per failed field
func SendValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendRecordNotFoundError sends a standardized record not found error
func SendRecordNotFoundError(c *gin.Context, id string) {
	SendError(c, http.StatusNotFound, ErrorCodeRecordNotFound, "Record '"+id+"' not found")
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendQueryError maps a query failure onto its HTTP status and error code
func SendQueryError(c *gin.Context, query string, err error) {
	switch {
	case errors.Is(err, internalErrors.ErrTimeout):
		SendError(c, http.StatusGatewayTimeout, ErrorCodeQueryTimeout, err.Error())
	case errors.Is(err, internalErrors.ErrEngineClosed):
		SendError(c, http.StatusServiceUnavailable, ErrorCodeEngineClosed, "Search engine is shutting down")
	case errors.Is(err, internalErrors.ErrCancelled):
		// Nobody is usually listening any more, but the status still shows up in logs and metrics
		SendError(c, statusClientClosedRequest, ErrorCodeQueryCancelled, err.Error())
	default:
		SendError(c, http.StatusInternalServerError, ErrorCodeSearchFailed,
			"Search failed for query '"+query+"': "+err.Error())
	}
}

// statusClientClosedRequest is the non-standard status used for requests the client abandoned.
const statusClientClosedRequest = 499
