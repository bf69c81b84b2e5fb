package api

import (
	"strings"
	"testing"
)

func TestValidationResult_AddError(t *testing.T) {
	result := &ValidationResult{Valid: true}

	result.AddError("field1", "error message")

	if result.Valid {
		t.Error("Expected Valid to be false after adding error")
	}

	if len(result.Errors) != 1 {
		t.Errorf("Expected 1 error, got %d", len(result.Errors))
	}

	if result.Errors[0].Field != "field1" {
		t.Errorf("Expected field 'field1', got '%s'", result.Errors[0].Field)
	}

	if result.Errors[0].Message != "error message" {
		t.Errorf("Expected message 'error message', got '%s'", result.Errors[0].Message)
	}
}

func TestValidationResult_HasErrors(t *testing.T) {
	result := &ValidationResult{Valid: true}

	if result.HasErrors() {
		t.Error("Expected HasErrors to be false for empty result")
	}

	result.AddError("field", "message")

	if !result.HasErrors() {
		t.Error("Expected HasErrors to be true after adding error")
	}
}

func TestValidateSearchRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       *SearchRequest
		wantValid bool
	}{
		{"valid query", &SearchRequest{Query: "apple"}, true},
		{"blank query", &SearchRequest{Query: ""}, true},
		{"multi-byte query at the limit", &SearchRequest{Query: strings.Repeat("ı", MaxQueryLength)}, true},
		{"query too long", &SearchRequest{Query: strings.Repeat("a", MaxQueryLength+1)}, false},
		{"invalid UTF-8", &SearchRequest{Query: "\xff\xfe"}, false},
		{"nil request", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSearchRequest(tt.req)
			if result.Valid != tt.wantValid {
				t.Errorf("Expected valid=%v, got %v (errors: %v)", tt.wantValid, result.Valid, result.Errors)
			}
		})
	}
}

func TestValidateLimit(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantLimit int
		wantValid bool
	}{
		{"empty uses default", "", DefaultCompleteLimit, true},
		{"valid limit", "5", 5, true},
		{"capped at max", "1000", MaxCompleteLimit, true},
		{"zero", "0", DefaultCompleteLimit, false},
		{"negative", "-3", DefaultCompleteLimit, false},
		{"not a number", "ten", DefaultCompleteLimit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, result := ValidateLimit(tt.raw, DefaultCompleteLimit, MaxCompleteLimit)
			if limit != tt.wantLimit {
				t.Errorf("Expected limit %d, got %d", tt.wantLimit, limit)
			}
			if result.Valid != tt.wantValid {
				t.Errorf("Expected valid=%v, got %v", tt.wantValid, result.Valid)
			}
		})
	}
}

func TestValidateRecordID(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		wantValid bool
		wantError string
	}{
		{name: "valid id", id: "rec-1", wantValid: true},
		{name: "empty id", id: "", wantValid: false, wantError: "Record ID is required"},
		{name: "padded id", id: " rec-1", wantValid: false, wantError: "Record ID cannot have leading or trailing whitespace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateRecordID(tt.id)
			if result.Valid != tt.wantValid {
				t.Errorf("Expected valid=%v, got %v", tt.wantValid, result.Valid)
			}
			if tt.wantError != "" && (len(result.Errors) == 0 || result.Errors[0].Message != tt.wantError) {
				t.Errorf("Expected error %q, got %v", tt.wantError, result.Errors)
			}
		})
	}
}
