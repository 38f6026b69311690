package api

import (
	"strings"
	"testing"

	"github.com/gcbaptista/go-portfolio/internal/catalog"
)

func TestValidationResult_AddError(t *testing.T) {
	result := &ValidationResult{Valid: true}

	if result.HasErrors() {
		t.Error("Expected HasErrors to be false for empty result")
	}

	result.AddError("field1", "error message")

	if result.Valid {
		t.Error("Expected Valid to be false after adding error")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(result.Errors))
	}
	if result.Errors[0].Field != "field1" || result.Errors[0].Message != "error message" {
		t.Errorf("Unexpected error %+v", result.Errors[0])
	}
}

func TestValidateRecordID(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		wantValid bool
	}{
		{"valid", "getting-started-nextjs-14", true},
		{"empty", "", false},
		{"whitespace", " 3 ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateRecordID(tt.id); got.Valid != tt.wantValid {
				t.Errorf("ValidateRecordID(%q).Valid = %v, want %v", tt.id, got.Valid, tt.wantValid)
			}
		})
	}
}

func TestValidateFacetName(t *testing.T) {
	facet, result := ValidateFacetName("year")
	if result.HasErrors() || facet != catalog.FacetYear {
		t.Errorf("Expected year facet, got %v (%v)", facet, result.Errors)
	}

	_, result = ValidateFacetName("colour")
	if !result.HasErrors() {
		t.Fatal("Expected an error for an unknown facet")
	}
	if result.Errors[0].Field != "facet" {
		t.Errorf("Expected field 'facet', got '%s'", result.Errors[0].Field)
	}
}

func TestValidateCriteria(t *testing.T) {
	tests := []struct {
		name      string
		criteria  catalog.Criteria
		wantField string
	}{
		{
			name:     "empty",
			criteria: catalog.Criteria{},
		},
		{
			name:     "query at the limit",
			criteria: catalog.Criteria{Query: strings.Repeat("é", 10)},
		},
		{
			name:      "query too long",
			criteria:  catalog.Criteria{Query: strings.Repeat("a", 11)},
			wantField: "q",
		},
		{
			name:      "too many tags",
			criteria:  catalog.Criteria{Tags: []string{"a", "b", "c", "d"}},
			wantField: "tag",
		},
		{
			name:      "year out of range",
			criteria:  catalog.Criteria{Years: []int{-1}},
			wantField: "year",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCriteria(tt.criteria, 10, 3)
			if tt.wantField == "" {
				if result.HasErrors() {
					t.Errorf("Unexpected errors: %v", result.Errors)
				}
				return
			}
			if !result.HasErrors() {
				t.Fatal("Expected validation errors")
			}
			if result.Errors[0].Field != tt.wantField {
				t.Errorf("Expected field %q, got %q", tt.wantField, result.Errors[0].Field)
			}
		})
	}
}

func TestValidateContactRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        ContactRequest
		wantFields []string
	}{
		{
			name: "valid",
			req:  ContactRequest{Name: " Ada ", Email: "ada@example.com", Message: "Hello"},
		},
		{
			name:       "all missing",
			req:        ContactRequest{},
			wantFields: []string{"name", "email", "message"},
		},
		{
			name:       "display name in email",
			req:        ContactRequest{Name: "Ada", Email: "Ada <ada@example.com>", Message: "Hello"},
			wantFields: []string{"email"},
		},
		{
			name:       "long subject",
			req:        ContactRequest{Name: "Ada", Email: "ada@example.com", Subject: strings.Repeat("s", 201), Message: "Hello"},
			wantFields: []string{"subject"},
		},
		{
			name:       "long message",
			req:        ContactRequest{Name: "Ada", Email: "ada@example.com", Message: strings.Repeat("m", 5001)},
			wantFields: []string{"message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			result := ValidateContactRequest(&req)

			var fields []string
			for _, e := range result.Errors {
				fields = append(fields, e.Field)
			}
			if strings.Join(fields, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("Expected errors on %v, got %v", tt.wantFields, fields)
			}
		})
	}

	req := ContactRequest{Name: "  Ada  ", Email: "ada@example.com", Message: " hi "}
	ValidateContactRequest(&req)
	if req.Name != "Ada" || req.Message != "hi" {
		t.Errorf("Expected fields to be trimmed, got %+v", req)
	}

	if !ValidateContactRequest(nil).HasErrors() {
		t.Error("Expected nil request to be invalid")
	}
}

func TestValidateLimit(t *testing.T) {
	tests := []struct {
		limit, expected int
	}{
		{0, 50},
		{-3, 50},
		{10, 10},
		{500, 200},
	}

	for _, tt := range tests {
		if got := ValidateLimit(tt.limit, 50, 200); got != tt.expected {
			t.Errorf("ValidateLimit(%d) = %d, want %d", tt.limit, got, tt.expected)
		}
	}
}
