// Package api provides validation utilities for API request handling.
package api

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/gcbaptista/go-portfolio/internal/catalog"
)

// Contact form limits.
const (
	maxNameLength    = 100
	maxSubjectLength = 200
	maxMessageLength = 5000
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

// ValidateRecordID validates a record identifier path parameter
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

// ValidateFacetName resolves a facet path parameter
func ValidateFacetName(name string) (catalog.Facet, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	facet, err := catalog.ParseFacet(name)
	if err != nil {
		result.AddError("facet", fmt.Sprintf("Unknown facet '%s'; expected one of tag, category, year", name))
	}
	return facet, result
}

// ValidateCriteria bounds the size of listing criteria
func ValidateCriteria(criteria catalog.Criteria, maxQueryLength, maxSelections int) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if maxQueryLength > 0 && utf8.RuneCountInString(criteria.Query) > maxQueryLength {
		result.AddError(catalog.ParamQuery, fmt.Sprintf("Query cannot be longer than %d characters", maxQueryLength))
	}

	if maxSelections > 0 {
		for _, facet := range catalog.Facets {
			if n := len(criteria.Selected(facet)); n > maxSelections {
				result.AddError(facet.String(), fmt.Sprintf("At most %d values can be selected, got %d", maxSelections, n))
			}
		}
	}

	for _, year := range criteria.Years {
		if year < 1 || year > 9999 {
			result.AddError(catalog.FacetYear.String(), fmt.Sprintf("Year %d is out of range", year))
		}
	}

	return result
}

// ValidateContactRequest validates a contact form submission
func ValidateContactRequest(req *ContactRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req == nil {
		result.AddError("request_body", "Contact request is required")
		return result
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	switch {
	case req.Name == "":
		result.AddError("name", "Name is required")
	case utf8.RuneCountInString(req.Name) > maxNameLength:
		result.AddError("name", fmt.Sprintf("Name cannot be longer than %d characters", maxNameLength))
	}

	if req.Email == "" {
		result.AddError("email", "Email is required")
	} else if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		result.AddError("email", "Email must be a valid address")
	}

	if utf8.RuneCountInString(req.Subject) > maxSubjectLength {
		result.AddError("subject", fmt.Sprintf("Subject cannot be longer than %d characters", maxSubjectLength))
	}

	switch {
	case req.Message == "":
		result.AddError("message", "Message is required")
	case utf8.RuneCountInString(req.Message) > maxMessageLength:
		result.AddError("message", fmt.Sprintf("Message cannot be longer than %d characters", maxMessageLength))
	}

	return result
}

// ValidateLimit clamps a list limit parameter
func ValidateLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
