package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrCatalogNotFound is returned when a catalog name does not resolve
	ErrCatalogNotFound = errors.New("catalog not found")

	// ErrRecordNotFound is returned when a record is not present in a catalog
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateRecord is returned when a catalog is built with a repeated identifier
	ErrDuplicateRecord = errors.New("duplicate record")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrUnknownFacet is returned when a facet name does not resolve
	ErrUnknownFacet = errors.New("unknown facet")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// CatalogNotFoundError represents a catalog not found error with context
type CatalogNotFoundError struct {
	Name string
}

func (e *CatalogNotFoundError) Error() string {
	return fmt.Sprintf("catalog named '%s' not found", e.Name)
}

func (e *CatalogNotFoundError) Is(target error) bool {
	return target == ErrCatalogNotFound
}

// NewCatalogNotFoundError creates a new CatalogNotFoundError
func NewCatalogNotFoundError(name string) *CatalogNotFoundError {
	return &CatalogNotFoundError{Name: name}
}

// RecordNotFoundError represents a record not found error with context
type RecordNotFoundError struct {
	RecordID string
	Catalog  string
}

func (e *RecordNotFoundError) Error() string {
	if e.Catalog != "" {
		return fmt.Sprintf("record with ID '%s' not found in catalog '%s'", e.RecordID, e.Catalog)
	}
	return fmt.Sprintf("record with ID '%s' not found", e.RecordID)
}

func (e *RecordNotFoundError) Is(target error) bool {
	return target == ErrRecordNotFound
}

// NewRecordNotFoundError creates a new RecordNotFoundError
func NewRecordNotFoundError(recordID string, catalog ...string) *RecordNotFoundError {
	err := &RecordNotFoundError{RecordID: recordID}
	if len(catalog) > 0 {
		err.Catalog = catalog[0]
	}
	return err
}

// DuplicateRecordError reports a record identifier that appears more than once
type DuplicateRecordError struct {
	RecordID string
	Catalog  string
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("record ID '%s' appears more than once in catalog '%s'", e.RecordID, e.Catalog)
}

func (e *DuplicateRecordError) Is(target error) bool {
	return target == ErrDuplicateRecord || target == ErrInvalidInput
}

// NewDuplicateRecordError creates a new DuplicateRecordError
func NewDuplicateRecordError(recordID, catalog string) *DuplicateRecordError {
	return &DuplicateRecordError{RecordID: recordID, Catalog: catalog}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// UnknownFacetError is returned for a facet name outside the supported set.
// It also matches ErrInvalidInput so request handlers can treat it as a 400.
type UnknownFacetError struct {
	Name string
}

func (e *UnknownFacetError) Error() string {
	return fmt.Sprintf("unknown facet '%s' (expected tag, category or year)", e.Name)
}

func (e *UnknownFacetError) Is(target error) bool {
	return target == ErrUnknownFacet || target == ErrInvalidInput
}

// NewUnknownFacetError creates a new UnknownFacetError
func NewUnknownFacetError(name string) *UnknownFacetError {
	return &UnknownFacetError{Name: name}
}

// ValidationError represents an input validation error with context
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
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
