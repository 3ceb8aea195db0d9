// internal/domain/entity/errors.go
package entity

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups for flights or users that do not exist
var ErrNotFound = errors.New("not found")

// ValidationError rejects malformed or rule-violating input before any
// persistence or notification happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a field
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
