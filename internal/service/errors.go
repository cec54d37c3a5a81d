package service

import (
	"errors"
	"fmt"

	"github.com/archivo/archivo/internal/repository"
)

// Catalog service errors. Every not-found kind wraps repository.ErrNotFound.
var (
	ErrLibraryNotFound       = fmt.Errorf("library not found: %w", repository.ErrNotFound)
	ErrBookNotFound          = fmt.Errorf("book not found: %w", repository.ErrNotFound)
	ErrOriginLibraryNotFound = fmt.Errorf("origin library does not exist: %w", repository.ErrNotFound)
	ErrFilterLibraryNotFound = fmt.Errorf("filter library does not exist: %w", repository.ErrNotFound)
)

// ValidationError reports a missing or malformed input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a *ValidationError and returns it
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// required rejects absent or null fields. Empty strings are accepted.
func required(field string, value *string) error {
	if value == nil {
		return &ValidationError{Field: field, Message: "field required"}
	}
	return nil
}
