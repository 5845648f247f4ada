// Package schema turns untrusted input into typed, validated values.
//
// Parsing is a two-stage pipeline. Coerce converts raw values (a decoded JSON
// object or HTML form strings) into the types each field expects, enforcing
// presence of required fields and filling defaults. Validate then checks the
// typed value against its struct-tag rules. Both stages report the first
// offending field only.
package schema

import (
	"errors"
	"fmt"
)

// ValidationError describes the first field that failed coercion or validation.
// It doubles as the 400 response body.
type ValidationError struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AsValidationError extracts a *ValidationError from err's chain
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
