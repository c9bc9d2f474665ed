// Package errs contains the error values shared by the store and its callers.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a primary key conflict.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalid is wrapped by every ValidationError.
	ErrInvalid = errors.New("invalid")
)

// ValidationError reports which field of a payload was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Invalid builds a ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// DecodeError reports a stored record body that could not be parsed.
type DecodeError struct {
	ID  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode record %s: %v", e.ID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
