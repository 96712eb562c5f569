package models

import (
	"errors"
	"fmt"
)

// Error kinds returned by the services. Use errors.Is to match them.
var (
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrValidation  = errors.New("validation error")
	ErrUnavailable = errors.New("unavailable")
	// ErrConflict is reserved for future uniqueness constraints
	ErrConflict = errors.New("conflict")
)

// Error carries an error kind, a human-readable message and an optional
// diagnostic cause
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is reports whether target is the kind of this error
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// Unwrap returns the diagnostic cause
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFoundError creates an error of kind ErrNotFound
func NotFoundError(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// ForbiddenError creates an error of kind ErrForbidden
func ForbiddenError(format string, args ...any) error {
	return &Error{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

// ValidationError creates an error of kind ErrValidation
func ValidationError(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// UnavailableError creates an error of kind ErrUnavailable
func UnavailableError(format string, args ...any) error {
	return &Error{Kind: ErrUnavailable, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the error kind of err or nil if err carries none
func KindOf(err error) error {
	for _, kind := range []error{ErrNotFound, ErrForbidden, ErrValidation, ErrUnavailable, ErrConflict} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
