package validate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidationFailed is the sentinel every *ValidationError unwraps to.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a validation error from messages
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

// Invalid formats the message for a field holding a bad value.
func Invalid(field string, value any) string {
	return fmt.Sprintf("Value '%v' is invalid for the field '%s'!", value, field)
}

// Builder accumulates validation errors
type Builder struct {
	errors []string
}

// AddError adds an error message unconditionally
func (b *Builder) AddError(message string) *Builder {
	b.errors = append(b.errors, message)
	return b
}

// AddErrorf adds a formatted error message
func (b *Builder) AddErrorf(format string, args ...any) *Builder {
	b.errors = append(b.errors, fmt.Sprintf(format, args...))
	return b
}

// AddInvalid records a bad value for a field.
func (b *Builder) AddInvalid(field string, value any) *Builder {
	return b.AddError(Invalid(field, value))
}

// Merge appends the messages of another validation error. Other errors are added verbatim.
func (b *Builder) Merge(err error) *Builder {
	if err == nil {
		return b
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		b.errors = append(b.errors, verr.Errors...)
		return b
	}
	return b.AddError(err.Error())
}

// HasErrors returns true if there are validation errors
func (b *Builder) HasErrors() bool {
	return len(b.errors) > 0
}

// Build returns the validation error or nil if no errors
func (b *Builder) Build() error {
	if len(b.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: b.errors}
}
