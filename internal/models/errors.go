// ABOUTME: Validation error taxonomy for run and mood payloads.
// ABOUTME: Sentinel kinds for errors.Is plus the user-facing message for API responses.
package models

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Match with errors.Is against any *ValidationError.
var (
	ErrInvalidDateTimeFormat = errors.New("invalid datetime format")
	ErrInvalidTimeFormat     = errors.New("invalid time format")
	ErrMissingField          = errors.New("missing required field")
	ErrInvalidField          = errors.New("invalid field")
	ErrInvalidDistance       = errors.New("invalid distance")
	ErrInvalidLevel          = errors.New("invalid level")
)

// User-facing messages shared by every surface.
const (
	MsgInvalidDateTimeFormat = "Invalid datetime format. Use YYYY-MM-DDTHH:MM"
	MsgInvalidTimeFormat     = "Time must be in HH:MM:SS format"
	MsgInvalidDistance       = "Distance must be greater than zero"
)

// ValidationError is returned when caller input is rejected.
// Message is safe to show to the caller as-is.
type ValidationError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// MissingField reports an absent required field.
func MissingField(field string) *ValidationError {
	return &ValidationError{
		Kind:    ErrMissingField,
		Field:   field,
		Message: fmt.Sprintf("Missing required field: %s", field),
	}
}

// InvalidField reports a field that is present but has the wrong shape.
func InvalidField(field, reason string) *ValidationError {
	return &ValidationError{
		Kind:    ErrInvalidField,
		Field:   field,
		Message: fmt.Sprintf("%s %s", field, reason),
	}
}

func invalidDateTime(field string) *ValidationError {
	return &ValidationError{Kind: ErrInvalidDateTimeFormat, Field: field, Message: MsgInvalidDateTimeFormat}
}

func invalidTime(field string) *ValidationError {
	return &ValidationError{Kind: ErrInvalidTimeFormat, Field: field, Message: MsgInvalidTimeFormat}
}
