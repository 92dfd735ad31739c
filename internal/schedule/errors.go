package schedule

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an edit targets a slot id that does not
// exist for the owner. Deletes are idempotent and never return it.
var ErrNotFound = errors.New("availability slot not found")

type ErrorCode string

const (
	CodeMissingField             ErrorCode = "missing_field"
	CodeInvalidRange             ErrorCode = "invalid_range"
	CodeMissingRecurrencePattern ErrorCode = "missing_recurrence_pattern"
	CodeInvalidValue             ErrorCode = "invalid_value"
)

// ValidationError identifies the offending field so callers can render it
// without re-deriving validation logic.
type ValidationError struct {
	Field   string    `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Code: CodeMissingField, Message: "required"}
}

func invalidValue(field, message string) *ValidationError {
	return &ValidationError{Field: field, Code: CodeInvalidValue, Message: message}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// DataIntegrityWarning flags a stored record that could not participate in
// calendar resolution. Non-fatal: the record is skipped, the rest of the
// range still resolves.
type DataIntegrityWarning struct {
	Kind   string `json:"kind"` // "slot" or "contract"
	ID     string `json:"id"`
	Reason string `json:"reason"`
}
