package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Validation failures, matched with errors.Is through FieldError and ValidationError.
var (
	ErrUnknownField  = errors.New("unknown field")
	ErrMissingField  = errors.New("field required")
	ErrNullValue     = errors.New("field cannot be null")
	ErrWrongType     = errors.New("wrong value type")
	ErrTooLong       = errors.New("value too long")
	ErrNotAllowed    = errors.New("value not permitted")
	ErrPrecision     = errors.New("numeric precision exceeded")
	ErrInvalidFormat = errors.New("invalid format")
)

// FieldError reports a failed constraint on one field.
type FieldError struct {
	Field  string
	Err    error
	Detail string
}

func (e *FieldError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", e.Field, e.Err, e.Detail)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError aggregates every field failure found in one payload.
type ValidationError struct {
	Schema string
	Errors []*FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Error()
	}
	return fmt.Sprintf("invalid %s payload: %s", e.Schema, strings.Join(parts, "; "))
}

// Unwrap exposes the individual field errors to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, fe := range e.Errors {
		errs[i] = fe
	}
	return errs
}
