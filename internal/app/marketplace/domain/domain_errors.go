package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every failure surfaced by this layer matches exactly one of
// these with errors.Is.
var (
	// ErrConstraintViolation covers unique, length and required-field violations.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrReferenceNotFound is returned when a foreign key points at a missing row.
	ErrReferenceNotFound = errors.New("referenced entity does not exist")
	// ErrEnumMismatch is returned when a categorical value is outside its fixed set.
	ErrEnumMismatch = errors.New("value is not in the allowed set")
)

// Entity errors as sentinel values
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrBusinessNotFound = errors.New("business not found")
	ErrProductNotFound  = errors.New("product not found")

	ErrDuplicate     = fmt.Errorf("%w: value already taken", ErrConstraintViolation)
	ErrHasDependents = errors.New("entity still owns dependent records")
)

// FieldError ties a taxonomy error to the field that caused it.
type FieldError struct {
	Field  string
	Err    error
	Detail string
}

// NewFieldError creates a FieldError.
func NewFieldError(field string, err error, detail string) *FieldError {
	return &FieldError{Field: field, Err: err, Detail: detail}
}

func (e *FieldError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Field, e.Err, e.Detail)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
