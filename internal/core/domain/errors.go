package domain

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrBuildingNotFound   = errors.New("building not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrForbidden          = errors.New("operation not permitted")
	ErrTaskClosed         = errors.New("task is closed")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrPageNotFound       = errors.New("page not found")
)

// Field error codes, translated by the transport.
const (
	FieldRequired      = "required"
	FieldTooLong       = "too_long"
	FieldInvalidChoice = "invalid_choice"
	FieldInvalid       = "invalid"
)

type FieldErrors map[string][]string

func (e FieldErrors) Add(field, code string) {
	e[field] = append(e[field], code)
}

func (e FieldErrors) Merge(other FieldErrors) {
	for field, codes := range other {
		for _, code := range codes {
			e.Add(field, code)
		}
	}
}

func (e FieldErrors) Empty() bool { return len(e) == 0 }

func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

type ValidationError struct {
	Fields FieldErrors
}

func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields.Fields())
}

// PersistenceError wraps a storage failure of a lifecycle operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }
