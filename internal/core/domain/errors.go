package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrUserNotFound = errors.New("user not found")

	// ErrForbidden means the entity exists but the requester does not own it
	// (or lacks the admin role). Deliberately distinct from not-found.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidUserID means the requester identity is missing or not a
	// well-formed id. Raised before any query runs.
	ErrInvalidUserID = errors.New("invalid user id")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSelfTarget guards admin operations an admin may not apply to their
	// own account (delete, role change).
	ErrSelfTarget = errors.New("cannot target own account")

	// ErrConflict is reserved for a future optimistic-lock version check.
	// Nothing produces it today.
	ErrConflict = errors.New("conflict")
)

type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated field of a request. Callers build
// it with Add and return OrNil so a clean input yields a plain nil error.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

func (e *ValidationError) OrNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

func NewValidationError(field, message string) *ValidationError {
	verr := &ValidationError{}
	verr.Add(field, message)
	return verr
}
