package core

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when an admin operation carries a password
// that does not match the configured secret.
var ErrUnauthorized = errors.New("unauthorized")

// NotFoundError reports an operation that referenced an unknown record.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// ValidationError reports malformed input on a create or update operation.
// The store rejects the input without mutating any state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// PersistenceError wraps a failed load or save of a backing file. In-memory
// state is left as the last successfully computed value; there is no retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}
