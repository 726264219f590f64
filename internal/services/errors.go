package services

import (
	"errors"
	"fmt"
)

// Error kinds. Absent and unauthorized both map to ErrNotFound; the two
// cases are indistinguishable to callers.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid input")
	ErrInternal = errors.New("internal error")
)

// Error carries a human-readable reason tagged with one of the kind
// sentinels above, so handlers can branch with errors.Is while surfacing
// the message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func notFoundError(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func conflictError(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

func invalidError(message string) error {
	return &Error{Kind: ErrInvalid, Message: message}
}

func internalError(err error) error {
	return &Error{Kind: ErrInternal, Message: fmt.Sprintf("storage failure: %v", err)}
}
