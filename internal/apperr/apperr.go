// Package apperr carries the error taxonomy shared between the service layer
// and the HTTP handlers: every failure has a stable machine-checkable kind
// plus a human-readable message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for authorization and transport purposes.
type Kind int

const (
	// Internal is an unexpected failure (storage error, bug). Default kind.
	Internal Kind = iota
	// Validation is a missing or malformed request field.
	Validation
	// Auth is a bad-credentials or missing-session failure.
	Auth
	// Forbidden means the actor is authenticated but not entitled.
	Forbidden
	// NotFound means the target entity does not exist.
	NotFound
	// Conflict is a uniqueness or state violation (duplicate username,
	// double reservation).
	Conflict
)

// Error is a kind-tagged error. It may wrap an underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a kind-tagged error with the given message.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a kind-tagged error with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags an underlying error with a kind and message. Returns nil when
// err is nil.
func Wrap(kind Kind, message string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain. Unclassified errors report
// Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf returns the taxonomy message for err, or a generic fallback for
// unclassified errors so internal detail never leaks to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// Status maps an error to its HTTP status code. Conflict maps to 400 rather
// than 409 to match the public API contract.
func Status(err error) int {
	switch KindOf(err) {
	case Validation, Conflict:
		return http.StatusBadRequest
	case Auth:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
