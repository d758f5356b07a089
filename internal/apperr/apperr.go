// Package apperr defines the application's error taxonomy. Every business
// rule failure is represented as an *Error carrying a Kind; handlers map
// kinds to HTTP status codes with HTTPStatus and never inspect messages.
// Unexpected failures (connectivity, scan errors) are plain errors and fall
// through to a generic 500 at the boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind enumerates the expected business failures.
type Kind int

const (
	// InvalidTimestamp means a supplied instant could not be parsed.
	InvalidTimestamp Kind = iota
	// InvalidWindow means the start of a window is after its end.
	InvalidWindow
	// WindowInPast means the requested start is not in the future.
	WindowInPast
	// QuotaExceeded means the weekly booking cap was already met.
	QuotaExceeded
	// InsertFailed means a create was rejected because the row would
	// collide with an existing one, whether caught by a handler's
	// uniqueness pre-check or by the storage layer itself.
	InsertFailed
	// NotFound means no active row matched the identifier or query.
	NotFound
)

// String returns the snake_case name of the kind, used in logs and
// response bodies.
func (k Kind) String() string {
	switch k {
	case InvalidTimestamp:
		return "invalid_timestamp"
	case InvalidWindow:
		return "invalid_window"
	case WindowInPast:
		return "window_in_past"
	case QuotaExceeded:
		return "quota_exceeded"
	case InsertFailed:
		return "insert_failed"
	case NotFound:
		return "not_found"
	}
	return "unknown"
}

// Error is a tagged business error. Kind identifies the rule that failed,
// Message is human readable, and Err optionally wraps an underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an *Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with fmt.Sprintf formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error that carries an underlying cause. The cause is
// reachable through errors.Unwrap and errors.Is.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err. The second return is false when err
// is not an *Error anywhere in its chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// HTTPStatus maps a kind to the status code returned at the HTTP boundary.
// All business failures are unprocessable-entity responses; anything that
// is not a tagged error is a system failure and gets a 500 from callers.
func HTTPStatus(kind Kind) int {
	switch kind {
	case InvalidTimestamp, InvalidWindow, WindowInPast, QuotaExceeded, InsertFailed, NotFound:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
