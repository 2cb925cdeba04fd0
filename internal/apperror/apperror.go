// Package apperror defines the operational error kinds surfaced by the lending engine.
//
// Every error returned from a lifecycle operation is either an *Error carrying one of the
// Err* kinds below or an unexpected infrastructure failure. Callers branch on the kind:
//
//	if errors.Is(err, apperror.ErrUnavailable) { ... }
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. They are matched with errors.Is against any *Error.
var (
	ErrNotFound           = errors.New("not found")
	ErrUnavailable        = errors.New("unavailable")
	ErrBorrowLimitReached = errors.New("borrow limit reached")
	ErrAlreadyBorrowed    = errors.New("already borrowed")
	ErrInvalidState       = errors.New("invalid state")
	ErrConflict           = errors.New("conflict")
	ErrInvalid            = errors.New("invalid input")
	ErrInternal           = errors.New("internal fault")
)

// Error is an expected, user-facing failure with a machine-readable code.
type Error struct {
	Kind    error
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind.
func New(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// NotFound reports a missing book, user, library or record.
// Resource is upper-cased into the code, e.g. "book" -> BOOK_NOT_FOUND.
func NotFound(resource string) *Error {
	return &Error{
		Kind:    ErrNotFound,
		Code:    upper(resource) + "_NOT_FOUND",
		Message: capitalize(resource) + " not found",
	}
}

func Unavailable(message string) *Error {
	return New(ErrUnavailable, "BOOK_UNAVAILABLE", message)
}

func BorrowLimitReached(limit int) *Error {
	return New(ErrBorrowLimitReached, "BORROW_LIMIT_REACHED",
		fmt.Sprintf("You have reached your borrow limit (%d)", limit))
}

func AlreadyBorrowed() *Error {
	return New(ErrAlreadyBorrowed, "ALREADY_BORROWED", "You already have this book borrowed")
}

func InvalidState(message string) *Error {
	return New(ErrInvalidState, "INVALID_STATUS", message)
}

func Conflict(message string) *Error {
	return New(ErrConflict, "CONFLICT", message)
}

func Invalid(message string) *Error {
	return New(ErrInvalid, "VALIDATION_ERROR", message)
}

// Internal wraps a programming error such as a broken data-model invariant.
// It aborts the running transaction and is never shown to users verbatim.
func Internal(message string, err error) *Error {
	return &Error{Kind: ErrInternal, Code: "INVARIANT_VIOLATION", Message: message, Err: err}
}

// Code returns the machine-readable code of err, or "" when err is not an *Error.
func Code(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func upper(s string) string {
	return strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToUpper(s))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
