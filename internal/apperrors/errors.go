// Package apperrors defines the tagged error used across services so the
// HTTP layer can pick a status code without inspecting message text.
package apperrors

import (
	"errors"
)

// Kind classifies a failure for translation to a transport status.
type Kind int

const (
	// KindInternal is any unclassified or infrastructure failure
	KindInternal Kind = iota
	// KindValidation is malformed or missing input
	KindValidation
	// KindNotFound is a reference to an entity that does not exist
	KindNotFound
	// KindConflict is a duplicate or an entity still referenced by dependents
	KindConflict
)

// String returns the kind name used in logs
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a user-facing failure tagged with its Kind.
// Message is safe to show to clients; Err is the optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a validation error
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFound creates a not-found error
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict creates a conflict error
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Wrap attaches a cause to a copy of base, keeping its kind and message.
// errors.Is(result, base) stays true.
func Wrap(base *Error, cause error) error {
	return &wrapped{base: base, cause: cause}
}

type wrapped struct {
	base  *Error
	cause error
}

func (w *wrapped) Error() string {
	return w.base.Message + ": " + w.cause.Error()
}

func (w *wrapped) Unwrap() []error {
	return []error{w.base, w.cause}
}

// As returns the tagged error carried by err, if any.
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// KindOf classifies err. Untagged errors are internal.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message for err. Internal errors
// collapse to fallback so storage details never leak.
func MessageOf(err error, fallback string) string {
	if e, ok := As(err); ok && e.Kind != KindInternal {
		return e.Message
	}
	return fallback
}
