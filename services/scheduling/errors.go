package scheduling

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error classification the API layer translates
// into a user-facing response.
type Kind string

const (
	// KindSlotUnavailable means the requested start time was not free at
	// read time. Recoverable by picking another slot.
	KindSlotUnavailable Kind = "slotUnavailable"
	// KindSlotConflict means a concurrent writer claimed the slot between
	// our read and our insert. Treated the same as SlotUnavailable by
	// callers, kept distinct for diagnostics.
	KindSlotConflict Kind = "slotConflict"
	// KindInvalidTransition means the requested status change is not
	// reachable from the booking's current status.
	KindInvalidTransition Kind = "invalidTransition"
	// KindUnauthorized means the actor's role does not permit the action
	// for the booking's current status.
	KindUnauthorized Kind = "unauthorized"
	// KindToggleReconciliation means a favorite mutation failed after the
	// optimistic cache flip; cached views were rolled back before this
	// error surfaced.
	KindToggleReconciliation Kind = "toggleReconciliationFailure"
)

// Error carries a Kind alongside the message. The core never swallows
// these; they propagate as-is to the caller.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds a typed scheduling error.
func NewError(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds a typed scheduling error around a cause.
func WrapError(kind Kind, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsKind reports whether err (or anything it wraps) is a scheduling error
// of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// ErrKind extracts the kind from err, or "" when err is not a scheduling
// error.
func ErrKind(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
