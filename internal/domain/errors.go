package domain

import (
	"errors"
	"fmt"
)

// ErrProfileNotFound signals an operation referenced an unknown profile
// identifier. Recovered locally, never fatal.
var ErrProfileNotFound = errors.New("profile not found")

// ErrActivationInFlight signals a second activation arrived for a different
// profile while one was still in flight.
var ErrActivationInFlight = errors.New("another activation is in flight")

// ValidationError reports a required profile field left empty. No state
// mutation occurs when one is returned.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("profile field %q is required", e.Field)
}

// TransportError reports an unreachable collaborator or a non-2xx status.
// Message carries the server-supplied text when one was present.
type TransportError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CorruptStateError reports unparseable durable data. Callers treat the
// value as absent and substitute defaults; it is logged, never surfaced
// as a blocking error.
type CorruptStateError struct {
	Key string
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt state under %q: %v", e.Key, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }
