// Package store owns the authoritative reservation list and favorite set
// for the active session.  This file defines the typed errors every
// operation returns; callers are expected to distinguish them with
// errors.As and map them onto HTTP responses.  No failure is fatal to
// the process; all are scoped to the single failed operation.
package store

import "fmt"

// ValidationError reports that caller-supplied arguments failed a
// precondition (empty slot selection, past date, unknown facility,
// already-booked slot).  It is always recoverable: the presentation
// layer re-prompts the user.
type ValidationError struct {
	Field  string // the offending argument
	Reason string // human-readable explanation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports that a referenced reservation or facility does
// not exist at call time.
type NotFoundError struct {
	Kind string // "reservation" or "facility"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// PersistenceError reports that the storage adapter failed to read or
// write.  The in-memory state has already been rolled back to its
// pre-operation value when this error is returned, so memory and disk
// never diverge.  The presentation layer surfaces it as transient and
// retryable.
type PersistenceError struct {
	Op  string // the store operation that failed
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
