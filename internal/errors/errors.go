// Package errors provides the error handling primitives used across the
// application. Errors are built fluently, marked with a sentinel that
// classifies them, and unwrapped by the HTTP layer into responses.
package errors

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors used to classify failures. Every error returned by a
// service or repository should be marked with exactly one of these.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrVersionConflict  = errors.New("version conflict")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrDatabase         = errors.New("database error")
	ErrInternal         = errors.New("internal error")
	ErrSystem           = errors.New("system error")
)

// InternalError is the concrete error type produced by the builder. It keeps
// the operator-facing message separate from the user-facing hint so internal
// detail never leaks into API responses.
type InternalError struct {
	message string
	hint    string
	details map[string]any
	cause   error
	mark    error
}

func (e *InternalError) Error() string {
	if e.cause != nil {
		if e.message != "" {
			return e.message + ": " + e.cause.Error()
		}
		return e.cause.Error()
	}
	return e.message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *InternalError) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return e.mark
}

// Is reports whether the error is marked with the given sentinel.
func (e *InternalError) Is(target error) bool {
	if e.mark != nil && errors.Is(e.mark, target) {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Hint returns the user-facing hint, if any.
func (e *InternalError) Hint() string { return e.hint }

// ReportableDetails returns structured details safe to surface to callers.
func (e *InternalError) ReportableDetails() map[string]any { return e.details }

// IsNotFound returns true if the error is marked as a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation returns true if the error is marked as a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsAlreadyExists returns true if the error is marked as an already exists error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsPermissionDenied returns true if the error is marked as a permission error.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsInvalidOperation returns true if the error is marked as an invalid operation.
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}
