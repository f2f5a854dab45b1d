// Package errors provides error handling for qntx-braket.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints for user-actionable failures
//   - Markers so the domain taxonomy survives wrapping
//
// Usage:
//
//	// Wrap with context and mark with a domain sentinel
//	if err := submit(ctx); err != nil {
//	    return errors.MarkTaskExecution(errors.Wrap(err, "failed to submit task"))
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrTaskExecution) {
//	    // report as a task failure
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Generic sentinels. Use with errors.Is().
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the request was malformed or invalid
	ErrInvalidRequest = New("invalid request")

	// ErrServiceUnavailable indicates a required service is not available
	ErrServiceUnavailable = New("service unavailable")

	// ErrTimeout indicates an operation timed out
	ErrTimeout = New("operation timed out")
)

// Domain sentinels. Service-layer failures are marked with one of these so
// callers can classify them regardless of how many wraps sit on top.
var (
	ErrCircuitCreation = New("circuit creation failed")
	ErrTaskExecution   = New("task execution failed")
	ErrTaskResult      = New("task result retrieval failed")
	ErrDevice          = New("device operation failed")
	ErrVisualization   = New("visualization failed")
)

// MarkCircuitCreation marks err as a circuit construction failure.
func MarkCircuitCreation(err error) error { return markIf(err, ErrCircuitCreation) }

// MarkTaskExecution marks err as a task submission or cancellation failure.
func MarkTaskExecution(err error) error { return markIf(err, ErrTaskExecution) }

// MarkTaskResult marks err as a failure retrieving task status or results.
func MarkTaskResult(err error) error { return markIf(err, ErrTaskResult) }

// MarkDevice marks err as a device catalog failure.
func MarkDevice(err error) error { return markIf(err, ErrDevice) }

// MarkVisualization marks err as a rendering or persistence failure.
func MarkVisualization(err error) error { return markIf(err, ErrVisualization) }

func markIf(err, reference error) error {
	if err == nil {
		return nil
	}
	return Mark(err, reference)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// Category returns the name of the domain sentinel err is marked with, or
// "internal" when it carries none. Used for structured log fields.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrCircuitCreation):
		return "circuit_creation"
	case Is(err, ErrTaskExecution):
		return "task_execution"
	case Is(err, ErrTaskResult):
		return "task_result"
	case Is(err, ErrDevice):
		return "device"
	case Is(err, ErrVisualization):
		return "visualization"
	case Is(err, ErrInvalidRequest):
		return "invalid_request"
	case Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
