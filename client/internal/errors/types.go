// Package errors classifies transport faults so retry policies and callers can
// tell transient failures from permanent ones.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory determines how a fault should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable faults may succeed when retried: 5xx, 408, 429, network errors.
	Recoverable ErrorCategory = iota

	// Irrecoverable faults fail the same way every time: other 4xx statuses.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ClassifiedError is the fault kind raised by the default transport.
type ClassifiedError struct {
	Category   ErrorCategory
	Operation  string // backend operation name, e.g. "deleteApp"
	StatusCode int    // HTTP status code (0 for network errors)
	Body       string // response body, truncated, for debugging
	Underlying error
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *ClassifiedError) Unwrap() error {
	return e.Underlying
}

// IsIrrecoverable reports whether err (or anything it wraps) must not be retried.
func IsIrrecoverable(err error) bool {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Category == Irrecoverable
	}
	return false
}

// StatusCode extracts the HTTP status from err, or 0 when there is none.
func StatusCode(err error) int {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.StatusCode
	}
	return 0
}
