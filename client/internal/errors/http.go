package errors

import (
	"fmt"
	"net/http"
)

// maxBodyBytes bounds the response body kept on a ClassifiedError.
const maxBodyBytes = 2048

// categoryForStatus maps HTTP status codes to error categories.
// 4xx are irrecoverable except 408 and 429; everything else is retried.
func categoryForStatus(statusCode int) ErrorCategory {
	switch {
	case statusCode == http.StatusRequestTimeout, statusCode == http.StatusTooManyRequests:
		return Recoverable
	case statusCode >= 400 && statusCode < 500:
		return Irrecoverable
	default:
		return Recoverable
	}
}

// NewHTTPError creates a classified error for a non-2xx response.
func NewHTTPError(operation string, statusCode int, body string) *ClassifiedError {
	if len(body) > maxBodyBytes {
		body = body[:maxBodyBytes]
	}
	return &ClassifiedError{
		Category:   categoryForStatus(statusCode),
		Operation:  operation,
		StatusCode: statusCode,
		Body:       body,
		Underlying: fmt.Errorf("%s failed: %s", operation, http.StatusText(statusCode)),
	}
}

// NewNetworkError creates a classified error for a failure below HTTP
// (DNS, connect, reset, timeout). These are always recoverable.
func NewNetworkError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Category:   Recoverable,
		Operation:  operation,
		Underlying: fmt.Errorf("%s network error: %w", operation, err),
	}
}
