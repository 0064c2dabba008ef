// Package errors defines error types shared across provider clients.
package errors

import "errors"

// RateLimitError represents a request-quota error from a provider API.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// NewRateLimitError creates a new RateLimitError with the given message.
func NewRateLimitError(message string) *RateLimitError {
	return &RateLimitError{Message: message}
}

// IsRateLimitError reports whether err is a RateLimitError (even when wrapped).
func IsRateLimitError(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}
