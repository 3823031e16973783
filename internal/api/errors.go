package api

import (
	"errors"
	"fmt"
)

// Errors that can be checked with errors.Is. Classification is by status
// code only; message text is never inspected.
var (
	// ErrNotFound indicates the secret does not exist, has expired, or has
	// been fully consumed. The server does not distinguish these.
	ErrNotFound = errors.New("secret not found")

	// ErrUnauthorized indicates the submitted verifier did not match.
	ErrUnauthorized = errors.New("verifier mismatch")
)

// APIError represents an HTTP error from a hushbox server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401:
		return target == ErrUnauthorized
	case 404:
		return target == ErrNotFound
	}
	return false
}

// NetworkError represents a network-level failure, including timeouts.
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}
