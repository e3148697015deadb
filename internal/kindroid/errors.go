package kindroid

import "fmt"

// APIError represents an error response from the Kindroid API
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

// NewAPIError creates a new API error
func NewAPIError(statusCode int, message string, err error) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Kindroid API error (status %d): %s: %v", e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("Kindroid API error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping
func (e *APIError) Unwrap() error {
	return e.Err
}

// retryable reports whether a response status warrants the single retry.
// Client errors are never retried.
func retryable(statusCode int) bool {
	return statusCode >= 500
}
