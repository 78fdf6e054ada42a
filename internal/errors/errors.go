package errors

import (
	"fmt"
	"net/http"
)

// Error codes carried by APIError
const (
	CodeSourceUnavailable = "SOURCE_UNAVAILABLE"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`

	err error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

// Unwrap returns the cause so errors.Is still sees loader sentinels
func (e *APIError) Unwrap() error {
	return e.err
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// SourceUnavailable reports a loan source file that cannot be opened
func SourceUnavailable(path string, err error) *APIError {
	apiErr := NewWithDetails(http.StatusServiceUnavailable, CodeSourceUnavailable,
		fmt.Sprintf("Loan source %s is unavailable", path), err.Error())
	apiErr.err = err
	return apiErr
}
