// Package errors provides structured error handling for foremanctl
package errors

import (
	"fmt"
)

// ErrorCode represents an application error code
type ErrorCode string

const (
	// General errors
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrValidation ErrorCode = "VALIDATION_ERROR"

	// Remote API errors
	ErrRemoteOperation ErrorCode = "REMOTE_OPERATION_FAILED"

	// Startup errors
	ErrConfiguration ErrorCode = "CONFIGURATION_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Err      error                  `json:"-"` // Original error for logging
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the original error
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error into an AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Predefined errors

// Internal creates an internal error
func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: message,
		Err:     err,
	}
}

// Validation creates a validation error
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
	}
}

// Configuration creates a configuration error. Raised at startup, before
// any reconciliation is attempted.
func Configuration(message string) *AppError {
	return &AppError{
		Code:    ErrConfiguration,
		Message: message,
	}
}

// Resource-specific errors

// EntityNotFound creates a not found error for a named remote entity
// (organization, location, user)
func EntityNotFound(kind, name string) *AppError {
	return (&AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("could not find %s %q", kind, name),
	}).WithMetadata("kind", kind).WithMetadata("name", name)
}

// RemoteOperation creates an error for a failed remote API call. The remote
// message is carried verbatim in Details alongside the attempted action.
func RemoteOperation(action string, err error) *AppError {
	e := &AppError{
		Code:    ErrRemoteOperation,
		Message: fmt.Sprintf("remote %s failed", action),
		Err:     err,
	}
	if err != nil {
		e.Details = err.Error()
	}
	return e.WithMetadata("action", action)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}
