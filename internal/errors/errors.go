// Package errors defines custom error types for better error handling and debugging.
// AppError provides context-aware error reporting with type classification.
package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a classified failure from one of the collaborators
type AppError struct {
	Type    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error type constants
const (
	ErrorTypeFetchFailed          = "FETCH_FAILURE"
	ErrorTypeStoreFailed          = "STORE_FAILURE"
	ErrorTypeConfigurationInvalid = "CONFIGURATION_INVALID"
	ErrorTypeTokenMissing         = "TOKEN_MISSING"
)

// New creates a new AppError
func New(errorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewFetchError creates a movie API failure (transport error or non-2xx status)
func NewFetchError(message string, cause error) *AppError {
	return New(ErrorTypeFetchFailed, message, cause)
}

// NewStoreError creates a trending store failure
func NewStoreError(message string, cause error) *AppError {
	return New(ErrorTypeStoreFailed, message, cause)
}

// NewConfigurationError creates a configuration-related error
func NewConfigurationError(message string, cause error) *AppError {
	return New(ErrorTypeConfigurationInvalid, message, cause)
}

// NewTokenMissingError creates a missing credential error
func NewTokenMissingError(service string) *AppError {
	return New(ErrorTypeTokenMissing, fmt.Sprintf("API token missing for %s", service), nil)
}

// IsType reports whether any error in err's chain is an AppError of errorType
func IsType(err error, errorType string) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// IsFetchError reports whether err is a movie API failure
func IsFetchError(err error) bool {
	return IsType(err, ErrorTypeFetchFailed)
}

// IsStoreError reports whether err is a trending store failure
func IsStoreError(err error) bool {
	return IsType(err, ErrorTypeStoreFailed)
}
