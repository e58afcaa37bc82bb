package models

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation represents validation errors (4xx)
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeInvalidKey represents malformed cache key errors (caller bug)
	ErrorTypeInvalidKey ErrorType = "invalid_key"
	// ErrorTypeNotFound represents resource not found errors (404)
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeProvider represents generative provider errors (502)
	ErrorTypeProvider ErrorType = "provider"
	// ErrorTypeTimeout represents provider timeout errors (504)
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeCancelled represents caller-initiated cancellation
	ErrorTypeCancelled ErrorType = "cancelled"
	// ErrorTypeCacheUnavailable represents cache failures; absorbed internally
	// and treated as a miss, never surfaced to callers
	ErrorTypeCacheUnavailable ErrorType = "cache_unavailable"
	// ErrorTypeInternal represents internal server errors (500)
	ErrorTypeInternal ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Code       string    `json:"code,omitzero"`
	StatusCode int       `json:"-"`
	Retryable  bool      `json:"retryable"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap allows error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether the error is retryable
func (e *AppError) IsRetryable() bool {
	return e.Retryable
}

// GetStatusCode returns the HTTP status code for the error
func (e *AppError) GetStatusCode() int {
	if e.StatusCode > 0 {
		return e.StatusCode
	}

	switch e.Type {
	case ErrorTypeValidation, ErrorTypeInvalidKey:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeProvider:
		return http.StatusBadGateway
	case ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	case ErrorTypeCancelled:
		return 499 // client closed request
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Retryable:  false,
		Cause:      cause,
	}
}

// NewInvalidKeyError creates an error for a malformed cache key.
// An empty key after normalization is a caller bug and is surfaced immediately.
func NewInvalidKeyError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidKey,
		Message:    message,
		Code:       "INVALID_CACHE_KEY",
		StatusCode: http.StatusBadRequest,
		Retryable:  false,
	}
}

// NewNotFoundError creates a resource not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
		Retryable:  false,
	}
}

// NewProviderError creates a provider error
func NewProviderError(provider, message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeProvider,
		Message:    fmt.Sprintf("provider %s error: %s", provider, message),
		Code:       fmt.Sprintf("PROVIDER_%s_ERROR", provider),
		StatusCode: http.StatusBadGateway,
		Retryable:  true,
		Cause:      cause,
	}
}

// NewProviderTimeoutError creates a provider timeout error
func NewProviderTimeoutError(provider string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    fmt.Sprintf("provider %s timed out", provider),
		Code:       "PROVIDER_TIMEOUT",
		StatusCode: http.StatusGatewayTimeout,
		Retryable:  true,
		Cause:      cause,
	}
}

// NewCancellationError creates a caller-cancellation error.
// Cancellation is propagated to the caller and never triggers fallback.
func NewCancellationError(operation string, cause error) *AppError {
	return &AppError{
		Type:      ErrorTypeCancelled,
		Message:   fmt.Sprintf("operation %s cancelled by caller", operation),
		Code:      "REQUEST_CANCELLED",
		Retryable: false,
		Cause:     cause,
	}
}

// NewCacheUnavailableError creates a cache failure error. Callers of the
// cache treat this as a miss; it never propagates past the cache layer.
func NewCacheUnavailableError(message string, cause error) *AppError {
	return &AppError{
		Type:      ErrorTypeCacheUnavailable,
		Message:   message,
		Code:      "CACHE_UNAVAILABLE",
		Retryable: true,
		Cause:     cause,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Retryable:  false,
		Cause:      cause,
	}
}

// IsCancellation reports whether err is a caller-initiated cancellation.
func IsCancellation(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeCancelled
	}
	return errors.Is(err, context.Canceled)
}

// IsInvalidKey reports whether err is a malformed cache key error.
func IsInvalidKey(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeInvalidKey
	}
	return false
}

// SanitizeError sanitizes an error for external consumption
func SanitizeError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Type:       appErr.Type,
			Message:    appErr.Message,
			Code:       appErr.Code,
			StatusCode: appErr.GetStatusCode(),
			Retryable:  appErr.Retryable,
		}
	}

	return NewInternalError("an unexpected error occurred", err)
}
