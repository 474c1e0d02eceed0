package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthenticated      = "UNAUTHENTICATED"
	ErrCodeAuthenticationFailed = "AUTHENTICATION_ERROR"

	// Validation errors
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"

	// Business logic errors
	ErrCodeOperationFailed = "OPERATION_FAILED"

	// Service errors
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`

	cause error
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the collaborator error for logging. It is never serialized.
func (e *APIError) Unwrap() error {
	return e.cause
}

// Is reports whether target is an APIError with the same code, so callers
// can branch with errors.Is(err, ErrNotFound).
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Predefined errors, usable as errors.Is targets
var (
	ErrUnauthenticated      = NewAPIError(ErrCodeUnauthenticated, "Authentication required")
	ErrAuthenticationFailed = NewAPIError(ErrCodeAuthenticationFailed, "Invalid email or password")
	ErrNotFound             = NewAPIError(ErrCodeNotFound, "Resource not found")
	ErrValidation           = NewAPIError(ErrCodeValidation, "Validation failed")
	ErrOperationFailed      = NewAPIError(ErrCodeOperationFailed, "Operation failed")
	ErrInvalidInput         = NewAPIError(ErrCodeInvalidInput, "Invalid request body")
	ErrInternalError        = NewAPIError(ErrCodeInternalError, "Internal server error")
)

// Unauthenticated builds an UNAUTHENTICATED error
func Unauthenticated(message string) *APIError {
	if message == "" {
		message = ErrUnauthenticated.Message
	}
	return NewAPIError(ErrCodeUnauthenticated, message)
}

// AuthenticationFailed builds an AUTHENTICATION_ERROR error
func AuthenticationFailed(message string) *APIError {
	if message == "" {
		message = ErrAuthenticationFailed.Message
	}
	return NewAPIError(ErrCodeAuthenticationFailed, message)
}

// NotFound builds a NOT_FOUND error
func NotFound(message string) *APIError {
	if message == "" {
		message = ErrNotFound.Message
	}
	return NewAPIError(ErrCodeNotFound, message)
}

// Validation builds a VALIDATION_ERROR error
func Validation(message string, details interface{}) *APIError {
	if message == "" {
		message = ErrValidation.Message
	}
	return NewAPIErrorWithDetails(ErrCodeValidation, message, details)
}

// OperationFailed builds an OPERATION_FAILED error wrapping the collaborator failure
func OperationFailed(message string, cause error) *APIError {
	if message == "" {
		message = ErrOperationFailed.Message
	}
	return &APIError{
		Code:    ErrCodeOperationFailed,
		Message: message,
		cause:   cause,
	}
}

// StatusCode returns the HTTP status for an error code
func StatusCode(code string) int {
	switch code {
	case ErrCodeUnauthenticated, ErrCodeAuthenticationFailed:
		return http.StatusUnauthorized
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidation, ErrCodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// FromError converts any error into an APIError. Untyped errors become
// INTERNAL_ERROR so no internal detail leaks to the caller.
func FromError(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}
	return ErrInternalError
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, gin.H{"error": err})
}

// Respond sends err with the status derived from its code
func Respond(c *gin.Context, err error) {
	apiErr := FromError(err)
	RespondWithError(c, StatusCode(apiErr.Code), apiErr)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}
