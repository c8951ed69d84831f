// Package apperror provides the structured error type used across the service.
// All business errors surface as AppError so the HTTP layer can render a
// consistent machine-readable body.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes exposed to API clients.
const (
	// Infrastructure (5xx)
	CodeInternal               = "internal/error"
	CodeKeyProviderUnavailable = "user-auth/key-provider-unavailable"

	// Authentication (401, 403)
	CodeTokenVerification = "user-auth/token-verification-failed"
	CodeNotVerified       = "user-auth/not-verified"
	CodePermissionDenied  = "permission/denied"

	// Validation (400)
	CodeValidation      = "request/validation"
	CodeInvalidUUID     = "uuid/invalid-format"
	CodeInvalidDateTime = "datetime/invalid-format"
	CodeInvalidColor    = "color/invalid-format"

	// Conflict (409)
	CodeAlreadyExists = "user/already-exists"
)

// AppError is the standard error type for the service.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (refused permission, offending id, ...)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidUUID creates an error for a malformed UUID path/body value (400)
func NewInvalidUUID(value string) *AppError {
	return &AppError{
		Code:       CodeInvalidUUID,
		Message:    "invalid uuid format",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"value": value},
	}
}

// NewInvalidDateTime creates an error for a malformed datetime value (400)
func NewInvalidDateTime(value string) *AppError {
	return &AppError{
		Code:       CodeInvalidDateTime,
		Message:    "invalid datetime format",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"value": value},
	}
}

// NewInvalidColor creates an error for a malformed color value (400)
func NewInvalidColor(value string) *AppError {
	return &AppError{
		Code:       CodeInvalidColor,
		Message:    "invalid color format",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"value": value},
	}
}

// NewNotFound creates a not found error (404). The code is derived from the
// entity name ("todo" -> "todo/not-found") so clients can match per entity.
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       entity + "/not-found",
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewTokenVerification creates a credential error (401). Covers missing or
// malformed Authorization headers, malformed tokens, unknown signing keys and
// signature/claim validation failures.
func NewTokenVerification(reason string) *AppError {
	return &AppError{
		Code:       CodeTokenVerification,
		Message:    "token verification failed",
		HTTPStatus: http.StatusUnauthorized,
		Details:    map[string]any{"reason": reason},
	}
}

// NewNotVerified creates an error for callers whose email is not verified or
// who are not resolved to a registered account (403). This is user-actionable
// and distinct from a generic credential error.
func NewNotVerified() *AppError {
	return &AppError{
		Code:       CodeNotVerified,
		Message:    "user identity is not verified",
		HTTPStatus: http.StatusForbidden,
	}
}

// NewKeyProviderUnavailable creates an error for transient key-set fetch
// failures (503). Distinct from a bad token: the caller may retry.
func NewKeyProviderUnavailable(err error) *AppError {
	return &AppError{
		Code:       CodeKeyProviderUnavailable,
		Message:    "token verification dependency is unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// NewPermissionDenied creates an authorization error (403) carrying the
// specific permission that was refused.
func NewPermissionDenied(permission string) *AppError {
	return &AppError{
		Code:       CodePermissionDenied,
		Message:    "permission denied",
		HTTPStatus: http.StatusForbidden,
		Details:    map[string]any{"permission": permission},
	}
}

// NewAlreadyExists creates an error for duplicate user registration (409)
func NewAlreadyExists(email string) *AppError {
	return &AppError{
		Code:       CodeAlreadyExists,
		Message:    "user already exists for this email",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"email": email},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// --- Helper functions ---

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsCode checks if error carries the given code
func IsCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if error is a not-found error for any entity
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus == http.StatusNotFound
	}
	return false
}

// IsPermissionDenied checks if error is a permission denial
func IsPermissionDenied(err error) bool {
	return IsCode(err, CodePermissionDenied)
}
