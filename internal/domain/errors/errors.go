// Package errors defines the application error taxonomy shared by the sync
// core and the delivery layer.
package errors

import (
	"net/http"
	"strconv"

	"mise/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrTransport: the request never produced a response (DNS, connect,
	// timeout, connection reset).
	ErrTransport = NewBaseError(
		http.StatusServiceUnavailable,
		"TRANSPORT_FAILURE",
		"could not reach the server",
		"",
	)

	// ErrUnauthorized: authentication is required and absent, expired, or
	// rejected by the backend.
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"session is missing or no longer valid",
		"",
	)

	// ErrNotFound: the backend reported the resource does not exist.
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	// ErrBusy: a mutation on the same entity is already in flight. Recovered
	// locally by rejecting the duplicate action.
	ErrBusy = NewBaseError(
		http.StatusConflict,
		"MUTATION_IN_FLIGHT",
		"a change to this item is already in progress",
		"",
	)

	// ErrDecode: a required field with no safe default was absent or
	// malformed in a server payload.
	ErrDecode = NewBaseError(
		http.StatusUnprocessableEntity,
		"DECODE_FAILED",
		"server response could not be understood",
		"",
	)

	// ErrValidationFailed: local input validation rejected a request before
	// it reached the network.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// ErrSessionNotFound: no persisted session is available to restore.
	ErrSessionNotFound = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_NOT_FOUND",
		"no active session",
		"",
	)

	// ErrInternalError: unexpected local failure.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal error",
		"",
	)
)

// StatusError represents a response the backend answered with a non-success
// HTTP status, implementing the AppError interface. The 4xx/5xx split decides
// the business code.
type StatusError struct {
	status  int
	details string
}

// NewClientError creates an error for a 4xx backend response.
func NewClientError(status int, details string) AppError {
	return &StatusError{status: status, details: details}
}

// NewServerError creates an error for a 5xx backend response.
func NewServerError(status int, details string) AppError {
	return &StatusError{status: status, details: details}
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return "backend responded with status " + strconv.Itoa(e.status)
}

// HTTPCode returns the HTTP status code
func (e *StatusError) HTTPCode() int {
	return e.status
}

// ErrorCode returns the business error code
func (e *StatusError) ErrorCode() string {
	if e.status >= http.StatusInternalServerError {
		return "SERVER_ERROR"
	}

	return "CLIENT_ERROR"
}

// Message returns the user-friendly error message
func (e *StatusError) Message() string {
	if e.status >= http.StatusInternalServerError {
		return "the server had a problem handling the request"
	}

	return "the server rejected the request"
}

// Details returns detailed error information
func (e *StatusError) Details() string {
	return e.details
}

// Status returns the raw HTTP status reported by the backend.
func (e *StatusError) Status() int {
	return e.status
}

// IsNotFound reports whether err resolves to the not-found condition.
// The orders list treats this as an empty collection, not a failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsBusy reports whether err resolves to the concurrent-mutation condition.
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}

// IsUnauthorized reports whether err resolves to a missing or rejected session.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsSessionNotFound reports whether err resolves to the absent-session
// condition, which at startup just means nobody was logged in.
func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}
