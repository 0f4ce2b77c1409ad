// Package errors provides custom error types for the StudyHub API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Incorrect email or password", StatusCode: http.StatusUnauthorized}
	ErrInactiveAccount    = &AppError{Code: "INACTIVE_ACCOUNT", Message: "Account is inactive", StatusCode: http.StatusBadRequest}
	ErrInvalidResetToken  = &AppError{Code: "INVALID_RESET_TOKEN", Message: "Invalid or expired token", StatusCode: http.StatusBadRequest}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrEmailTaken   = &AppError{Code: "EMAIL_TAKEN", Message: "Email already registered", StatusCode: http.StatusBadRequest}
)

// Subject errors.
var (
	ErrSubjectNotFound = &AppError{Code: "SUBJECT_NOT_FOUND", Message: "Subject not found", StatusCode: http.StatusNotFound}
	ErrSubjectExists   = &AppError{Code: "SUBJECT_EXISTS", Message: "Subject already exists in this period", StatusCode: http.StatusConflict}
)

// Note errors.
var (
	ErrNoteNotFound = &AppError{Code: "NOTE_NOT_FOUND", Message: "Note not found", StatusCode: http.StatusNotFound}
)

// Calendar errors.
var (
	ErrEventNotFound     = &AppError{Code: "EVENT_NOT_FOUND", Message: "Event not found", StatusCode: http.StatusNotFound}
	ErrEventTypeNotFound = &AppError{Code: "EVENT_TYPE_NOT_FOUND", Message: "Event type not found", StatusCode: http.StatusNotFound}
)

// Upstream errors.
var (
	ErrFlashcardUpstream = &AppError{Code: "UPSTREAM_ERROR", Message: "Flashcard generation failed", StatusCode: http.StatusBadGateway}
)
