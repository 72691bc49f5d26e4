// Package errors provides custom error types for the CivicPulse API.
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

// Is matches AppErrors by code so wrapped copies compare equal to their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

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

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid credentials for selected role", StatusCode: http.StatusBadRequest}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "Email already registered for this role", StatusCode: http.StatusBadRequest}
	ErrNotAnOfficer   = &AppError{Code: "NOT_AN_OFFICER", Message: "User is not an officer", StatusCode: http.StatusBadRequest}
)

// Grievance errors.
var (
	ErrGrievanceNotFound  = &AppError{Code: "GRIEVANCE_NOT_FOUND", Message: "Grievance not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransition  = &AppError{Code: "INVALID_TRANSITION", Message: "Status change is not allowed", StatusCode: http.StatusConflict}
	ErrInvalidStatus      = &AppError{Code: "INVALID_STATUS", Message: "Unknown grievance status", StatusCode: http.StatusBadRequest}
	ErrCodeExhausted      = &AppError{Code: "CODE_EXHAUSTED", Message: "Could not allocate a grievance code", StatusCode: http.StatusServiceUnavailable}
	ErrFeedbackNotAllowed = &AppError{Code: "FEEDBACK_NOT_ALLOWED", Message: "Feedback can only be given once on a resolved grievance", StatusCode: http.StatusConflict}
	ErrInvalidRating      = &AppError{Code: "INVALID_RATING", Message: "Rating must be between 1 and 5", StatusCode: http.StatusBadRequest}
	ErrInvalidUpload      = &AppError{Code: "INVALID_UPLOAD", Message: "Only image files are allowed", StatusCode: http.StatusBadRequest}
	ErrEmptyUpload        = &AppError{Code: "EMPTY_UPLOAD", Message: "File is empty", StatusCode: http.StatusBadRequest}
	ErrUploadTooLarge     = &AppError{Code: "UPLOAD_TOO_LARGE", Message: "File size must be less than 5MB", StatusCode: http.StatusRequestEntityTooLarge}
	ErrAIUnavailable      = &AppError{Code: "AI_UNAVAILABLE", Message: "AI service is not available", StatusCode: http.StatusServiceUnavailable}
)
