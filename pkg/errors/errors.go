package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest    ErrorCode = "BAD_REQUEST"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRateLimited   ErrorCode = "RATE_LIMITED"
	ErrCodeUnavailable   ErrorCode = "UNAVAILABLE"
)

// FieldError describes one invalid field reported by the API.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError represents an application error
type AppError struct {
	Code    ErrorCode
	Message string
	Status  int
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if len(e.Fields) > 0 {
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			parts[i] = f.Field + " " + f.Message
		}
		msg += " [" + strings.Join(parts, "; ") + "]"
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// FromStatus builds the AppError for an unsuccessful API response. fields marks the
// error as a validation failure.
func FromStatus(status int, message string, fields []FieldError) *AppError {
	code := CodeForStatus(status)
	if len(fields) > 0 {
		code = ErrCodeValidation
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &AppError{Code: code, Message: message, Status: status, Fields: fields}
}

// CodeForStatus maps an HTTP status to an error code.
func CodeForStatus(status int) ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrCodeBadRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusTooManyRequests:
		return ErrCodeRateLimited
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternalError
	}
}

func hasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if error is NotFound
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsUnauthorized checks if error is Unauthorized
func IsUnauthorized(err error) bool {
	return hasCode(err, ErrCodeUnauthorized)
}

// IsForbidden checks if error is Forbidden
func IsForbidden(err error) bool {
	return hasCode(err, ErrCodeForbidden)
}

// IsValidation checks if error carries field errors
func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsRateLimited checks if error is RateLimited
func IsRateLimited(err error) bool {
	return hasCode(err, ErrCodeRateLimited)
}
