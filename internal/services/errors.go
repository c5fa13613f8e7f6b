package services

import (
	"fmt"

	goa "goa.design/goa/v3/pkg"

	"seatrade/internal/validation"
)

// Error names carried by *goa.ServiceError values returned from services. The HTTP
// layer maps each name to a status code.
const (
	ErrNameBadRequest   = "bad_request"
	ErrNameUnauthorized = "unauthorized"
	ErrNameForbidden    = "forbidden"
	ErrNameNotFound     = "not_found"
	ErrNameRateLimited  = "rate_limited"
)

// BadRequest creates a bad request error
func BadRequest(format string, args ...any) *goa.ServiceError {
	return goa.PermanentError(ErrNameBadRequest, format, args...)
}

// Unauthorized creates an unauthorized error
func Unauthorized(format string, args ...any) *goa.ServiceError {
	return goa.PermanentError(ErrNameUnauthorized, format, args...)
}

// Forbidden creates a forbidden error
func Forbidden(format string, args ...any) *goa.ServiceError {
	return goa.PermanentError(ErrNameForbidden, format, args...)
}

// NotFound creates a not found error
func NotFound(format string, args ...any) *goa.ServiceError {
	return goa.PermanentError(ErrNameNotFound, format, args...)
}

// RateLimited creates a rate limited error
func RateLimited(format string, args ...any) *goa.ServiceError {
	return goa.PermanentError(ErrNameRateLimited, format, args...)
}

// ValidationError is returned when a payload fails its schema.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Fields.Error())
}

func invalid(errs validation.Errors) error {
	if errs.Valid() {
		return nil
	}
	return &ValidationError{Fields: errs}
}
