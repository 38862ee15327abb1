// Package errors provides the error taxonomy surfaced to API callers.
// Only input problems reach a customer as errors; collaborator failures are
// answered with a localized fallback reply instead.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for domain errors.
const (
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// DomainError carries an API error code and the HTTP status it maps to.
type DomainError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError with the same code, so callers can test
// errors.Is(err, &DomainError{Code: ErrCodeValidation}).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewValidationError reports a rejected customer input. The session is left untouched.
func NewValidationError(message string, details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeValidation,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(resource, identifier string) *DomainError {
	return &DomainError{
		Code:       ErrCodeNotFound,
		Message:    resource + " not found",
		Details:    identifier,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewInternalError wraps an unexpected failure. err is kept for logs; its
// text is exposed as Details.
func NewInternalError(message string, err error) *DomainError {
	d := &DomainError{
		Code:       ErrCodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
	if err != nil {
		d.Details = err.Error()
	}
	return d
}

// GetDomainError extracts the domain error from an error chain.
func GetDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// IsValidationError checks if the error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, &DomainError{Code: ErrCodeValidation})
}
