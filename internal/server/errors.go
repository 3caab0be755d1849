// Package server provides the HTTP API and web pages for company research.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/company-research/internal/research"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		requestErr    *research.RequestError
		fieldErrs     validator.ValidationErrors
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &requestErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage returns the client-facing message for an error. Internal
// errors are not echoed back.
func ErrorMessage(err error) string {
	var (
		validationErr *ErrValidation
		requestErr    *research.RequestError
		fieldErrs     validator.ValidationErrors
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &fieldErrs):
		return describeFieldErrors(fieldErrs)
	case errors.As(err, &requestErr):
		return requestErr.Message
	case errors.Is(err, context.DeadlineExceeded):
		return "Research timed out"
	default:
		return "Internal server error"
	}
}

func describeFieldErrors(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(parts, "; ")
}
