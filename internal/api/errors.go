package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/fable-api/internal/domain"
	"github.com/phrazzld/fable-api/internal/generation"
	"github.com/phrazzld/fable-api/internal/redact"
)

// validationSentinels are the domain errors that indicate bad input. They
// are caught before any remote call is issued.
var validationSentinels = []error{
	domain.ErrValidation,
	domain.ErrEmptyName,
	domain.ErrEmptyTrait,
	domain.ErrEmptyHobby,
	domain.ErrEmptySetting,
	domain.ErrEmptyTheme,
	domain.ErrEmptyGenre,
	domain.ErrInvalidLength,
	domain.ErrInvalidLengthLabel,
}

// isValidationError reports whether the error is an input-validation error.
func isValidationError(err error) bool {
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types to
// clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Input-validation errors, caught before any remote call
	case isValidationError(err):
		return http.StatusBadRequest

	// Remote quota and rate errors
	case errors.Is(err, generation.ErrQuotaExceeded):
		return http.StatusTooManyRequests

	// The model refused the content
	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity

	// Upstream failures: the remote endpoint errored, returned garbage, or
	// rejected the call shape on both attempts
	case errors.Is(err, generation.ErrRemoteService),
		errors.Is(err, generation.ErrSignatureMismatch),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	// The client gave up or the transport deadline passed
	case errors.Is(err, context.Canceled):
		return 499 // client closed request
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the user-visible message for an error.
// Validation errors and remote-service errors carry their own message
// (redacted); everything else maps to a fixed string.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case isValidationError(err):
		return redact.Error(err)

	case errors.Is(err, generation.ErrContentBlocked):
		return "The story was blocked by the language model's safety filters"

	case errors.Is(err, generation.ErrQuotaExceeded),
		errors.Is(err, generation.ErrRemoteService):
		// Remote-service errors are surfaced verbatim (minus credentials)
		// so the caller can see what the endpoint said.
		return redact.Error(err)

	case errors.Is(err, generation.ErrSignatureMismatch):
		return "The language model endpoint does not support this request shape"

	case errors.Is(err, generation.ErrInvalidResponse):
		return "The language model returned an unusable response"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator.v10 error message into a
// user-friendly message without leaking struct internals.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'GenerateStoryRequest.Name' Error:Field
		// validation for 'Name' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gt":
		return "must be greater than zero"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
