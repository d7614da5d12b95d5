package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidLengthLabel is returned when a length label is not one of
	// the known options.
	ErrInvalidLengthLabel = errors.New("invalid length label")
)
