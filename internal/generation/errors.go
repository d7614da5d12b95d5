package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when story generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate story")

	// ErrInvalidResponse is returned when the LLM response is empty or malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrSignatureMismatch is returned when the remote operation rejects the
	// system-instruction parameter itself, as opposed to failing for
	// network, auth, or quota reasons. It is the only error class that
	// triggers the one-shot inline fallback.
	ErrSignatureMismatch = errors.New("system instruction parameter not supported by model endpoint")

	// ErrRemoteService is returned for authentication, malformed-request,
	// and network failures from the remote endpoint. Surfaced verbatim to
	// the caller; never retried.
	ErrRemoteService = errors.New("remote generation service error")

	// ErrQuotaExceeded is returned when the remote endpoint rejects the
	// call for rate or quota reasons.
	ErrQuotaExceeded = errors.New("generation quota exceeded")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
