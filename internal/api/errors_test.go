package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/fable-api/internal/domain"
	"github.com/phrazzld/fable-api/internal/generation"
	"github.com/phrazzld/fable-api/internal/service"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty name", domain.ErrEmptyName, http.StatusBadRequest},
		{"invalid length", domain.ErrInvalidLength, http.StatusBadRequest},
		{"invalid length label", domain.ErrInvalidLengthLabel, http.StatusBadRequest},
		{"quota", generation.ErrQuotaExceeded, http.StatusTooManyRequests},
		{"blocked", generation.ErrContentBlocked, http.StatusUnprocessableEntity},
		{"remote", generation.ErrRemoteService, http.StatusBadGateway},
		{"signature mismatch", generation.ErrSignatureMismatch, http.StatusBadGateway},
		{"invalid response", generation.ErrInvalidResponse, http.StatusBadGateway},
		{"generation failed", generation.ErrGenerationFailed, http.StatusBadGateway},
		{"canceled", context.Canceled, 499},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapErrorToStatusCode_UnwrapsServiceError(t *testing.T) {
	t.Parallel()

	wrapped := &service.StoryServiceError{
		Operation: "generate_story",
		Err:       fmt.Errorf("%w: resource exhausted", generation.ErrQuotaExceeded),
	}
	assert.Equal(t, http.StatusTooManyRequests, MapErrorToStatusCode(wrapped))
}

func TestGetSafeErrorMessage_RedactsRemoteDetails(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w: Post \"https://generativelanguage.googleapis.com/v1beta/models?key=AIzaSyFakeKey123\": 503",
		generation.ErrRemoteService)

	msg := GetSafeErrorMessage(err)
	assert.NotContains(t, msg, "AIzaSyFakeKey123")
	assert.Contains(t, msg, "503")
}

func TestGetSafeErrorMessage_FixedMessages(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"The story was blocked by the language model's safety filters",
		GetSafeErrorMessage(generation.ErrContentBlocked))
	assert.Equal(t,
		"The language model returned an unusable response",
		GetSafeErrorMessage(generation.ErrInvalidResponse))
	assert.Equal(t,
		"An unexpected error occurred",
		GetSafeErrorMessage(errors.New("internal detail: db password hunter2")))
	assert.Equal(t,
		"An unexpected error occurred",
		GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New("Key: 'GenerateStoryRequest.Name' Error:Field validation for 'Name' failed on the 'required' tag")
	assert.Equal(t, "Invalid Name: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
