package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"github.com/phrazzld/fable-api/internal/generation"
)

func TestIsSignatureMismatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "structured invalid argument naming the parameter",
			err: genai.APIError{
				Code:    400,
				Status:  "INVALID_ARGUMENT",
				Message: `Unknown name "system_instruction": Cannot find field.`,
			},
			want: true,
		},
		{
			name: "invalid argument about a different field",
			err: genai.APIError{
				Code:    400,
				Status:  "INVALID_ARGUMENT",
				Message: `Unknown name "temperature": Cannot find field.`,
			},
			want: false,
		},
		{
			name: "quota error mentioning the parameter is not a mismatch",
			err: genai.APIError{
				Code:    429,
				Status:  "RESOURCE_EXHAUSTED",
				Message: "quota exceeded for system_instruction requests",
			},
			want: false,
		},
		{
			name: "plain error naming the parameter with a rejection keyword",
			err:  errors.New(`request rejected: unexpected keyword argument 'system_instruction'`),
			want: true,
		},
		{
			name: "plain error naming the parameter without rejection context",
			err:  errors.New("system_instruction was truncated"),
			want: false,
		},
		{
			name: "plain network error",
			err:  errors.New("dial tcp: connection refused"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, isSignatureMismatch(tc.err))
		})
	}
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "quota",
			err:  genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota"},
			want: generation.ErrQuotaExceeded,
		},
		{
			name: "unauthenticated",
			err:  genai.APIError{Code: 401, Status: "UNAUTHENTICATED", Message: "bad key"},
			want: generation.ErrRemoteService,
		},
		{
			name: "permission denied",
			err:  genai.APIError{Code: 403, Status: "PERMISSION_DENIED", Message: "denied"},
			want: generation.ErrRemoteService,
		},
		{
			name: "server error",
			err:  genai.APIError{Code: 500, Status: "INTERNAL", Message: "boom"},
			want: generation.ErrRemoteService,
		},
		{
			name: "plain network failure",
			err:  errors.New("dial tcp: i/o timeout"),
			want: generation.ErrRemoteService,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, classifyError(tc.err), tc.want)
		})
	}

	// Context cancellation passes through unwrapped so callers can keep
	// using errors.Is against the context sentinels.
	assert.ErrorIs(t, classifyError(context.Canceled), context.Canceled)
	assert.NoError(t, classifyError(nil))
}
