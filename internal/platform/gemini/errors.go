package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/phrazzld/fable-api/internal/generation"
)

// rejectionKeywords are the fragments an argument-rejection message is
// expected to carry. Checked only after the structured code/status gate.
var rejectionKeywords = []string{"unknown", "not supported", "unsupported", "invalid", "unexpected"}

// isSignatureMismatch reports whether the error indicates the endpoint
// rejected the system-instruction parameter itself, as opposed to a
// network, auth, or quota failure. Classification is structured first:
// the error must be an INVALID_ARGUMENT-class APIError (or, for
// transports that do not surface one, a plain error) that names the
// parameter. Only this class triggers the inline fallback.
func isSignatureMismatch(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code != http.StatusBadRequest && apiErr.Status != "INVALID_ARGUMENT" {
			return false
		}
		msg = apiErr.Message
	}

	msg = strings.ToLower(msg)
	if !strings.Contains(msg, "system_instruction") && !strings.Contains(msg, "systeminstruction") {
		return false
	}
	for _, kw := range rejectionKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

// classifyError maps a raw transport error onto the generation package's
// error taxonomy. The original message is preserved in the wrap so the
// caller can surface it verbatim.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED":
			return fmt.Errorf("%w: %s", generation.ErrQuotaExceeded, apiErr.Message)
		case apiErr.Code == http.StatusUnauthorized ||
			apiErr.Code == http.StatusForbidden ||
			apiErr.Status == "UNAUTHENTICATED" ||
			apiErr.Status == "PERMISSION_DENIED":
			return fmt.Errorf("%w: authentication rejected: %s", generation.ErrRemoteService, apiErr.Message)
		}
		return fmt.Errorf("%w: %s", generation.ErrRemoteService, apiErr.Message)
	}

	return fmt.Errorf("%w: %v", generation.ErrRemoteService, err)
}
