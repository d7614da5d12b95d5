// Package redact provides utilities for redacting sensitive information from
// strings before they are logged or returned in error responses. Remote API
// errors can echo request URLs or headers that carry the Gemini credential;
// everything logged from the generation path goes through this package first.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
)

// Precompiled redaction patterns, applied in order.
var (
	// key=... query parameters, the shape the Gemini REST transport uses
	// to pass the API key.
	urlKeyRegex = regexp.MustCompile(`(?i)([?&](?:api[_-]?key|key)=)[^&\s]+`)

	// Bearer and x-goog-api-key style header values.
	bearerRegex = regexp.MustCompile(`(?i)(bearer\s+|x-goog-api-key[:=]\s*)[A-Za-z0-9_\-.~+/]{8,}`)

	// Generic credential assignments in error text.
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|credential)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Local file paths (prompt templates, .env files).
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

var rules = []rule{
	{urlKeyRegex, "${1}" + RedactedKeyPlaceholder},
	{bearerRegex, "${1}" + RedactedCredentialPlaceholder},
	{apiKeyRegex, "${1}${2}" + RedactedKeyPlaceholder},
	{unixPathRegex, RedactedPathPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
