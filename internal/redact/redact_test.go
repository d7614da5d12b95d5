package redact

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringRedactsURLKeyParameter(t *testing.T) {
	t.Parallel()

	in := "POST https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent?key=AIzaSyExampleSecret123 failed"
	out := String(in)

	assert.NotContains(t, out, "AIzaSyExampleSecret123")
	assert.Contains(t, out, "?key="+RedactedKeyPlaceholder)
}

func TestStringRedactsHeaderCredentials(t *testing.T) {
	t.Parallel()

	cases := []string{
		"request rejected: Bearer ya29.a0AfH6SMBexampletoken",
		"x-goog-api-key: AIzaSyExampleSecret123",
	}
	for _, in := range cases {
		out := String(in)
		assert.NotContains(t, out, "example", "credential should be removed: %s", out)
		assert.Contains(t, out, RedactedCredentialPlaceholder)
	}
}

func TestStringRedactsKeyAssignments(t *testing.T) {
	t.Parallel()

	out := String(`invalid config: api_key="sk-secret-value-12345"`)
	assert.NotContains(t, out, "sk-secret-value-12345")
	assert.Contains(t, out, RedactedKeyPlaceholder)
}

func TestStringRedactsFilePaths(t *testing.T) {
	t.Parallel()

	out := String("open /home/deploy/fable-api/.env: no such file or directory")
	assert.NotContains(t, out, "/home/deploy")
	assert.Contains(t, out, RedactedPathPlaceholder)
}

func TestStringLeavesOrdinaryTextAlone(t *testing.T) {
	t.Parallel()

	in := "story generation failed: quota exceeded for requests per minute"
	assert.Equal(t, in, String(in))
	assert.Equal(t, "", String(""))
}

func TestError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Error(nil))

	err := errors.New("call failed: ?key=AIzaSySomethingSecret99 rejected")
	out := Error(err)
	assert.False(t, strings.Contains(out, "AIzaSySomethingSecret99"))
}
