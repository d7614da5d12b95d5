package generation

import (
	"context"
	"iter"
)

// Prompt is the pair of instruction strings sent to the model: a system
// instruction describing the storyteller role, and the user content
// carrying the request details.
type Prompt struct {
	System string
	User   string
}

// ImageAttachment is an optional reference image forwarded to the model
// alongside the prompt text.
type ImageAttachment struct {
	MIMEType string
	Data     []byte
}

// Request is the full payload for one generation call.
type Request struct {
	Prompt Prompt
	Image  *ImageAttachment
}

// Stream is a lazy sequence of generated text chunks. Iteration blocks on
// the underlying network stream; a non-nil error ends the sequence. The
// stream is valid only for the lifetime of the request context.
type Stream = iter.Seq2[string, error]

// Generator defines the interface for generating stories from prompts.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// GenerateStory produces the complete story text for the request.
	// It blocks until the remote endpoint responds or errors.
	GenerateStory(ctx context.Context, req Request) (string, error)

	// GenerateStoryStream produces the story as a lazy chunk sequence.
	// Errors that occur before any token is produced (including the
	// signature-mismatch fallback) are resolved before the first yield.
	GenerateStoryStream(ctx context.Context, req Request) (Stream, error)
}
