package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/fable-api/internal/domain"
	"github.com/phrazzld/fable-api/internal/generation"
)

// StoryService provides story generation operations.
type StoryService interface {
	// GenerateStory validates the request, builds the prompt, and blocks
	// until the generator returns the complete story.
	GenerateStory(
		ctx context.Context,
		req domain.StoryRequest,
		image *generation.ImageAttachment,
	) (*domain.Story, error)

	// GenerateStoryStream validates the request, builds the prompt, and
	// returns a lazy chunk sequence. Validation and call-setup errors are
	// returned here; errors after the first chunk arrive on the stream.
	GenerateStoryStream(
		ctx context.Context,
		req domain.StoryRequest,
		image *generation.ImageAttachment,
	) (generation.Stream, error)

	// Options returns the select-control choices for client UIs.
	Options() domain.StoryOptions
}

// StoryServiceError wraps errors from the story service with context.
type StoryServiceError struct {
	// Operation is the operation that failed (e.g., "generate_story")
	Operation string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for StoryServiceError.
func (e *StoryServiceError) Error() string {
	return fmt.Sprintf("story service %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoryServiceError) Unwrap() error {
	return e.Err
}

// storyServiceImpl implements the StoryService interface
type storyServiceImpl struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewStoryService creates a new StoryService with the given generator.
func NewStoryService(generator generation.Generator, logger *slog.Logger) (StoryService, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &storyServiceImpl{
		generator: generator,
		logger:    logger,
	}, nil
}

// prepare validates the request and builds the generation payload. No
// remote call is made until this succeeds.
func (s *storyServiceImpl) prepare(
	req domain.StoryRequest,
	image *generation.ImageAttachment,
) (generation.Request, error) {
	if err := req.Validate(); err != nil {
		return generation.Request{}, err
	}

	prompt, err := generation.BuildPrompt(req)
	if err != nil {
		return generation.Request{}, &StoryServiceError{Operation: "build_prompt", Err: err}
	}

	return generation.Request{Prompt: prompt, Image: image}, nil
}

func (s *storyServiceImpl) GenerateStory(
	ctx context.Context,
	req domain.StoryRequest,
	image *generation.ImageAttachment,
) (*domain.Story, error) {
	genReq, err := s.prepare(req, image)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "generating story",
		"character", req.Name,
		"theme", req.Theme,
		"genre", req.Genre,
		"length_words", req.LengthWords,
		"has_image", image != nil)

	text, err := s.generator.GenerateStory(ctx, genReq)
	if err != nil {
		return nil, &StoryServiceError{Operation: "generate_story", Err: err}
	}

	story, err := domain.NewStory(req, text)
	if err != nil {
		return nil, &StoryServiceError{Operation: "generate_story", Err: err}
	}

	s.logger.InfoContext(ctx, "story generated",
		"story_id", story.ID.String(),
		"text_length", len(story.Text))

	return story, nil
}

func (s *storyServiceImpl) GenerateStoryStream(
	ctx context.Context,
	req domain.StoryRequest,
	image *generation.ImageAttachment,
) (generation.Stream, error) {
	genReq, err := s.prepare(req, image)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "generating story stream",
		"character", req.Name,
		"theme", req.Theme,
		"genre", req.Genre,
		"length_words", req.LengthWords,
		"has_image", image != nil)

	stream, err := s.generator.GenerateStoryStream(ctx, genReq)
	if err != nil {
		return nil, &StoryServiceError{Operation: "generate_story_stream", Err: err}
	}
	return stream, nil
}

func (s *storyServiceImpl) Options() domain.StoryOptions {
	return domain.DefaultStoryOptions()
}
