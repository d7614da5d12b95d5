package api

import (
	"time"

	"github.com/phrazzld/fable-api/internal/domain"
)

// GenerateStoryRequest represents the request body for a story generation.
// Length may be given as a word count or as one of the enum labels; when
// both are absent the default word count applies.
type GenerateStoryRequest struct {
	Name        string `json:"name"                   validate:"required,min=1"`
	Trait       string `json:"trait"                  validate:"required,min=1"`
	Hobby       string `json:"hobby"                  validate:"required,min=1"`
	Setting     string `json:"setting"                validate:"required,min=1"`
	Theme       string `json:"theme"                  validate:"required,min=1"`
	Genre       string `json:"genre"                  validate:"required,min=1"`
	Length      int    `json:"length,omitempty"       validate:"omitempty,gt=0"`
	LengthLabel string `json:"length_label,omitempty" validate:"omitempty"`
}

// ToDomain converts the request DTO to a domain.StoryRequest, resolving
// the length label if one was supplied.
func (req *GenerateStoryRequest) ToDomain() (domain.StoryRequest, error) {
	words := req.Length
	if words == 0 && req.LengthLabel != "" {
		resolved, err := domain.ResolveLengthLabel(req.LengthLabel)
		if err != nil {
			return domain.StoryRequest{}, err
		}
		words = resolved
	}
	if words == 0 {
		words = domain.DefaultLengthWords
	}

	return domain.StoryRequest{
		Name:        req.Name,
		Trait:       req.Trait,
		Hobby:       req.Hobby,
		Setting:     req.Setting,
		Theme:       req.Theme,
		Genre:       req.Genre,
		LengthWords: words,
	}, nil
}

// StoryResponse represents the response data for a generated story
type StoryResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Genre            string    `json:"genre"`
	Text             string    `json:"text"`
	DownloadFilename string    `json:"download_filename"`
	CreatedAt        time.Time `json:"created_at"`
}

// storyToResponse converts a domain.Story to a StoryResponse
func storyToResponse(story *domain.Story) StoryResponse {
	return StoryResponse{
		ID:               story.ID.String(),
		Name:             story.Request.Name,
		Genre:            story.Request.Genre,
		Text:             story.Text,
		DownloadFilename: story.DownloadFilename(),
		CreatedAt:        story.CreatedAt,
	}
}

// streamChunkEvent is the payload of one SSE "chunk" event.
type streamChunkEvent struct {
	Text string `json:"text"`
}

// streamDoneEvent is the payload of the terminal SSE "done" event.
type streamDoneEvent struct {
	StoryID          string `json:"story_id"`
	DownloadFilename string `json:"download_filename"`
	TotalChars       int    `json:"total_chars"`
}

// streamErrorEvent is the payload of the terminal SSE "error" event.
type streamErrorEvent struct {
	Error string `json:"error"`
}
