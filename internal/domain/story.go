package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Well-known length options, in approximate word counts. These mirror the
// choices offered by client UIs; any positive word count is accepted.
const (
	LengthShort  = 200
	LengthMedium = 350
	LengthLong   = 500
	LengthEpic   = 750

	// DefaultLengthWords is used when a request specifies neither a word
	// count nor a label.
	DefaultLengthWords = LengthMedium
)

// lengthLabels maps the enum labels accepted in requests to word counts.
var lengthLabels = map[string]int{
	"short":  LengthShort,
	"medium": LengthMedium,
	"long":   LengthLong,
	"epic":   LengthEpic,
}

// Common validation errors for StoryRequest.
var (
	ErrEmptyName    = errors.New("character name cannot be empty")
	ErrEmptyTrait   = errors.New("character trait cannot be empty")
	ErrEmptyHobby   = errors.New("character hobby cannot be empty")
	ErrEmptySetting = errors.New("story setting cannot be empty")
	ErrEmptyTheme   = errors.New("story theme cannot be empty")
	ErrEmptyGenre   = errors.New("story genre cannot be empty")
	ErrInvalidLength = errors.New(
		"story length must be a positive word count",
	)
)

// StoryRequest is the immutable set of user-provided fields describing the
// story to generate. Every field is embedded verbatim in the prompt; none
// may be empty.
type StoryRequest struct {
	Name        string `json:"name"`
	Trait       string `json:"trait"`
	Hobby       string `json:"hobby"`
	Setting     string `json:"setting"`
	Theme       string `json:"theme"`
	Genre       string `json:"genre"`
	LengthWords int    `json:"length_words"`
}

// Validate checks that every required field is present and the length is
// positive. It returns the first validation error encountered.
func (r StoryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(r.Trait) == "" {
		return ErrEmptyTrait
	}
	if strings.TrimSpace(r.Hobby) == "" {
		return ErrEmptyHobby
	}
	if strings.TrimSpace(r.Setting) == "" {
		return ErrEmptySetting
	}
	if strings.TrimSpace(r.Theme) == "" {
		return ErrEmptyTheme
	}
	if strings.TrimSpace(r.Genre) == "" {
		return ErrEmptyGenre
	}
	if r.LengthWords <= 0 {
		return ErrInvalidLength
	}
	return nil
}

// ResolveLengthLabel maps a length label ("short", "medium", "long",
// "epic") to its word count. Labels are matched case-insensitively.
func ResolveLengthLabel(label string) (int, error) {
	words, ok := lengthLabels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLengthLabel, label)
	}
	return words, nil
}

// Story is the result of a single generation. It has no persisted
// identity; the ID exists only so callers can correlate a response with
// logs for the lifetime of the request/response cycle.
type Story struct {
	ID        uuid.UUID    `json:"id"`
	Request   StoryRequest `json:"request"`
	Text      string       `json:"text"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewStory wraps generated text and the request that produced it.
// Returns an error if the request is invalid or the text is empty.
func NewStory(req StoryRequest, text string) (*Story, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("%w: story text cannot be empty", ErrValidation)
	}
	return &Story{
		ID:        uuid.New(),
		Request:   req,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// DownloadFilename returns the plain-text filename for a story download,
// derived from the character name and genre.
func (s *Story) DownloadFilename() string {
	return fmt.Sprintf("%s-%s-story.txt", slugify(s.Request.Name), slugify(s.Request.Genre))
}

// slugify lowercases the input and collapses anything that is not a
// letter or digit into single hyphens.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// StoryOptions lists the select-control choices a client UI can offer.
// These are suggestions; free-text values are accepted everywhere.
type StoryOptions struct {
	Settings []string `json:"settings"`
	Themes   []string `json:"themes"`
	Genres   []string `json:"genres"`
	Lengths  []int    `json:"lengths"`
}

// DefaultStoryOptions returns the canonical option set.
func DefaultStoryOptions() StoryOptions {
	return StoryOptions{
		Settings: []string{
			"A bustling futuristic city",
			"An ancient, misty forest",
			"A remote, ice-covered planet",
			"A magical library",
		},
		Themes: []string{
			"Fantasy Adventure",
			"Sci-Fi Mystery",
			"Historical Romance",
			"Modern Comedy",
		},
		Genres: []string{
			"Fairy Tale",
			"Adventure",
			"Mystery",
			"Comedy",
		},
		Lengths: []int{LengthShort, LengthMedium, LengthLong, LengthEpic},
	}
}
