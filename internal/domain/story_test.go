package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func validRequest() StoryRequest {
	return StoryRequest{
		Name:        "Elara",
		Trait:       "Determined",
		Hobby:       "Stargazing",
		Setting:     "A magical library",
		Theme:       "Fantasy Adventure",
		Genre:       "Fairy Tale",
		LengthWords: 350,
	}
}

func TestStoryRequestValidate(t *testing.T) {
	t.Parallel()

	if err := validRequest().Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*StoryRequest)
		wantErr error
	}{
		{"empty name", func(r *StoryRequest) { r.Name = "" }, ErrEmptyName},
		{"whitespace name", func(r *StoryRequest) { r.Name = "   " }, ErrEmptyName},
		{"empty trait", func(r *StoryRequest) { r.Trait = "" }, ErrEmptyTrait},
		{"empty hobby", func(r *StoryRequest) { r.Hobby = "" }, ErrEmptyHobby},
		{"empty setting", func(r *StoryRequest) { r.Setting = "" }, ErrEmptySetting},
		{"empty theme", func(r *StoryRequest) { r.Theme = "" }, ErrEmptyTheme},
		{"empty genre", func(r *StoryRequest) { r.Genre = "" }, ErrEmptyGenre},
		{"zero length", func(r *StoryRequest) { r.LengthWords = 0 }, ErrInvalidLength},
		{"negative length", func(r *StoryRequest) { r.LengthWords = -10 }, ErrInvalidLength},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := validRequest()
			tc.mutate(&req)
			if err := req.Validate(); !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestResolveLengthLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label string
		want  int
	}{
		{"short", LengthShort},
		{"medium", LengthMedium},
		{"long", LengthLong},
		{"epic", LengthEpic},
		{"MEDIUM", LengthMedium},
		{"  long ", LengthLong},
	}
	for _, tc := range cases {
		got, err := ResolveLengthLabel(tc.label)
		if err != nil {
			t.Errorf("ResolveLengthLabel(%q) returned error %v", tc.label, err)
		}
		if got != tc.want {
			t.Errorf("ResolveLengthLabel(%q) = %d, want %d", tc.label, got, tc.want)
		}
	}

	if _, err := ResolveLengthLabel("novella"); !errors.Is(err, ErrInvalidLengthLabel) {
		t.Errorf("Expected ErrInvalidLengthLabel, got %v", err)
	}
}

func TestNewStory(t *testing.T) {
	t.Parallel()

	story, err := NewStory(validRequest(), "Once upon a time...")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if story.ID == uuid.Nil {
		t.Error("Expected non-nil UUID")
	}
	if story.Text != "Once upon a time..." {
		t.Errorf("Unexpected story text %q", story.Text)
	}
	if story.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Invalid request
	bad := validRequest()
	bad.Name = ""
	if _, err := NewStory(bad, "text"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}

	// Empty text
	if _, err := NewStory(validRequest(), ""); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}

func TestDownloadFilename(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		genre string
		want  string
	}{
		{"Elara", "Fairy Tale", "elara-fairy-tale-story.txt"},
		{"Mr. O'Brien", "Sci-Fi", "mr-o-brien-sci-fi-story.txt"},
		{"  Ada  ", "Mystery", "ada-mystery-story.txt"},
	}
	for _, tc := range cases {
		req := validRequest()
		req.Name = tc.name
		req.Genre = tc.genre
		story, err := NewStory(req, "text")
		if err != nil {
			t.Fatalf("NewStory returned error %v", err)
		}
		if got := story.DownloadFilename(); got != tc.want {
			t.Errorf("DownloadFilename() = %q, want %q", got, tc.want)
		}
	}
}

func TestDefaultStoryOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultStoryOptions()
	if len(opts.Settings) == 0 || len(opts.Themes) == 0 || len(opts.Genres) == 0 {
		t.Fatal("Expected non-empty option lists")
	}
	if len(opts.Lengths) != 4 || opts.Lengths[1] != DefaultLengthWords {
		t.Errorf("Unexpected length options %v", opts.Lengths)
	}
}
