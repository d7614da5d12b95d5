package generation

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/fable-api/internal/domain"
)

// TestBuildPromptEmbedsAllFields verifies that every field of the request
// appears literally in the user content.
func TestBuildPromptEmbedsAllFields(t *testing.T) {
	t.Parallel()

	requests := []domain.StoryRequest{
		{
			Name:        "Elara",
			Trait:       "Determined",
			Hobby:       "Stargazing",
			Setting:     "A magical library",
			Theme:       "Fantasy Adventure",
			Genre:       "Fairy Tale",
			LengthWords: 350,
		},
		{
			Name:        "Captain Rex-7",
			Trait:       "Recklessly optimistic",
			Hobby:       "collecting broken clocks",
			Setting:     "A remote, ice-covered planet",
			Theme:       "Sci-Fi Mystery",
			Genre:       "Adventure",
			LengthWords: 750,
		},
	}

	for _, req := range requests {
		prompt, err := BuildPrompt(req)
		require.NoError(t, err)

		for _, field := range []string{
			req.Name, req.Trait, req.Hobby, req.Setting, req.Theme, req.Genre,
			strconv.Itoa(req.LengthWords),
		} {
			assert.Contains(t, prompt.User, field,
				"user content must contain field value %q verbatim", field)
		}
	}
}

// TestBuildPromptElaraExample pins the reference example: the canonical
// request must embed every literal value, including the word count.
func TestBuildPromptElaraExample(t *testing.T) {
	t.Parallel()

	prompt, err := BuildPrompt(domain.StoryRequest{
		Name:        "Elara",
		Trait:       "Determined",
		Hobby:       "Stargazing",
		Setting:     "A magical library",
		Theme:       "Fantasy Adventure",
		Genre:       "Fairy Tale",
		LengthWords: 350,
	})
	require.NoError(t, err)

	for _, want := range []string{
		"Elara", "Fantasy Adventure", "A magical library",
		"Stargazing", "Determined", "350",
	} {
		assert.Contains(t, prompt.User, want)
	}
}

func TestBuildPromptSystemInstruction(t *testing.T) {
	t.Parallel()

	prompt, err := BuildPrompt(domain.StoryRequest{
		Name: "Ada", Trait: "curious", Hobby: "chess",
		Setting: "a canal city", Theme: "Historical Romance",
		Genre: "Drama", LengthWords: 200,
	})
	require.NoError(t, err)

	assert.Contains(t, prompt.System, "magical storyteller")
	assert.NotContains(t, prompt.User, prompt.System,
		"system instruction must stay separate from user content")
}

// TestBuildPromptDeterministic verifies that identical requests yield
// identical prompts.
func TestBuildPromptDeterministic(t *testing.T) {
	t.Parallel()

	req := domain.StoryRequest{
		Name: "Ines", Trait: "patient", Hobby: "beekeeping",
		Setting: "An ancient, misty forest", Theme: "Modern Comedy",
		Genre: "Comedy", LengthWords: 500,
	}

	first, err := BuildPrompt(req)
	require.NoError(t, err)
	second, err := BuildPrompt(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPromptInline(t *testing.T) {
	t.Parallel()

	p := Prompt{System: "system text", User: "user text"}
	inline := p.Inline()

	assert.True(t, strings.HasPrefix(inline, "system text"),
		"inline form must start with the system instruction")
	assert.True(t, strings.HasSuffix(inline, "user text"),
		"inline form must end with the user content")

	// Without a system instruction the user content passes through as-is.
	assert.Equal(t, "user text", Prompt{User: "user text"}.Inline())
}
