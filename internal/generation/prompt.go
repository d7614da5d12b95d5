package generation

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/phrazzld/fable-api/internal/domain"
)

// systemInstruction is the fixed storyteller role sent as the system
// instruction on every generation call.
const systemInstruction = "You are a magical storyteller. You must write a creative, engaging, " +
	"and unique short story based ONLY on the user's provided details. Structure the story with " +
	"an introduction, conflict, and resolution. The story should have a clear beginning and end."

// inlineSeparator joins the system instruction and user content when the
// endpoint does not accept a separate system-instruction parameter.
const inlineSeparator = "\n\nUSER PROMPT:\n"

// userPromptTemplate renders the user content. Every StoryRequest field is
// embedded verbatim; nothing is truncated or escaped.
const userPromptTemplate = `Please write a personalized story for the main character named '{{.Name}}'.

Story Theme: {{.Theme}}
Genre: {{.Genre}}
Key Setting/Location: {{.Setting}}
Length: {{.LengthWords}} words.

The main character, {{.Name}}, loves {{.Hobby}} and their defining personality trait is {{.Trait}}.
Begin the story now:
`

var userPrompt = template.Must(template.New("story").Parse(userPromptTemplate))

// BuildPrompt deterministically maps a StoryRequest to the prompt pair
// sent to the model. It does not validate the request; empty fields are
// rejected upstream before this function is reached.
func BuildPrompt(req domain.StoryRequest) (Prompt, error) {
	var buf bytes.Buffer
	if err := userPrompt.Execute(&buf, req); err != nil {
		return Prompt{}, fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return Prompt{
		System: systemInstruction,
		User:   buf.String(),
	}, nil
}

// Inline returns the single-string form of the prompt, used when the
// endpoint rejects a separate system-instruction parameter.
func (p Prompt) Inline() string {
	if p.System == "" {
		return p.User
	}
	return p.System + inlineSeparator + p.User
}
