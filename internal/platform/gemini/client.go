package gemini

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"sync/atomic"

	"google.golang.org/genai"

	"github.com/phrazzld/fable-api/internal/config"
	"github.com/phrazzld/fable-api/internal/generation"
	"github.com/phrazzld/fable-api/internal/redact"
)

// modelCaller abstracts the genai model surface so the call-shape logic
// can be exercised against a mock. *genai.Models satisfies it directly.
type modelCaller interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)

	GenerateContentStream(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) iter.Seq2[*genai.GenerateContentResponse, error]
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to generate personalized stories.
//
// The system-instruction call strategy is selected per generator, not
// probed on every request: in "native" mode a rejected parameter is a
// terminal error, in "inline" mode the instruction is always folded into
// the user content, and in "auto" mode the first rejection triggers a
// one-shot fallback whose outcome is remembered for later requests.
type GeminiGenerator struct {
	logger *slog.Logger
	config config.LLMConfig
	caller modelCaller
	model  string
	mode   string

	// inlineOnly records the learned (or configured) capability: once
	// true, every call uses the inline prompt shape.
	inlineOnly atomic.Bool
}

// NewGeminiGenerator creates a GeminiGenerator from the provided
// dependencies. The genai client is constructed here and injected into
// the generator; there is no process-global client.
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return newGenerator(logger, cfg, client.Models)
}

// newGenerator wires a generator around an arbitrary modelCaller. Split
// from NewGeminiGenerator so tests can substitute the caller.
func newGenerator(logger *slog.Logger, cfg config.LLMConfig, caller modelCaller) (*GeminiGenerator, error) {
	mode := cfg.SystemInstructionMode
	if mode == "" {
		mode = config.SystemInstructionModeAuto
	}
	switch mode {
	case config.SystemInstructionModeAuto,
		config.SystemInstructionModeNative,
		config.SystemInstructionModeInline:
	default:
		return nil, fmt.Errorf("%w: unknown system instruction mode %q",
			generation.ErrInvalidConfig, mode)
	}

	g := &GeminiGenerator{
		logger: logger,
		config: cfg,
		caller: caller,
		model:  cfg.ModelName,
		mode:   mode,
	}
	if mode == config.SystemInstructionModeInline {
		g.inlineOnly.Store(true)
	}
	return g, nil
}

// buildCall assembles the request contents and config for one call shape.
// In the inline shape the system instruction is prepended to the user
// content and no SystemInstruction field is set.
func (g *GeminiGenerator) buildCall(req generation.Request, inline bool) ([]*genai.Content, *genai.GenerateContentConfig) {
	text := req.Prompt.User
	if inline {
		text = req.Prompt.Inline()
	}

	parts := []*genai.Part{{Text: text}}
	if req.Image != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: req.Image.MIMEType,
				Data:     req.Image.Data,
			},
		})
	}
	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}

	cfg := &genai.GenerateContentConfig{}
	if g.config.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = g.config.MaxOutputTokens
	}
	if !inline {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.Prompt.System}},
		}
	}
	return contents, cfg
}

// noteInlineFallback records that the endpoint rejected the native call
// shape. Only logs on the first transition.
func (g *GeminiGenerator) noteInlineFallback(ctx context.Context, err error) {
	if g.inlineOnly.CompareAndSwap(false, true) {
		g.logger.WarnContext(ctx, "endpoint rejected system_instruction parameter, switching to inline prompts",
			"model", g.model,
			"error", redact.Error(err))
	}
}

// GenerateStory produces the complete story text for the request. It
// issues at most two calls: the preferred shape, and (in auto mode, on a
// signature-mismatch error only) the inline fallback.
func (g *GeminiGenerator) GenerateStory(ctx context.Context, req generation.Request) (string, error) {
	inline := g.inlineOnly.Load()
	contents, cfg := g.buildCall(req, inline)

	g.logger.DebugContext(ctx, "calling Gemini generate content",
		"model", g.model,
		"inline", inline,
		"has_image", req.Image != nil)

	resp, err := g.caller.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil && !inline && isSignatureMismatch(err) {
		if g.mode == config.SystemInstructionModeNative {
			return "", fmt.Errorf("%w: %v", generation.ErrSignatureMismatch, err)
		}
		g.noteInlineFallback(ctx, err)
		contents, cfg = g.buildCall(req, true)
		resp, err = g.caller.GenerateContent(ctx, g.model, contents, cfg)
	}
	if err != nil {
		return "", classifyError(err)
	}

	return extractText(resp)
}

// GenerateStoryStream produces the story as a lazy chunk sequence. The
// first stream item is pulled eagerly so that signature-mismatch errors
// are resolved (and the fallback applied) before the caller sees any
// chunk.
func (g *GeminiGenerator) GenerateStoryStream(ctx context.Context, req generation.Request) (generation.Stream, error) {
	inline := g.inlineOnly.Load()
	contents, cfg := g.buildCall(req, inline)

	g.logger.DebugContext(ctx, "calling Gemini generate content stream",
		"model", g.model,
		"inline", inline,
		"has_image", req.Image != nil)

	next, stop := iter.Pull2(g.caller.GenerateContentStream(ctx, g.model, contents, cfg))
	resp, err, ok := next()

	if ok && err != nil && !inline && isSignatureMismatch(err) {
		stop()
		if g.mode == config.SystemInstructionModeNative {
			return nil, fmt.Errorf("%w: %v", generation.ErrSignatureMismatch, err)
		}
		g.noteInlineFallback(ctx, err)
		contents, cfg = g.buildCall(req, true)
		next, stop = iter.Pull2(g.caller.GenerateContentStream(ctx, g.model, contents, cfg))
		resp, err, ok = next()
	}

	if !ok {
		stop()
		return nil, fmt.Errorf("%w: empty stream", generation.ErrInvalidResponse)
	}
	if err != nil {
		stop()
		return nil, classifyError(err)
	}

	stream := func(yield func(string, error) bool) {
		defer stop()
		cur := resp
		for {
			chunk, chunkErr := chunkText(cur)
			if chunkErr != nil {
				yield("", chunkErr)
				return
			}
			if chunk != "" && !yield(chunk, nil) {
				return
			}

			var more bool
			var nextErr error
			cur, nextErr, more = next()
			if !more {
				return
			}
			if nextErr != nil {
				yield("", classifyError(nextErr))
				return
			}
		}
	}
	return stream, nil
}

// extractText pulls the full story text out of a non-streaming response,
// enforcing the same response invariants the chunk path applies.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	text, err := chunkText(resp)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
	}
	return text, nil
}

// chunkText extracts the text of one response. Mid-stream responses may
// legitimately carry no text; safety blocks are terminal.
func chunkText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", nil
	}
	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w", generation.ErrContentBlocked)
	}
	if cand.Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}
