package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/phrazzld/fable-api/internal/api/shared"
	"github.com/phrazzld/fable-api/internal/domain"
	"github.com/phrazzld/fable-api/internal/generation"
	"github.com/phrazzld/fable-api/internal/service"
)

// maxUploadBytes caps the multipart form size, image included.
const maxUploadBytes = 8 << 20

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyService service.StoryService
	logger       *slog.Logger
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyService service.StoryService, logger *slog.Logger) *StoryHandler {
	return &StoryHandler{
		storyService: storyService,
		logger:       logger,
	}
}

// parseRequest reads a generation request from the body. Plain JSON bodies
// carry only the fields; multipart bodies carry a "request" JSON part and
// an optional "image" file part.
func (h *StoryHandler) parseRequest(r *http.Request) (*GenerateStoryRequest, *generation.ImageAttachment, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	if mediaType == "multipart/form-data" {
		return h.parseMultipartRequest(r)
	}

	var req GenerateStoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return nil, nil, fmt.Errorf("invalid request format: %w", err)
	}
	return &req, nil, nil
}

func (h *StoryHandler) parseMultipartRequest(r *http.Request) (*GenerateStoryRequest, *generation.ImageAttachment, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	var req GenerateStoryRequest
	if err := json.Unmarshal([]byte(r.FormValue("request")), &req); err != nil {
		return nil, nil, fmt.Errorf("invalid request part: %w", err)
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return &req, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("invalid image part: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			h.logger.Warn("failed to close uploaded image", "error", cerr)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read image part: %w", err)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, nil, fmt.Errorf("unsupported image type %q", mimeType)
	}

	return &req, &generation.ImageAttachment{MIMEType: mimeType, Data: data}, nil
}

// decodeAndValidate parses the body, runs struct validation, and resolves
// the length. All failures here are input errors; no remote call has been
// issued yet.
func (h *StoryHandler) decodeAndValidate(
	w http.ResponseWriter,
	r *http.Request,
) (domain.StoryRequest, *generation.ImageAttachment, bool) {
	req, image, err := h.parseRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return domain.StoryRequest{}, nil, false
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return domain.StoryRequest{}, nil, false
	}

	domReq, err := req.ToDomain()
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return domain.StoryRequest{}, nil, false
	}

	return domReq, image, true
}

// GenerateStory handles POST /api/stories requests
func (h *StoryHandler) GenerateStory(w http.ResponseWriter, r *http.Request) {
	domReq, image, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	story, err := h.storyService.GenerateStory(r.Context(), domReq, image)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, storyToResponse(story))
}

// DownloadStory handles POST /api/stories/download requests. The story is
// generated and returned as a plain-text attachment named from the
// character name and genre.
func (h *StoryHandler) DownloadStory(w http.ResponseWriter, r *http.Request) {
	domReq, image, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	story, err := h.storyService.GenerateStory(r.Context(), domReq, image)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", story.DownloadFilename()))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, story.Text); err != nil {
		h.logger.Error("failed to write story download", "error", err)
	}
}

// StreamStory handles POST /api/stories/stream requests, emitting the
// story as Server-Sent Events: zero or more "chunk" events followed by a
// terminal "done" or "error" event.
func (h *StoryHandler) StreamStory(w http.ResponseWriter, r *http.Request) {
	domReq, image, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Streaming not supported")
		return
	}

	stream, err := h.storyService.GenerateStoryStream(r.Context(), domReq, image)
	if err != nil {
		// Setup failures (including an exhausted fallback) happen before
		// any SSE bytes are written, so a JSON error is still possible.
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	var full strings.Builder
	for chunk, serr := range stream {
		if serr != nil {
			h.logger.ErrorContext(r.Context(), "story stream failed",
				"error", serr,
				"received_chars", full.Len())
			h.writeEvent(w, flusher, "error", streamErrorEvent{Error: GetSafeErrorMessage(serr)})
			return
		}
		full.WriteString(chunk)
		h.writeEvent(w, flusher, "chunk", streamChunkEvent{Text: chunk})
	}

	story, err := domain.NewStory(domReq, full.String())
	if err != nil {
		h.writeEvent(w, flusher, "error",
			streamErrorEvent{Error: GetSafeErrorMessage(generation.ErrInvalidResponse)})
		return
	}

	h.writeEvent(w, flusher, "done", streamDoneEvent{
		StoryID:          story.ID.String(),
		DownloadFilename: story.DownloadFilename(),
		TotalChars:       len(story.Text),
	})
}

// writeEvent serializes one SSE event and flushes it to the client.
func (h *StoryHandler) writeEvent(w http.ResponseWriter, flusher http.Flusher, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal SSE payload", "event", event, "error", err)
		return
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		h.logger.Debug("failed to write SSE event, client likely gone",
			"event", event, "error", err)
		return
	}
	flusher.Flush()
}

// GetOptions handles GET /api/stories/options requests
func (h *StoryHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.storyService.Options())
}
