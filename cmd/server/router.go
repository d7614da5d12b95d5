package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apiMiddleware "github.com/phrazzld/fable-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware. Generation endpoints sit behind a per-IP rate
// limit because each call spends remote LLM quota.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Option lists are cheap; no rate limit needed
		r.Get("/stories/options", app.storyHandler.GetOptions)

		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.RateLimit(
				app.config.RateLimit.RPS,
				app.config.RateLimit.Burst,
			))
			r.Post("/stories", app.storyHandler.GenerateStory)
			r.Post("/stories/stream", app.storyHandler.StreamStory)
			r.Post("/stories/download", app.storyHandler.DownloadStory)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
