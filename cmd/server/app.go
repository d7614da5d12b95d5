package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/fable-api/internal/api"
	"github.com/phrazzld/fable-api/internal/config"
	"github.com/phrazzld/fable-api/internal/generation"
	"github.com/phrazzld/fable-api/internal/platform/gemini"
	"github.com/phrazzld/fable-api/internal/service"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Service interfaces
	generator    generation.Generator
	storyService service.StoryService

	// HTTP layer
	storyHandler *api.StoryHandler
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration and logger
// that must be established before application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	// Create the LLM generator service
	var err error
	app.generator, err = gemini.NewGeminiGenerator(
		ctx,
		logger.With("component", "llm_generator"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized successfully",
		"model", cfg.LLM.ModelName)

	// Initialize story service
	app.storyService, err = service.NewStoryService(
		app.generator,
		logger.With("component", "story_service"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create story service: %w", err)
	}

	// Create the HTTP handler
	app.storyHandler = api.NewStoryHandler(app.storyService, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed")
}
