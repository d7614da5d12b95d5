// Package config defines the application configuration structure and its
// loading logic. Configuration comes from environment variables with the
// STORY_ prefix, optionally seeded from a local .env file. The Gemini API
// credential is loaded exactly once here; absence is a terminal
// configuration error surfaced at startup, before any generation
// component is constructed.
package config
