package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// configKeys lists every configuration key so each gets an explicit env
// binding; viper's AutomaticEnv does not reach nested keys that lack a
// default.
var configKeys = []string{
	"server.port",
	"server.log_level",
	"llm.gemini_api_key",
	"llm.model_name",
	"llm.system_instruction_mode",
	"llm.max_output_tokens",
	"ratelimit.rps",
	"ratelimit.burst",
}

// Load reads configuration from environment variables with the STORY_
// prefix, seeded from a local .env file when one exists. Environment
// variables take precedence over .env values. Returns a populated Config
// or an error if loading or validation fails.
func Load() (*Config, error) {
	// .env seeding is best-effort: a missing file is the normal case in
	// deployed environments.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("llm.model_name", "gemini-2.5-flash")
	v.SetDefault("llm.system_instruction_mode", SystemInstructionModeAuto)
	v.SetDefault("llm.max_output_tokens", 0)
	v.SetDefault("ratelimit.rps", 5)
	v.SetDefault("ratelimit.burst", 10)

	v.SetEnvPrefix("STORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	// The bare GEMINI_API_KEY is accepted as a fallback credential source
	// so a .env written for the upstream tooling keeps working.
	if err := v.BindEnv("llm.gemini_api_key", "STORY_LLM_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind credential environment variables: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Empty env values behave like unset ones so validation catches them.
	cfg.Server.LogLevel = strings.TrimSpace(cfg.Server.LogLevel)
	cfg.LLM.GeminiAPIKey = strings.TrimSpace(cfg.LLM.GeminiAPIKey)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
