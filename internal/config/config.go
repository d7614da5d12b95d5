package config

// System-instruction call strategies for the Gemini client.
const (
	// SystemInstructionModeAuto tries the distinct system-instruction
	// field and permanently falls back to inline prompts if the endpoint
	// rejects the parameter.
	SystemInstructionModeAuto = "auto"

	// SystemInstructionModeNative always uses the distinct field; a
	// rejected parameter is a terminal error.
	SystemInstructionModeNative = "native"

	// SystemInstructionModeInline always folds the system instruction
	// into the user content.
	SystemInstructionModeInline = "inline"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm"       validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// GeminiAPIKey is the single opaque credential for the Gemini API.
	// Loaded once at startup, never mutated, never logged.
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`

	// ModelName identifies the Gemini model used for every generation.
	ModelName string `mapstructure:"model_name" validate:"required"`

	// SystemInstructionMode selects the call strategy for the system
	// instruction: auto, native, or inline.
	SystemInstructionMode string `mapstructure:"system_instruction_mode" validate:"required,oneof=auto native inline"`

	// MaxOutputTokens caps the model output when positive; zero leaves
	// the endpoint default in place.
	MaxOutputTokens int32 `mapstructure:"max_output_tokens" validate:"gte=0"`
}

// RateLimitConfig contains the per-client request rate limit settings.
// A zero RPS disables rate limiting.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"   validate:"gte=0"`
	Burst int     `mapstructure:"burst" validate:"gte=0"`
}
