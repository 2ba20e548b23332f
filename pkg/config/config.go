package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/rwxproject/agent-toolkit/pkg/validate"
)

// ModelConfig holds the generation parameters forwarded to the model
// provider. All numeric fields are range-validated at load time so that a
// provider never sees an out-of-bounds value.
type ModelConfig struct {
	// Name is the provider-specific model identifier.
	Name string
	// Temperature controls sampling randomness. Valid range: [0, 2].
	Temperature float64
	// TopP is the nucleus sampling probability mass. Valid range: [0, 1].
	TopP float64
	// TopK limits sampling to the K most likely tokens. Must be >= 1.
	TopK int
	// MaxOutputTokens caps the response length. Valid range: [1, 8192].
	MaxOutputTokens int
}

// Validate checks every generation parameter against its declared range.
func (m *ModelConfig) Validate() error {
	if err := validate.FloatRange("TEMPERATURE", m.Temperature, 0, 2); err != nil {
		return err
	}
	if err := validate.FloatRange("TOP_P", m.TopP, 0, 1); err != nil {
		return err
	}
	if err := validate.IntMin("TOP_K", m.TopK, 1); err != nil {
		return err
	}
	return validate.IntRange("MAX_OUTPUT_TOKENS", m.MaxOutputTokens, 1, 8192)
}

// AgentConfig holds the agent's identity and diagnostic settings.
type AgentConfig struct {
	// Name is embedded in responses and log lines to identify the agent.
	Name string
	// Debug lowers the effective log level to debug and enables the
	// request/response debug decorator around the model provider.
	Debug bool
	// LogLevel is the minimum severity for log output (trace..error).
	LogLevel string
	// LogFormat selects the log encoding: "json" or "text".
	LogFormat string
}

// Validate checks the diagnostic settings.
func (a *AgentConfig) Validate() error {
	return validate.OneOf("LOG_FORMAT", strings.ToLower(a.LogFormat), "json", "text")
}

// SessionConfig selects and parameterizes the session persistence backend.
type SessionConfig struct {
	// Store is the backend kind: "memory", "file" or "sqlite".
	Store string
	// Dir is the directory for the file backend.
	Dir string
	// DBPath is the database file for the sqlite backend.
	DBPath string
	// TTL is how long an idle session survives before the janitor removes it.
	TTL time.Duration
}

// Validate checks the persistence settings.
func (s *SessionConfig) Validate() error {
	if err := validate.OneOf("SESSION_STORE", strings.ToLower(s.Store), "memory", "file", "sqlite"); err != nil {
		return err
	}
	if s.TTL <= 0 {
		return &validate.FieldError{Field: "SESSION_TTL", Value: s.TTL.String(), Constraint: "must be a positive duration"}
	}
	return nil
}

// AppConfig aggregates everything the process needs to start. It is built
// once from the environment and treated as immutable afterwards.
type AppConfig struct {
	// APIKey is the credential for the selected provider. Which environment
	// variable feeds it depends on Provider; see CredentialVar.
	APIKey string
	// Provider names the model provider implementation to use.
	// The default "placeholder" returns deterministic canned responses.
	Provider string
	// OllamaHost is the endpoint used when Provider is "ollama".
	OllamaHost string
	// Model carries the generation parameters.
	Model ModelConfig
	// Agent carries identity and diagnostics.
	Agent AgentConfig
	// Session carries the persistence settings.
	Session SessionConfig
}

// Default returns an AppConfig populated with every documented default.
// The credential is intentionally left empty; Load fails when the selected
// provider requires one and the environment does not supply it.
func Default() *AppConfig {
	return &AppConfig{
		Provider:   "placeholder",
		OllamaHost: "http://localhost:11434",
		Model: ModelConfig{
			Name:            "gemini-1.5-pro",
			Temperature:     0.7,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 2048,
		},
		Agent: AgentConfig{
			Name:      "Starter Agent",
			Debug:     false,
			LogLevel:  "INFO",
			LogFormat: "json",
		},
		Session: SessionConfig{
			Store:  "memory",
			Dir:    ".sessions",
			DBPath: "sessions.db",
			TTL:    30 * time.Minute,
		},
	}
}

// CredentialVar returns the environment variable that must carry the API key
// for the given provider, or "" when the provider needs no credential.
func CredentialVar(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "ollama":
		return ""
	default:
		// placeholder keeps the same fail-fast contract as gemini so a
		// misconfigured deployment is caught before the first request.
		return "GOOGLE_API_KEY"
	}
}

// Load reads the configuration from the environment. A .env file in the
// working directory is honored, but real environment variables always win.
// It fails with *ConfigurationError when the selected provider's credential
// is missing and with *validate.FieldError when any value is out of range.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := Default()
	cfg.Provider = strings.ToLower(envString("MODEL_PROVIDER", cfg.Provider))
	cfg.OllamaHost = envString("OLLAMA_HOST", cfg.OllamaHost)

	if v := CredentialVar(cfg.Provider); v != "" {
		key := strings.TrimSpace(os.Getenv(v))
		if key == "" {
			return nil, &ConfigurationError{
				Variable: v,
				Hint:     "export " + v + "=<your key> or add it to .env",
			}
		}
		cfg.APIKey = key
	}

	var err error
	cfg.Model.Name = envString("MODEL_NAME", cfg.Model.Name)
	if cfg.Model.Temperature, err = envFloat("TEMPERATURE", cfg.Model.Temperature); err != nil {
		return nil, err
	}
	if cfg.Model.TopP, err = envFloat("TOP_P", cfg.Model.TopP); err != nil {
		return nil, err
	}
	if cfg.Model.TopK, err = envInt("TOP_K", cfg.Model.TopK); err != nil {
		return nil, err
	}
	if cfg.Model.MaxOutputTokens, err = envInt("MAX_OUTPUT_TOKENS", cfg.Model.MaxOutputTokens); err != nil {
		return nil, err
	}

	cfg.Agent.Name = envString("AGENT_NAME", cfg.Agent.Name)
	if cfg.Agent.Debug, err = envBool("DEBUG", cfg.Agent.Debug); err != nil {
		return nil, err
	}
	cfg.Agent.LogLevel = envString("LOG_LEVEL", cfg.Agent.LogLevel)
	cfg.Agent.LogFormat = envString("LOG_FORMAT", cfg.Agent.LogFormat)

	cfg.Session.Store = strings.ToLower(envString("SESSION_STORE", cfg.Session.Store))
	cfg.Session.Dir = envString("SESSION_DIR", cfg.Session.Dir)
	cfg.Session.DBPath = envString("SESSION_DB", cfg.Session.DBPath)
	if cfg.Session.TTL, err = envDuration("SESSION_TTL", cfg.Session.TTL); err != nil {
		return nil, err
	}

	if err := cfg.Model.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Agent.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Session.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func envFloat(key string, fallback float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, &validate.FieldError{Field: key, Value: v, Constraint: "must be a number"}
	}
	return f, nil
}

func envInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &validate.FieldError{Field: key, Value: v, Constraint: "must be an integer"}
	}
	return i, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, &validate.FieldError{Field: key, Value: v, Constraint: "must be a boolean"}
	}
	return b, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, &validate.FieldError{Field: key, Value: v, Constraint: "must be a duration such as 30m"}
	}
	return d, nil
}
