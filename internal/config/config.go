package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	AllowOrigins []string
	LogLevel     string
	// Sessions
	SessionsDir          string
	SessionBackend       string
	SessionTimeout       time.Duration
	SweepInterval        time.Duration
	SessionPersist       bool
	SessionPurgeOnExpiry bool
	HistoryKeep          int
	// Prompt construction
	HistoryWindow    int
	MaxArtifactBytes int
	PromptProfile    string
	// Model provider
	LLMProvider    string
	LLMBaseURL     string
	LLMModel       string
	LLMTemperature float64
	LLMAPIKey      string
	LLMTimeout     time.Duration
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory if one exists.
func Load() (*Config, error) {
	cfg := read()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// LoadStorage is Load for commands that only touch session snapshots; the
// model provider settings are not validated.
func LoadStorage() (*Config, error) {
	cfg := read()
	if err := cfg.validateStorage(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func read() *Config {
	_ = godotenv.Load()

	provider := envStr("LLM_PROVIDER", "groq")
	cfg := &Config{
		Port:                 envInt("PORT", 8000),
		AllowOrigins:         envList("FRONTEND_URL", []string{"http://localhost:5173"}),
		LogLevel:             envStr("LOG_LEVEL", "info"),
		SessionsDir:          envStr("SESSIONS_DIR", "sessions"),
		SessionBackend:       envStr("SESSION_BACKEND", "file"),
		SessionTimeout:       envDuration("SESSION_TIMEOUT", 2*time.Hour),
		SweepInterval:        envDuration("SWEEP_INTERVAL", 5*time.Minute),
		SessionPersist:       envBool("SESSION_PERSIST", true),
		SessionPurgeOnExpiry: envBool("SESSION_PURGE_ON_EXPIRY", false),
		HistoryKeep:          envInt("HISTORY_KEEP", 1),
		HistoryWindow:        envInt("HISTORY_WINDOW", 5),
		MaxArtifactBytes:     envInt("MAX_ARTIFACT_BYTES", 32000),
		PromptProfile:        envStr("PROMPT_PROFILE", ""),
		LLMProvider:          provider,
		LLMBaseURL:           envStr("LLM_BASE_URL", defaultBaseURL(provider)),
		LLMModel:             envStr("LLM_MODEL", defaultModel(provider)),
		LLMTemperature:       envFloat("LLM_TEMPERATURE", 0.5),
		LLMAPIKey:            envStr("GROQ_API_KEY", os.Getenv("LLM_API_KEY")),
		LLMTimeout:           envDuration("LLM_TIMEOUT", 120*time.Second),
	}
	return cfg
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if len(c.AllowOrigins) == 0 {
		return fmt.Errorf("FRONTEND_URL must not be empty")
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if c.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive, got %s", c.SessionTimeout)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", c.SweepInterval)
	}
	if c.HistoryKeep < 1 {
		return fmt.Errorf("HISTORY_KEEP must be at least 1, got %d", c.HistoryKeep)
	}
	if c.HistoryWindow < 0 {
		return fmt.Errorf("HISTORY_WINDOW must not be negative, got %d", c.HistoryWindow)
	}
	if c.MaxArtifactBytes < 0 {
		return fmt.Errorf("MAX_ARTIFACT_BYTES must not be negative, got %d", c.MaxArtifactBytes)
	}
	switch c.LLMProvider {
	case "groq":
		if c.LLMAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY must be set for the groq provider")
		}
	case "ollama":
	default:
		return fmt.Errorf("LLM_PROVIDER must be groq or ollama, got %q", c.LLMProvider)
	}
	if c.LLMBaseURL == "" {
		return fmt.Errorf("LLM_BASE_URL must not be empty")
	}
	if c.LLMTemperature < 0 || c.LLMTemperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %f", c.LLMTemperature)
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.SessionsDir == "" {
		return fmt.Errorf("SESSIONS_DIR must not be empty")
	}
	switch c.SessionBackend {
	case "file", "sqlite", "bolt":
	default:
		return fmt.Errorf("SESSION_BACKEND must be file, sqlite or bolt, got %q", c.SessionBackend)
	}
	return nil
}

func defaultBaseURL(provider string) string {
	if provider == "ollama" {
		return "http://localhost:11434"
	}
	return "https://api.groq.com/openai/v1"
}

func defaultModel(provider string) string {
	if provider == "ollama" {
		return "qwen2.5-coder:7b"
	}
	return "openai/gpt-oss-120b"
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

// envDuration accepts Go durations ("90s", "2h") or a bare number of seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		var out []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
