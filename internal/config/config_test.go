package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

var allKeys = []string{
	"PORT", "FRONTEND_URL", "LOG_LEVEL", "SESSIONS_DIR", "SESSION_BACKEND",
	"SESSION_TIMEOUT", "SWEEP_INTERVAL", "SESSION_PERSIST", "SESSION_PURGE_ON_EXPIRY",
	"HISTORY_KEEP", "HISTORY_WINDOW", "MAX_ARTIFACT_BYTES", "PROMPT_PROFILE",
	"LLM_PROVIDER", "LLM_BASE_URL", "LLM_MODEL", "LLM_TEMPERATURE",
	"GROQ_API_KEY", "LLM_API_KEY", "LLM_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != 8000 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if !reflect.DeepEqual(cfg.AllowOrigins, []string{"http://localhost:5173"}) {
		t.Errorf("AllowOrigins = %v", cfg.AllowOrigins)
	}
	if cfg.SessionsDir != "sessions" || cfg.SessionBackend != "file" {
		t.Errorf("storage = %s/%s", cfg.SessionsDir, cfg.SessionBackend)
	}
	if cfg.SessionTimeout != 2*time.Hour || cfg.SweepInterval != 5*time.Minute {
		t.Errorf("timing = %s/%s", cfg.SessionTimeout, cfg.SweepInterval)
	}
	if !cfg.SessionPersist || cfg.SessionPurgeOnExpiry {
		t.Errorf("persist flags = %v/%v", cfg.SessionPersist, cfg.SessionPurgeOnExpiry)
	}
	if cfg.HistoryKeep != 1 || cfg.HistoryWindow != 5 || cfg.MaxArtifactBytes != 32000 {
		t.Errorf("history = %d/%d/%d", cfg.HistoryKeep, cfg.HistoryWindow, cfg.MaxArtifactBytes)
	}
	if cfg.LLMProvider != "groq" || cfg.LLMModel != "openai/gpt-oss-120b" || cfg.LLMBaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("llm = %s %s %s", cfg.LLMProvider, cfg.LLMModel, cfg.LLMBaseURL)
	}
	if cfg.LLMTemperature != 0.5 || cfg.LLMTimeout != 120*time.Second {
		t.Errorf("llm params = %v/%s", cfg.LLMTemperature, cfg.LLMTimeout)
	}
	if cfg.LLMAPIKey != "gsk_test" {
		t.Errorf("LLMAPIKey = %q", cfg.LLMAPIKey)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("FRONTEND_URL", "http://a.test, http://b.test ,")
	t.Setenv("SESSION_TIMEOUT", "7200")
	t.Setenv("SWEEP_INTERVAL", "30s")
	t.Setenv("SESSION_PERSIST", "false")
	t.Setenv("SESSION_BACKEND", "bolt")
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("LLM_TEMPERATURE", "0.2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if !reflect.DeepEqual(cfg.AllowOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Errorf("AllowOrigins = %v", cfg.AllowOrigins)
	}
	if cfg.SessionTimeout != 2*time.Hour || cfg.SweepInterval != 30*time.Second {
		t.Errorf("timing = %s/%s", cfg.SessionTimeout, cfg.SweepInterval)
	}
	if cfg.SessionPersist || cfg.SessionBackend != "bolt" {
		t.Errorf("persist = %v/%s", cfg.SessionPersist, cfg.SessionBackend)
	}
	if cfg.LLMBaseURL != "http://localhost:11434" || cfg.LLMModel != "qwen2.5-coder:7b" {
		t.Errorf("ollama defaults = %s %s", cfg.LLMBaseURL, cfg.LLMModel)
	}
	if cfg.LLMTemperature != 0.2 {
		t.Errorf("LLMTemperature = %v", cfg.LLMTemperature)
	}
}

func TestLoadAPIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "generic")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LLMAPIKey != "generic" {
		t.Fatalf("LLMAPIKey = %q", cfg.LLMAPIKey)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing groq key", map[string]string{}, "GROQ_API_KEY"},
		{"bad port", map[string]string{"GROQ_API_KEY": "k", "PORT": "70000"}, "PORT"},
		{"bad backend", map[string]string{"GROQ_API_KEY": "k", "SESSION_BACKEND": "redis"}, "SESSION_BACKEND"},
		{"bad provider", map[string]string{"LLM_PROVIDER": "bedrock"}, "LLM_PROVIDER"},
		{"zero keep", map[string]string{"GROQ_API_KEY": "k", "HISTORY_KEEP": "0"}, "HISTORY_KEEP"},
		{"negative window", map[string]string{"GROQ_API_KEY": "k", "HISTORY_WINDOW": "-1"}, "HISTORY_WINDOW"},
		{"temperature", map[string]string{"GROQ_API_KEY": "k", "LLM_TEMPERATURE": "3"}, "LLM_TEMPERATURE"},
		{"zero timeout", map[string]string{"GROQ_API_KEY": "k", "SESSION_TIMEOUT": "0s"}, "SESSION_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadStorageSkipsProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_BACKEND", "sqlite")

	cfg, err := LoadStorage()
	if err != nil {
		t.Fatalf("load storage: %v", err)
	}
	if cfg.SessionBackend != "sqlite" {
		t.Fatalf("SessionBackend = %s", cfg.SessionBackend)
	}
}
