// Package llm wraps the text-generation backends the relay can call.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrUpstream marks failures of the model provider: transport errors,
// non-2xx replies, and empty or undecodable responses.
var ErrUpstream = errors.New("upstream unavailable")

// Generator turns a prompt into the model's raw text response.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	ProviderGroq   = "groq"
	ProviderOllama = "ollama"
)

// Config selects and parameterizes a backend.
type Config struct {
	Provider    string
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float64
	Timeout     time.Duration
}

// New builds the Generator for cfg.Provider, wrapped with request logging.
func New(cfg Config, logger *slog.Logger) (Generator, error) {
	var (
		gen Generator
		err error
	)
	switch cfg.Provider {
	case ProviderGroq, "":
		gen, err = NewOpenAICompatible(cfg)
	case ProviderOllama:
		gen = NewOllama(cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return WithLogging(gen, cfg.Provider, cfg.Model, logger), nil
}

type loggedGenerator struct {
	next     Generator
	provider string
	model    string
	logger   *slog.Logger
}

// WithLogging logs duration and sizes of every call made through next.
func WithLogging(next Generator, provider, model string, logger *slog.Logger) Generator {
	return &loggedGenerator{next: next, provider: provider, model: model, logger: logger}
}

func (g *loggedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := g.next.Generate(ctx, prompt)
	duration := time.Since(start).Milliseconds()
	if err != nil {
		g.logger.Error("llm call failed",
			"provider", g.provider,
			"model", g.model,
			"duration_ms", duration,
			"error", err,
		)
		return "", err
	}
	g.logger.Debug("llm call",
		"provider", g.provider,
		"model", g.model,
		"prompt_bytes", len(prompt),
		"response_bytes", len(out),
		"duration_ms", duration,
	)
	return out, nil
}
