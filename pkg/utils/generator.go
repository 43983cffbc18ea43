package utils

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// TextGenerator sends one prompt to a generative model and returns its raw text.
// Implementations make exactly one call; callers own retries, and there are none.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

type GeneratorConfig struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the provider endpoint; empty uses the public API.
	BaseURL string
	Timeout time.Duration
}

// NewTextGenerator creates either a Gemini or an OpenAI client based on config.
func NewTextGenerator(ctx context.Context, cfg GeneratorConfig) (TextGenerator, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI:
		return NewOpenAIGenerator(cfg), nil
	case ProviderGemini, "":
		return NewGeminiGenerator(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

func withGenerateTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
