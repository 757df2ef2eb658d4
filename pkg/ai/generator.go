package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/johnquangdev/smart-insights/pkg/config"
)

// TextGenerator sends a single prompt to a generative-text model and returns its raw reply
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// apiKeyEnv lists the provider-specific fallback variable for each provider
var apiKeyEnv = map[string]string{
	config.ProviderGemini:    "GEMINI_API_KEY",
	config.ProviderGroq:      "GROQ_API_KEY",
	config.ProviderOpenAI:    "OPENAI_API_KEY",
	config.ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// NewGenerator builds the generator selected by cfg.Provider.
// It returns nil without error when extraction is disabled or no API key is available.
func NewGenerator(ctx context.Context, cfg *config.LLMConfig) (TextGenerator, error) {
	provider := strings.ToLower(cfg.Provider)
	if provider == "" || provider == config.ProviderNone {
		return nil, nil
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnv[provider])
	}
	if apiKey == "" {
		return nil, nil
	}

	switch provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, apiKey, cfg.Model, cfg.BaseURL)
	case config.ProviderGroq:
		return NewGroqClient(apiKey, cfg.Model, cfg.BaseURL, cfg.Timeout), nil
	case config.ProviderOpenAI:
		return NewOpenAIClient(apiKey, cfg.Model, cfg.BaseURL), nil
	case config.ProviderAnthropic:
		return NewAnthropicClient(apiKey, cfg.Model, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
