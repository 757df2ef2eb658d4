package ai

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-haiku-4-5"

// AnthropicClient calls the Messages API through anthropic-sdk-go
type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewAnthropicClient creates an Anthropic client
func NewAnthropicClient(apiKey, model, baseURL string) *AnthropicClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	m := anthropic.Model(defaultAnthropicModel)
	if model != "" {
		m = anthropic.Model(model)
	}

	client := anthropic.NewClient(opts...)
	return &AnthropicClient{
		client: &client,
		model:  m,
	}
}

// Name identifies the provider in logs
func (c *AnthropicClient) Name() string {
	return "anthropic"
}

// Generate sends the prompt and returns the first text block
func (c *AnthropicClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 2048,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}

	return resp.Content[0].Text, nil
}
