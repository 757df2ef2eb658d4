package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultGroqBaseURL = "https://api.groq.com"
	defaultGroqModel   = "llama-3.3-70b-versatile"
)

// GroqClient is a minimal client for Groq's OpenAI-compatible chat completions API
type GroqClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGroqClient creates a Groq client
func NewGroqClient(apiKey, model, baseURL string, timeout time.Duration) *GroqClient {
	if model == "" {
		model = defaultGroqModel
	}
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &GroqClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// ChatMessage is one entry of a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat asks the model for a JSON object reply
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string          `json:"model,omitempty"`
	Messages       []ChatMessage   `json:"messages,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Name identifies the provider in logs
func (g *GroqClient) Name() string {
	return "groq"
}

// Generate sends the prompt and returns the assistant content
func (g *GroqClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model:          g.model,
		Messages:       []ChatMessage{{Role: "user", Content: prompt}},
		Temperature:    0.2,
		MaxTokens:      2048,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("groq returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("failed to decode groq response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return cr.Choices[0].Message.Content, nil
}
