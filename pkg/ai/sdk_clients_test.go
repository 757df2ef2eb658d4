package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIGenerate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-test", body["model"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-test",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"decisions\":[\"ship\"]}"}}]
		}`))
	}))
	defer ts.Close()

	client := NewOpenAIClient("sk-test", "gpt-test", ts.URL+"/")
	out, err := client.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"decisions":["ship"]}`, out)
}

func TestAnthropicGenerate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"))
		assert.Equal(t, "ak-test", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "{\"risks\":[\"late\"]}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 3, "output_tokens": 5}
		}`))
	}))
	defer ts.Close()

	client := NewAnthropicClient("ak-test", "claude-test", ts.URL)
	out, err := client.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"risks":["late"]}`, out)
}

func TestOpenAIGenerate_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer ts.Close()

	_, err := NewOpenAIClient("sk", "", ts.URL+"/").Generate(context.Background(), "x")
	assert.Error(t, err)
}

func TestGeminiGenerate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent"), r.URL.Path)
		assert.Equal(t, "gk-test", r.Header.Get("X-Goog-Api-Key"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "contents")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"action_items\":[\"Bob: send notes\"]}"}]},
				"finishReason": "STOP"}]
		}`))
	}))
	defer ts.Close()

	client, err := NewGeminiClient(context.Background(), "gk-test", "gemini-test", ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "gemini", client.Name())

	out, err := client.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"action_items":["Bob: send notes"]}`, out)
}

func TestGeminiGenerate_EmptyCandidates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer ts.Close()

	client, err := NewGeminiClient(context.Background(), "gk-test", "", ts.URL)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "hello")
	assert.EqualError(t, err, "empty response from gemini")
}
