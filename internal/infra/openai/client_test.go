package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/code-tutor/internal/core/tutor"
)

type chatRequestBody struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newFakeServer(t *testing.T, status int, body string, captured *chatRequestBody, calls *int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-3.5-turbo-0125",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "FUNCTION:\nfunction f() {}\nEXPLANATION:\nDoes nothing."}
  }],
  "usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

func TestNewClient(t *testing.T) {
	tests := []struct {
		name      string
		model     string
		wantModel string
	}{
		{name: "モデル指定あり", model: "gpt-4o-mini", wantModel: "gpt-4o-mini"},
		{name: "モデル未指定はデフォルト", model: "", wantModel: DefaultModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient("test-api-key", tt.model)
			require.NotNil(t, client)
			assert.Equal(t, tt.wantModel, client.model)
			assert.Equal(t, DefaultTimeout, client.timeout)
		})
	}
}

func TestNewClient_WithTimeout(t *testing.T) {
	client := NewClient("test-api-key", "", WithTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, client.timeout)
}

func TestClient_GenerateCompletion(t *testing.T) {
	var captured chatRequestBody
	var calls int32
	srv := newFakeServer(t, http.StatusOK, completionBody, &captured, &calls)

	client := NewClient("test-api-key", "gpt-3.5-turbo", WithBaseURL(srv.URL+"/v1/"))

	resp, err := client.GenerateCompletion(context.Background(), tutor.CompletionRequest{
		SystemPrompt: tutor.SystemPrompt,
		Prompt:       "Create a simple JavaScript function",
		Temperature:  0.7,
		MaxTokens:    300,
	})
	require.NoError(t, err)

	assert.Equal(t, "FUNCTION:\nfunction f() {}\nEXPLANATION:\nDoes nothing.", resp.Content)
	assert.Equal(t, 15, resp.TokensUsed)
	assert.Equal(t, "gpt-3.5-turbo-0125", resp.Model)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "gpt-3.5-turbo", captured.Model)
	assert.InDelta(t, 0.7, captured.Temperature, 1e-9)
	assert.Equal(t, 300, captured.MaxTokens)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, tutor.SystemPrompt, captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "Create a simple JavaScript function", captured.Messages[1].Content)
}

func TestClient_GenerateCompletion_ModelOverride(t *testing.T) {
	var captured chatRequestBody
	var calls int32
	srv := newFakeServer(t, http.StatusOK, completionBody, &captured, &calls)

	client := NewClient("test-api-key", "gpt-3.5-turbo", WithBaseURL(srv.URL+"/v1/"))

	_, err := client.GenerateCompletion(context.Background(), tutor.CompletionRequest{
		Prompt: "hello",
		Model:  "gpt-4o",
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", captured.Model)
	assert.Len(t, captured.Messages, 1)
}

func TestClient_GenerateCompletion_APIErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := newFakeServer(t, http.StatusInternalServerError,
		`{"error": {"message": "upstream exploded", "type": "server_error"}}`, nil, &calls)

	client := NewClient("test-api-key", "", WithBaseURL(srv.URL+"/v1/"))

	_, err := client.GenerateCompletion(context.Background(), tutor.CompletionRequest{Prompt: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_GenerateCompletion_NoChoices(t *testing.T) {
	var calls int32
	srv := newFakeServer(t, http.StatusOK,
		`{"id": "chatcmpl-2", "object": "chat.completion", "created": 1, "model": "gpt-3.5-turbo", "choices": []}`, nil, &calls)

	client := NewClient("test-api-key", "", WithBaseURL(srv.URL+"/v1/"))

	_, err := client.GenerateCompletion(context.Background(), tutor.CompletionRequest{Prompt: "hello"})
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestClient_GenerateCompletion_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL + "/v1/"
	srv.Close()

	client := NewClient("test-api-key", "", WithBaseURL(baseURL), WithTimeout(2*time.Second))

	_, err := client.GenerateCompletion(context.Background(), tutor.CompletionRequest{Prompt: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAI API call failed")
}
