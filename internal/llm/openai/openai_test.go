package openai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/kdduha/image-text-extractor/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "ABC123"}
  }]
}`

var testCfg = config.ModelConfig{
	Provider:  config.ProviderOpenAI,
	ID:        "gpt-4o",
	MaxTokens: 4096,
}

func newTestClient(srv *httptest.Server) *Client {
	return New(testCfg, config.OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
}

func TestGenerate_Success(t *testing.T) {
	var sent map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, sonic.Unmarshal(body, &sent))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody)
	}))
	defer srv.Close()

	text, err := newTestClient(srv).Generate(context.Background(), "extract\nAAAA")
	require.NoError(t, err)
	assert.Equal(t, "ABC123", text)

	assert.Equal(t, "gpt-4o", sent["model"])
	assert.EqualValues(t, 4096, sent["max_completion_tokens"])
	assert.EqualValues(t, 0, sent["temperature"])
	assert.NotContains(t, sent, "stop")

	messages := sent["messages"].([]any)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "extract\nAAAA", msg["content"])
}

func TestGenerate_ServerErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":{"message":"upstream timeout","type":"server_error"}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAI client error")
	assert.EqualValues(t, 1, calls.Load())
}

func TestGenerate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","created":0,"model":"gpt-4o","choices":[]}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestBuildParams_StopSequences(t *testing.T) {
	cfg := testCfg
	cfg.StopSequences = []string{"END"}
	c := &Client{cfg: cfg}

	params := c.buildParams("p")
	assert.Equal(t, []string{"END"}, params.Stop.OfStringArray)
}

func TestGenerate_EmptyContentIsEmptySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","created":0,"model":"gpt-4o","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":""}}]}`)
	}))
	defer srv.Close()

	text, err := newTestClient(srv).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Empty(t, text)
}
