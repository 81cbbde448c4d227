package langchain

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/yamlmend/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "test-model",
  "choices": [
    {"index": 0, "message": {"role": "assistant", "content": "name: foo"}, "finish_reason": "stop"}
  ],
  "usage": {"prompt_tokens": 5, "completion_tokens": 3, "total_tokens": 8}
}`

func testConfig(host string) *ai.Config {
	return ai.NewConfig(
		ai.WithHost(host),
		ai.WithModel("test-model"),
		ai.WithAPIKey("test-key"),
		ai.WithRetries(3, time.Millisecond),
	)
}

func TestNewGenerator_InvalidConfig(t *testing.T) {
	_, err := NewGenerator(ai.NewConfig())
	assert.ErrorIs(t, err, ai.ErrInvalidConfig)

	_, err = NewGenerator(ai.NewConfig(ai.WithProvider("cohere"), ai.WithAPIKey("k")))
	assert.ErrorIs(t, err, ai.ErrUnknownProvider)
}

func TestNewGenerator_Providers(t *testing.T) {
	for _, provider := range []string{ai.ProviderOpenAI, ai.ProviderOllama, ai.ProviderAnthropic} {
		t.Run(provider, func(t *testing.T) {
			cfg := testConfig("http://localhost:1")
			cfg.Provider = provider

			gen, err := newGenerator(cfg)
			require.NoError(t, err)
			assert.Equal(t, "test-model", gen.Model())
		})
	}
}

func TestGenerate_OpenAICompatible(t *testing.T) {
	var gotAuth string
	var gotMessages []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		body, _ := io.ReadAll(r.Body)
		var req struct {
			Messages []map[string]any `json:"messages"`
		}
		_ = json.Unmarshal(body, &req)
		gotMessages = req.Messages

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody)
	}))
	defer server.Close()

	gen, err := NewGenerator(testConfig(server.URL + "/v1"))
	require.NoError(t, err)

	text, err := gen.Generate(t.Context(), "You write YAML.", "users service")
	require.NoError(t, err)
	assert.Equal(t, "name: foo", text)
	assert.Equal(t, "Bearer test-key", gotAuth)
	require.Len(t, gotMessages, 2)
	assert.Equal(t, "system", gotMessages[0]["role"])
	assert.Equal(t, "user", gotMessages[1]["role"])
}

func TestGenerate_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody)
	}))
	defer server.Close()

	gen, err := NewGenerator(testConfig(server.URL + "/v1"))
	require.NoError(t, err)

	text, err := gen.Generate(t.Context(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, "name: foo", text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerate_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":{"message":"unauthorized"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	gen, err := NewGenerator(testConfig(server.URL + "/v1"))
	require.NoError(t, err)

	_, err = gen.Generate(t.Context(), "system", "user")
	assert.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}
