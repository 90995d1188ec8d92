package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/config"
)

func TestNewClient_NotConfigured(t *testing.T) {
	c, err := NewClient(context.Background(), config.LLMConfig{Provider: config.ProviderOpenAI}, nil)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), config.LLMConfig{Provider: "mystery", APIKey: "k"}, nil)
	assert.EqualError(t, err, "unsupported llm provider: mystery")
}

func TestNewClient_KnownProviders(t *testing.T) {
	for _, cfg := range []config.LLMConfig{
		{Provider: config.ProviderOpenAI, APIKey: "k", Model: "gpt-4o-mini"},
		{Provider: config.ProviderClaude, APIKey: "k", Model: "claude-3-5-haiku-latest"},
		{Provider: config.ProviderOllama, BaseURL: "http://localhost:11434", Model: "llama3.1"},
	} {
		c, err := NewClient(context.Background(), cfg, zap.NewNop())
		require.NoError(t, err, cfg.Provider)
		require.IsType(t, &instrumented{}, c, cfg.Provider)
		assert.Equal(t, cfg.Provider, c.(*instrumented).provider)
	}
}

func TestInstrumented_WrapsFailures(t *testing.T) {
	mock := &MockClient{Err: errors.New("quota exhausted")}
	c := &instrumented{next: mock, provider: "openai", logger: zap.NewNop()}

	_, err := c.GenerateStructured(context.Background(), "prompt", tagSchema())
	require.Error(t, err)

	e := apperr.From(err)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
	assert.Equal(t, "AI generation failed", e.Message)
	assert.Equal(t, "openai", e.Details)
	assert.ErrorContains(t, err, "quota exhausted")
}

func TestInstrumented_PassesThrough(t *testing.T) {
	mock := &MockClient{Response: "hello"}
	c := &instrumented{next: mock, provider: "claude", logger: zap.NewNop()}

	out, err := c.Generate(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, []string{"say hello"}, mock.Prompts)
}

func chatServer(t *testing.T, content string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body := map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		*seen = body

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIClient_StructuredUsesJSONSchema(t *testing.T) {
	var seen map[string]any
	srv := chatServer(t, `{"tags":[{"name":"go","score":3}]}`, &seen)

	c := NewOpenAIClient("test-key", "gpt-4o-mini", srv.URL)
	raw, err := c.GenerateStructured(context.Background(), "list tags", tagSchema())
	require.NoError(t, err)

	out, err := Decode[tagList](raw, tagSchema())
	require.NoError(t, err)
	require.Len(t, out.Tags, 1)
	assert.Equal(t, "go", out.Tags[0].Name)

	format, ok := seen["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_schema", format["type"])
	assert.Equal(t, "gpt-4o-mini", seen["model"])
}

func TestOpenAIClient_JSONObjectOnlyEmbedsSchema(t *testing.T) {
	var seen map[string]any
	srv := chatServer(t, `{"tags":[]}`, &seen)

	c := NewOpenAIClient("test-key", "llama3.1", srv.URL)
	c.jsonObjectOnly = true
	_, err := c.GenerateStructured(context.Background(), "list tags", tagSchema())
	require.NoError(t, err)

	format := seen["response_format"].(map[string]any)
	assert.Equal(t, "json_object", format["type"])

	messages := seen["messages"].([]any)
	prompt := messages[0].(map[string]any)["content"].(string)
	assert.Contains(t, prompt, "list tags")
	assert.Contains(t, prompt, "Respond ONLY with a JSON object")
	assert.Contains(t, prompt, `"tags"`)
}

func TestOpenAIClient_PlainGenerate(t *testing.T) {
	var seen map[string]any
	srv := chatServer(t, "All good.", &seen)

	c := NewOpenAIClient("test-key", "gpt-4o-mini", srv.URL)
	out, err := c.Generate(context.Background(), "summarize")
	require.NoError(t, err)
	assert.Equal(t, "All good.", out)
	_, hasFormat := seen["response_format"]
	assert.False(t, hasFormat)
}

func TestWithSchemaInstructions(t *testing.T) {
	out := withSchemaInstructions("base prompt", tagSchema())
	assert.Contains(t, out, "base prompt\n\nRespond ONLY with a JSON object")
	assert.Contains(t, out, `"required":["tags"]`)
}
