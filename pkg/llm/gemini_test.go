package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGeminiServer returns a test server and a Gemini client pointed at it.
func newGeminiServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Gemini) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewGemini("test-key", WithBaseURL(server.URL))
	return server, client
}

// successBody builds a minimal generateContent response.
func successBody(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
		"usageMetadata": map[string]any{
			"promptTokenCount":     10,
			"candidatesTokenCount": 20,
			"totalTokenCount":      30,
		},
		"modelVersion": "gemini-2.0-flash-001",
	}
}

func TestGemini_Defaults(t *testing.T) {
	g := NewGemini("key")
	assert.Equal(t, "gemini-2.0-flash", g.Model())

	g = NewGemini("key", WithModel("gemini-2.0-pro"))
	assert.Equal(t, "gemini-2.0-pro", g.Model())
}

func TestGemini_Generate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	_, client := newGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(successBody("generated text"))
	})

	resp, err := client.Generate(context.Background(), Request{
		System: "you are concise",
		Prompt: "say hi",
	})
	require.NoError(t, err)

	assert.Equal(t, "generated text", resp.Text)
	assert.Equal(t, "gemini-2.0-flash-001", resp.Model)
	assert.Equal(t, 10, resp.Usage.InputTokens)
	assert.Equal(t, 20, resp.Usage.OutputTokens)
	assert.Equal(t, 30, resp.Usage.TotalTokens)

	assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.NotNil(t, gotBody.SystemInstruction)
	assert.Equal(t, "you are concise", gotBody.SystemInstruction.Parts[0].Text)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "say hi", gotBody.Contents[0].Parts[0].Text)
	assert.Equal(t, defaultTemperature, gotBody.GenerationConfig.Temperature)
	assert.Equal(t, defaultMaxOutputTokens, gotBody.GenerationConfig.MaxOutputTokens)
}

func TestGemini_Generate_RequestOverrides(t *testing.T) {
	var gotBody geminiRequest

	_, client := newGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(successBody("ok"))
	})

	_, err := client.Generate(context.Background(), Request{
		Prompt:          "hi",
		Temperature:     0.9,
		MaxOutputTokens: 100,
	})
	require.NoError(t, err)

	assert.Nil(t, gotBody.SystemInstruction)
	assert.Equal(t, 0.9, gotBody.GenerationConfig.Temperature)
	assert.Equal(t, 100, gotBody.GenerationConfig.MaxOutputTokens)
}

func TestGemini_Generate_MultiPartText(t *testing.T) {
	_, client := newGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		body := successBody("")
		body["candidates"] = []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]any{{"text": "part one "}, {"text": "part two"}},
				},
			},
		}
		json.NewEncoder(w).Encode(body)
	})

	resp, err := client.Generate(context.Background(), Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "part one part two", resp.Text)
}

func TestGemini_Generate_EmptyResponse(t *testing.T) {
	_, client := newGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	_, err := client.Generate(context.Background(), Request{Prompt: "hi"})
	require.Error(t, err)

	var llmErr *Error
	require.ErrorAs(t, err, &llmErr)
	assert.False(t, llmErr.Retryable)
	assert.Contains(t, llmErr.Error(), "no text")
}

func TestGemini_Generate_HTTPErrors(t *testing.T) {
	testCases := []struct {
		status    int
		retryable bool
	}{
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusServiceUnavailable, true},
	}

	for _, tc := range testCases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			_, client := newGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"error": "nope"}`))
			})

			_, err := client.Generate(context.Background(), Request{Prompt: "hi"})
			require.Error(t, err)

			var llmErr *Error
			require.ErrorAs(t, err, &llmErr)
			assert.Equal(t, tc.retryable, llmErr.Retryable)
		})
	}
}

func TestGemini_Generate_NetworkErrorIsRetryable(t *testing.T) {
	server, client := newGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.Generate(context.Background(), Request{Prompt: "hi"})
	require.Error(t, err)

	var llmErr *Error
	require.ErrorAs(t, err, &llmErr)
	assert.True(t, llmErr.Retryable)
}

func TestGemini_Generate_ContextCancelled(t *testing.T) {
	_, client := newGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(successBody("too late"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, Request{Prompt: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUsage_Add(t *testing.T) {
	u := Usage{InputTokens: 1, OutputTokens: 2, TotalTokens: 3}
	u.Add(Usage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30})

	assert.Equal(t, Usage{InputTokens: 11, OutputTokens: 22, TotalTokens: 33}, u)
}
