package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAIServer(t *testing.T, path string, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIChat_Generate(t *testing.T) {
	srv := newOpenAIServer(t, "/chat/completions", http.StatusOK, map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o-mini",
		"choices": []any{map[string]any{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": `{"text":"hey","mood":"happy"}`},
		}},
	})

	g := NewOpenAIChat("k", "gpt-4o-mini", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	out, err := g.Generate(context.Background(), "hi", FormatChat)
	require.NoError(t, err)
	assert.Equal(t, `{"text":"hey","mood":"happy"}`, out)
}

func TestOpenAIChat_ServerError(t *testing.T) {
	srv := newOpenAIServer(t, "/chat/completions", http.StatusInternalServerError, map[string]any{
		"error": map[string]any{"message": "boom", "type": "server_error"},
	})

	g := NewOpenAIChat("k", "gpt-4o-mini", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	_, err := g.Generate(context.Background(), "hi", FormatChat)
	require.ErrorIs(t, err, ErrTransient)
}

func TestOpenAIResponses_Generate(t *testing.T) {
	var gotFormat map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &req)
		if text, ok := req["text"].(map[string]any); ok {
			gotFormat, _ = text["format"].(map[string]any)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "resp_1",
			"object": "response",
			"status": "completed",
			"model":  "gpt-4o-mini",
			"output": []any{map[string]any{
				"type":   "message",
				"id":     "msg_1",
				"role":   "assistant",
				"status": "completed",
				"content": []any{map[string]any{
					"type":        "output_text",
					"text":        `{"sentimentScore":61,"emotions":["Hopeful"],"response":"Keep going."}`,
					"annotations": []any{},
				}},
			}},
		})
	}))
	defer srv.Close()

	g := NewOpenAIResponses("k", "gpt-4o-mini", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	out, err := g.Generate(context.Background(), "entry", FormatAnalysis)
	require.NoError(t, err)

	a, err := ParseAnalysis(out, false)
	require.NoError(t, err)
	assert.Equal(t, 61.0, a.SentimentScore)

	require.NotNil(t, gotFormat)
	assert.Equal(t, "json_schema", gotFormat["type"])
	assert.Equal(t, "journal_analysis", gotFormat["name"])
	assert.Equal(t, true, gotFormat["strict"])
}
