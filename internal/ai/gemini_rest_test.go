package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiREST_Generate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody restRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{"parts": []any{
					map[string]any{"text": "```json\n{\"text\":\"ok\","},
					map[string]any{"text": "\"mood\":\"calm\"}\n```"},
				}},
			}},
		})
	}))
	defer srv.Close()

	g := NewGeminiREST("k-1", "gemini-pro", srv.URL+"/")
	out, err := g.Generate(context.Background(), "hello", FormatChat)
	require.NoError(t, err)

	assert.Equal(t, "/models/gemini-pro:generateContent", gotPath)
	assert.Equal(t, "k-1", gotKey)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "hello", gotBody.Contents[0].Parts[0].Text)

	r, err := ParseReply(out)
	require.NoError(t, err)
	assert.Equal(t, "ok", r.Text)
	assert.Equal(t, "calm", string(r.Mood))
}

func TestGeminiREST_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"error":{"code":404}}`, wantErr: ErrTransient},
		{name: "api error in body", status: http.StatusOK, body: `{"error":{"code":429,"message":"quota"}}`, wantErr: ErrTransient},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates":[]}`, wantErr: ErrMalformedResponse},
		{name: "garbage", status: http.StatusOK, body: `<html>`, wantErr: ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewGeminiREST("k", "m", srv.URL).Generate(context.Background(), "p", FormatAnalysis)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGeminiREST_NoKey(t *testing.T) {
	_, err := NewGeminiREST("", "m", "http://127.0.0.1:0").Generate(context.Background(), "p", FormatChat)
	require.ErrorIs(t, err, ErrNoCredential)
}

func TestGeminiREST_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewGeminiREST("k", "m", url).Generate(context.Background(), "p", FormatChat)
	require.ErrorIs(t, err, ErrTransient)
}
