package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiSDK is the primary Gemini tier, backed by the official genai client
// with JSON MIME type and a response schema per Format.
type GeminiSDK struct {
	client *genai.Client
	model  string
}

// NewGeminiSDK creates the client. baseURL is optional and overrides the
// API host, e.g. to point at a proxy.
func NewGeminiSDK(ctx context.Context, apiKey, model, baseURL string) (*GeminiSDK, error) {
	if apiKey == "" {
		return nil, ErrNoCredential
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiSDK{client: client, model: model}, nil
}

func (g *GeminiSDK) Generate(ctx context.Context, prompt string, format Format) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   genaiSchemaFor(format),
	})
	if err != nil {
		return "", fmt.Errorf("%w: gemini sdk: %w", ErrTransient, err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: gemini sdk returned no text", ErrMalformedResponse)
	}
	return text, nil
}
