// Package ai wraps the remote generative providers behind a single
// Generator interface. A provider contributes two tiers: a primary SDK call
// with structured output and a lower-level secondary call used once when
// the primary fails.
package ai

import (
	"context"
	"errors"
)

// Format selects the structured output shape requested from the provider.
type Format int

const (
	// FormatChat asks for {"mood": ..., "text": ...}.
	FormatChat Format = iota
	// FormatAnalysis asks for {"sentimentScore": n, "emotions": [...], "response": ...}.
	FormatAnalysis
)

func (f Format) schemaName() string {
	if f == FormatAnalysis {
		return "journal_analysis"
	}
	return "chat_reply"
}

func (f Format) String() string {
	if f == FormatAnalysis {
		return "analysis"
	}
	return "chat"
}

var (
	// ErrTransient wraps network, HTTP status and provider failures.
	ErrTransient = errors.New("ai provider unavailable")
	// ErrMalformedResponse marks output that carries no usable payload.
	ErrMalformedResponse = errors.New("malformed ai response")
	// ErrNoCredential is returned by NewTiers when no API key is configured.
	ErrNoCredential = errors.New("ai credential not configured")
)

// Generator sends one prompt and returns the provider's raw text.
type Generator interface {
	Generate(ctx context.Context, prompt string, format Format) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string, format Format) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string, format Format) (string, error) {
	return f(ctx, prompt, format)
}
