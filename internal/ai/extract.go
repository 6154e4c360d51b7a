package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mindease/internal/models"
)

// Defaults applied to partial analysis payloads from the secondary tier.
const (
	DefaultSentiment = 50
	DefaultEmotion   = "Reflective"
	DefaultResponse  = "I hear you."
)

// ExtractJSON returns the first well-formed JSON object embedded in raw.
// Markdown code fences and surrounding prose are skipped.
func ExtractJSON(raw string) (string, bool) {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '{' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(raw[i:]))
		var obj map[string]json.RawMessage
		if err := dec.Decode(&obj); err != nil {
			continue
		}
		end := i + int(dec.InputOffset())
		return strings.TrimSpace(raw[i:end]), true
	}
	return "", false
}

type chatPayload struct {
	Mood string `json:"mood" jsonschema:"enum=happy,enum=sad,enum=anxious,enum=calm,enum=neutral"`
	Text string `json:"text"`
}

type analysisPayload struct {
	SentimentScore *float64 `json:"sentimentScore"`
	Emotions       []string `json:"emotions"`
	Response       string   `json:"response"`
}

// ParseReply turns provider output into a Reply. Text without any JSON
// object is used verbatim with neutral mood; a JSON object without a text
// field, or empty output, is malformed.
func ParseReply(raw string) (models.Reply, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.Reply{}, fmt.Errorf("%w: empty output", ErrMalformedResponse)
	}

	obj, ok := ExtractJSON(raw)
	if !ok {
		return models.Reply{Text: raw, Mood: models.MoodNeutral}, nil
	}

	var p chatPayload
	if err := json.Unmarshal([]byte(obj), &p); err != nil {
		return models.Reply{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if strings.TrimSpace(p.Text) == "" {
		return models.Reply{}, fmt.Errorf("%w: missing text", ErrMalformedResponse)
	}
	return models.Reply{Text: strings.TrimSpace(p.Text), Mood: models.ParseMood(p.Mood)}, nil
}

// ParseAnalysis decodes an analysis payload. With fillDefaults, missing or
// zero fields take DefaultSentiment, DefaultEmotion and DefaultResponse;
// without it they make the payload malformed. Scores are clamped to 0..100.
func ParseAnalysis(raw string, fillDefaults bool) (*models.Analysis, error) {
	obj, ok := ExtractJSON(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no json object", ErrMalformedResponse)
	}

	var p analysisPayload
	dec := json.NewDecoder(bytes.NewReader([]byte(obj)))
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	a := &models.Analysis{Emotions: p.Emotions, Response: strings.TrimSpace(p.Response)}
	if p.SentimentScore != nil {
		a.SentimentScore = clamp(*p.SentimentScore)
	}
	if len(a.Emotions) > 3 {
		a.Emotions = a.Emotions[:3]
	}

	if fillDefaults {
		if a.SentimentScore == 0 {
			a.SentimentScore = DefaultSentiment
		}
		if len(a.Emotions) == 0 {
			a.Emotions = []string{DefaultEmotion}
		}
		if a.Response == "" {
			a.Response = DefaultResponse
		}
		return a, nil
	}

	if p.SentimentScore == nil || a.Response == "" {
		return nil, fmt.Errorf("%w: incomplete analysis", ErrMalformedResponse)
	}
	return a, nil
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
