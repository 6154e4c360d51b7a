package models

import (
	"strings"
	"time"
)

// LocalIDPrefix marks entries created while the cloud store was unreachable.
const LocalIDPrefix = "local-"

// Mood levels run from MinMoodLevel to MaxMoodLevel inclusive.
const (
	MinMoodLevel = 1
	MaxMoodLevel = 5
)

// ValidMoodLevel reports whether n is on the mood scale.
func ValidMoodLevel(n int) bool {
	return n >= MinMoodLevel && n <= MaxMoodLevel
}

// JournalEntry is a saved reflection. The JSON form is the device-store
// wire format and uses the same snake_case keys as the cloud table.
type JournalEntry struct {
	ID             string    `json:"id"`
	UserID         *string   `json:"user_id"`
	Content        string    `json:"content"`
	MoodLevel      *int      `json:"mood_level"`
	IsAIEnabled    bool      `json:"is_ai_enabled"`
	SentimentScore float64   `json:"sentiment_score"`
	MoodTags       []string  `json:"mood_tags"`
	AISummary      string    `json:"ai_summary"`
	CreatedAt      time.Time `json:"created_at"`
	IsLocal        bool      `json:"is_local,omitempty"`
}

// JournalDraft is the caller's input to a save.
type JournalDraft struct {
	UserID      *string
	Content     string
	MoodLevel   *int
	IsAIEnabled bool
}

// Empty reports a draft with neither text nor a mood level.
func (d JournalDraft) Empty() bool {
	return strings.TrimSpace(d.Content) == "" && d.MoodLevel == nil
}

// Enrich copies analysis results into the entry. A nil analysis leaves the
// zero enrichment in place.
func (e *JournalEntry) Enrich(a *Analysis) {
	if a == nil {
		return
	}
	e.SentimentScore = a.SentimentScore
	e.MoodTags = append([]string(nil), a.Emotions...)
	e.AISummary = a.Response
}
