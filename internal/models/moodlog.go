package models

import "time"

// MoodLog is a quick mood check-in with an optional note.
type MoodLog struct {
	ID             string
	UserID         string
	MoodLevel      int
	Note           string
	SentimentScore *float64
	AITags         []string
	AIResponse     string
	CreatedAt      time.Time
}

// TrendPoint is one plotted mood level.
type TrendPoint struct {
	Day       string
	MoodLevel int
	CreatedAt time.Time
}
