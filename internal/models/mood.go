package models

import "strings"

// Mood is the emotional tone attached to replies and knowledge categories.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodAnxious Mood = "anxious"
	MoodCalm    Mood = "calm"
	MoodNeutral Mood = "neutral"
)

// ParseMood maps free-form provider output onto a known Mood. Anything
// unrecognised becomes MoodNeutral.
func ParseMood(s string) Mood {
	switch m := Mood(strings.ToLower(strings.TrimSpace(s))); m {
	case MoodHappy, MoodSad, MoodAnxious, MoodCalm, MoodNeutral:
		return m
	default:
		return MoodNeutral
	}
}
