package models

import "time"

// UserProfile is the per-user row holding the display name and the
// daily check-in streak.
type UserProfile struct {
	ID          string
	Name        *string
	StreakCount int
	LastCheckIn *time.Time
}

// DisplayName falls back to a neutral greeting target when the user has not
// finished onboarding.
func (p UserProfile) DisplayName() string {
	if p.Name == nil || *p.Name == "" {
		return "friend"
	}
	return *p.Name
}
