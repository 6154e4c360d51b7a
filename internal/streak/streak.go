// Package streak derives the daily check-in counter from the profile's last
// check-in instant.
package streak

import (
	"time"

	"github.com/dmitrijs2005/mindease/internal/models"
)

// State is the outcome of one transition.
type State int

const (
	NoHistory State = iota
	ContinuedToday
	Incremented
	Reset
)

func (s State) String() string {
	switch s {
	case NoHistory:
		return "no_history"
	case ContinuedToday:
		return "continued_today"
	case Incremented:
		return "incremented"
	case Reset:
		return "reset"
	}
	return "unknown"
}

// Mutates reports whether the state changes the stored profile.
func (s State) Mutates() bool {
	return s != ContinuedToday
}

// Next computes the transition for p at now, counting calendar days in loc.
// The returned profile is a copy; p is not modified.
func Next(p models.UserProfile, now time.Time, loc *time.Location) (models.UserProfile, State) {
	if loc == nil {
		loc = time.Local
	}
	if p.LastCheckIn == nil {
		return checkIn(p, 1, now), NoHistory
	}
	switch dayDiff(*p.LastCheckIn, now, loc) {
	case 0:
		return p, ContinuedToday
	case 1:
		return checkIn(p, p.StreakCount+1, now), Incremented
	default:
		return checkIn(p, 1, now), Reset
	}
}

func checkIn(p models.UserProfile, count int, now time.Time) models.UserProfile {
	p.StreakCount = count
	p.LastCheckIn = &now
	return p
}

// dayDiff counts civil days from a to b. Dates are compared as UTC midnights
// so that DST shifts in loc never change the count.
func dayDiff(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
