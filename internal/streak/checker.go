package streak

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mindease/internal/logging"
	"github.com/dmitrijs2005/mindease/internal/models"
)

// Writer persists a streak change.
type Writer interface {
	UpdateStreak(ctx context.Context, userID string, count int, lastCheckIn time.Time) error
}

// Checker runs Next once per session and persists the result.
type Checker struct {
	w   Writer
	log logging.Logger
	now func() time.Time
	loc *time.Location
}

func NewChecker(w Writer, log logging.Logger) *Checker {
	if log == nil {
		log = logging.Nop()
	}
	return &Checker{w: w, log: log.With("module", "streak"), now: time.Now, loc: time.Local}
}

// WithClock returns a copy of c that reads time from now in loc.
func (c *Checker) WithClock(now func() time.Time, loc *time.Location) *Checker {
	cc := *c
	cc.now = now
	cc.loc = loc
	return &cc
}

// Check applies the transition. The updated profile is returned even when
// the write fails; the failure is only logged.
func (c *Checker) Check(ctx context.Context, p models.UserProfile) (models.UserProfile, State) {
	next, state := Next(p, c.now(), c.loc)
	if !state.Mutates() {
		return next, state
	}
	if c.w != nil {
		if err := c.w.UpdateStreak(ctx, next.ID, next.StreakCount, *next.LastCheckIn); err != nil {
			c.log.Warn(ctx, "streak update failed", "user_id", next.ID, "error", err)
		}
	}
	c.log.Debug(ctx, "streak checked", "user_id", next.ID, "state", state.String(), "streak", next.StreakCount)
	return next, state
}
