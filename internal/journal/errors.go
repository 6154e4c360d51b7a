package journal

import (
	"errors"

	"github.com/dmitrijs2005/mindease/internal/race"
)

var (
	// ErrValidation is returned for a draft with no text and no mood level,
	// or with a mood level off the 1..5 scale.
	ErrValidation = errors.New("journal: nothing to save")
	// ErrTimeout is returned when the save watchdog fires first.
	ErrTimeout = race.ErrTimeout
	// ErrSaveFailed is returned when neither store accepted the entry.
	ErrSaveFailed = errors.New("journal: save failed")
	// ErrCorruptLocalState marks an unreadable device list. It is logged
	// and the list is treated as empty.
	ErrCorruptLocalState = errors.New("journal: corrupt local state")
)

const (
	msgValidation = "Please write something or pick a mood."
	msgBadMood    = "Mood level must be between 1 and 5."
	msgTimeout    = "Operation timed out."
	msgCloudMiss  = "Cloud save failed. Saving locally instead..."
	msgAnalyzed   = "Analyzed & Saved to Cloud! ✨"
	msgVault      = "Saved to Vault 🔒"
	msgDevice     = "Saved to Device (Offline Mode) 💾"
	msgFailed     = "Something went wrong."
)
