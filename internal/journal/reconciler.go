// Package journal saves and loads journal entries across the cloud store
// and the device store. A save always lands somewhere when the device store
// is writable; a load merges both sides.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mindease/internal/device"
	"github.com/dmitrijs2005/mindease/internal/logging"
	"github.com/dmitrijs2005/mindease/internal/models"
	"github.com/dmitrijs2005/mindease/internal/race"
)

// DefaultWatchdog bounds Save end to end.
const DefaultWatchdog = 8 * time.Second

// Analyzer enriches entry text. nil means no enrichment.
type Analyzer interface {
	Analyze(ctx context.Context, text string) *models.Analysis
}

// CloudJournal is the cloud side of the journal.
type CloudJournal interface {
	Insert(ctx context.Context, e models.JournalEntry) (*models.JournalEntry, error)
	ListByUser(ctx context.Context, userID string) ([]models.JournalEntry, error)
}

// StatusFunc receives intermediate notices while a save is in flight.
type StatusFunc func(models.Status)

// Destination says where a saved entry ended up.
type Destination string

const (
	DestCloud  Destination = "cloud"
	DestDevice Destination = "device"
)

type SaveResult struct {
	Entry       models.JournalEntry
	Destination Destination
	Status      models.Status
}

type Reconciler struct {
	analyzer Analyzer
	cloud    CloudJournal
	local    device.Store
	log      logging.Logger
	status   StatusFunc
	watchdog time.Duration
	now      func() time.Time

	mu     sync.Mutex
	lastID int64
}

type Option func(*Reconciler)

func WithWatchdog(d time.Duration) Option {
	return func(r *Reconciler) { r.watchdog = d }
}

func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) { r.now = now }
}

func WithStatusFunc(fn StatusFunc) Option {
	return func(r *Reconciler) { r.status = fn }
}

// NewReconciler wires the stores. cloud and analyzer may be nil.
func NewReconciler(analyzer Analyzer, cloud CloudJournal, local device.Store, log logging.Logger, opts ...Option) *Reconciler {
	if log == nil {
		log = logging.Nop()
	}
	r := &Reconciler{
		analyzer: analyzer,
		cloud:    cloud,
		local:    local,
		log:      log.With("module", "journal"),
		watchdog: DefaultWatchdog,
		now:      time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Save validates draft and stores it, preferring the cloud when a user is
// signed in. The returned Status is the final user-facing message; it is
// also set on failures.
func (r *Reconciler) Save(ctx context.Context, draft models.JournalDraft) (SaveResult, error) {
	if draft.Empty() {
		return SaveResult{Status: models.Status{Type: models.StatusError, Text: msgValidation}}, ErrValidation
	}
	if draft.MoodLevel != nil && !models.ValidMoodLevel(*draft.MoodLevel) {
		return SaveResult{Status: models.Status{Type: models.StatusError, Text: msgBadMood}},
			fmt.Errorf("%w: mood level %d", ErrValidation, *draft.MoodLevel)
	}

	// Notices from a save that lost the race are dropped once Save returns.
	g := &noticeGate{fn: r.status}
	res, err := race.Do(ctx, r.watchdog, func(ctx context.Context) (SaveResult, error) {
		return r.save(ctx, draft, g.notify)
	})
	g.close()
	switch {
	case errors.Is(err, race.ErrTimeout):
		r.log.Warn(ctx, "save watchdog fired", "timeout", r.watchdog)
		return SaveResult{Status: models.Status{Type: models.StatusError, Text: msgTimeout}}, ErrTimeout
	case err != nil:
		r.log.Error(ctx, "save failed", "error", err)
		return SaveResult{Status: models.Status{Type: models.StatusError, Text: msgFailed}}, err
	}
	return res, nil
}

func (r *Reconciler) save(ctx context.Context, draft models.JournalDraft, notify StatusFunc) (SaveResult, error) {
	entry := models.JournalEntry{
		UserID:      draft.UserID,
		Content:     draft.Content,
		MoodLevel:   draft.MoodLevel,
		IsAIEnabled: draft.IsAIEnabled,
	}

	if draft.IsAIEnabled && r.analyzer != nil && len(strings.TrimSpace(draft.Content)) > 5 {
		entry.Enrich(r.analyzer.Analyze(ctx, draft.Content))
	}

	if draft.UserID != nil && r.cloud != nil {
		saved, err := r.cloud.Insert(ctx, entry)
		if err == nil {
			text := msgVault
			if draft.IsAIEnabled {
				text = msgAnalyzed
			}
			return SaveResult{
				Entry:       *saved,
				Destination: DestCloud,
				Status:      models.Status{Type: models.StatusSuccess, Text: text},
			}, nil
		}
		r.log.Warn(ctx, "cloud save failed, falling back to device", "error", err)
		notify(models.Status{Type: models.StatusError, Text: msgCloudMiss})
	}

	saved, err := r.prependLocal(ctx, entry)
	if err != nil {
		return SaveResult{}, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return SaveResult{
		Entry:       saved,
		Destination: DestDevice,
		Status:      models.Status{Type: models.StatusSuccess, Text: msgDevice},
	}, nil
}

// noticeGate forwards notices for one Save call until it is closed.
type noticeGate struct {
	mu     sync.Mutex
	fn     StatusFunc
	closed bool
}

func (g *noticeGate) notify(st models.Status) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || g.fn == nil {
		return
	}
	g.fn(st)
}

func (g *noticeGate) close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}

// prependLocal adds e to the front of the device list.
func (r *Reconciler) prependLocal(ctx context.Context, e models.JournalEntry) (models.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.readLocal(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorruptLocalState) {
			return e, err
		}
		r.log.Warn(ctx, "discarding unreadable device journal", "error", err)
		existing = nil
	}

	now := r.now()
	e.ID = r.nextLocalID(now)
	e.CreatedAt = now
	e.IsLocal = true

	list := append([]models.JournalEntry{e}, existing...)
	data, err := json.Marshal(list)
	if err != nil {
		return e, fmt.Errorf("encode device journal: %w", err)
	}
	if err := r.local.Set(ctx, device.KeyOfflineJournal, data); err != nil {
		return e, err
	}
	return e, nil
}

// nextLocalID returns local-<unix ms>, bumped so that two saves within the
// same millisecond still get distinct ids. Callers hold r.mu.
func (r *Reconciler) nextLocalID(now time.Time) string {
	ms := now.UnixMilli()
	if ms <= r.lastID {
		ms = r.lastID + 1
	}
	r.lastID = ms
	return fmt.Sprintf("%s%d", models.LocalIDPrefix, ms)
}

func (r *Reconciler) readLocal(ctx context.Context) ([]models.JournalEntry, error) {
	raw, err := r.local.Get(ctx, device.KeyOfflineJournal)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var list []models.JournalEntry
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptLocalState, err)
	}
	return list, nil
}

// SavedToCloud reports whether the entry landed in the cloud store.
func (r SaveResult) SavedToCloud() bool {
	return r.Destination == DestCloud
}
