// Package session owns the signed-in user and their profile for the life of
// the process. Nothing else holds identity state.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mindease/internal/device"
	"github.com/dmitrijs2005/mindease/internal/logging"
	"github.com/dmitrijs2005/mindease/internal/models"
	"github.com/dmitrijs2005/mindease/internal/race"
	"github.com/dmitrijs2005/mindease/internal/remote"
	"github.com/dmitrijs2005/mindease/internal/streak"
)

const DefaultInitTimeout = 3 * time.Second

// Verifier maps an access token to a user id.
type Verifier func(token string) (string, error)

type Profiles interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Insert(ctx context.Context, userID string) (*models.UserProfile, error)
	UpsertName(ctx context.Context, userID, name string) error
}

// Eraser removes all cloud data owned by a user.
type Eraser interface {
	DeleteUserData(ctx context.Context, userID string) error
}

// Revoker performs the remote half of a sign-out.
type Revoker interface {
	Revoke(ctx context.Context, token string) error
}

type Deps struct {
	Verify   Verifier
	Profiles Profiles
	Eraser   Eraser
	Revoker  Revoker
	Streak   *streak.Checker
	Device   device.Store
	Log      logging.Logger

	// FallbackToken is tried by Init when the device holds no token.
	FallbackToken string
	InitTimeout   time.Duration
}

type state struct {
	token   string
	profile models.UserProfile
}

type Manager struct {
	d   Deps
	log logging.Logger

	mu  sync.RWMutex
	cur *state

	wg sync.WaitGroup
}

func NewManager(d Deps) *Manager {
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	if d.InitTimeout <= 0 {
		d.InitTimeout = DefaultInitTimeout
	}
	if d.Streak == nil {
		d.Streak = streak.NewChecker(nil, d.Log)
	}
	return &Manager{d: d, log: d.Log.With("module", "session")}
}

// Init restores the remembered session. It gives up after InitTimeout and
// leaves the session unauthenticated; it never fails.
func (m *Manager) Init(ctx context.Context) {
	st, err := race.Do(ctx, m.d.InitTimeout, func(ctx context.Context) (*state, error) {
		token, err := m.rememberedToken(ctx)
		if err != nil || token == "" {
			return nil, err
		}
		return m.establish(ctx, token)
	})
	if err != nil {
		m.log.Warn(ctx, "session restore failed, continuing signed out", "error", err)
		return
	}
	if st != nil {
		m.set(st)
		m.log.Info(ctx, "session restored", "user_id", st.profile.ID)
	}
}

func (m *Manager) rememberedToken(ctx context.Context) (string, error) {
	if m.d.Device != nil {
		raw, err := m.d.Device.Get(ctx, device.KeySessionToken)
		if err != nil {
			return "", err
		}
		if t := strings.TrimSpace(string(raw)); t != "" {
			return t, nil
		}
	}
	return strings.TrimSpace(m.d.FallbackToken), nil
}

// SignIn verifies token, loads or bootstraps the profile and remembers the
// token on the device.
func (m *Manager) SignIn(ctx context.Context, token string) (models.UserProfile, error) {
	token = strings.TrimSpace(token)
	st, err := m.establish(ctx, token)
	if err != nil {
		return models.UserProfile{}, err
	}
	m.set(st)
	if m.d.Device != nil {
		if err := m.d.Device.Set(ctx, device.KeySessionToken, []byte(token)); err != nil {
			m.log.Warn(ctx, "could not remember session token", "error", err)
		}
	}
	m.log.Info(ctx, "signed in", "user_id", st.profile.ID)
	return st.profile, nil
}

// establish builds a session without publishing it.
func (m *Manager) establish(ctx context.Context, token string) (*state, error) {
	if m.d.Verify == nil {
		return nil, errors.New("no token verifier configured")
	}
	userID, err := m.d.Verify(token)
	if err != nil {
		return nil, err
	}
	return &state{token: token, profile: m.loadProfile(ctx, userID, true)}, nil
}

// loadProfile returns the user's profile, bootstrapping a missing row. A
// cloud failure yields a bare profile so the user stays signed in.
func (m *Manager) loadProfile(ctx context.Context, userID string, checkStreak bool) models.UserProfile {
	bare := models.UserProfile{ID: userID}
	if m.d.Profiles == nil {
		return bare
	}

	p, err := m.d.Profiles.Get(ctx, userID)
	switch {
	case errors.Is(err, remote.ErrNotFound):
		created, err := m.d.Profiles.Insert(ctx, userID)
		if err != nil {
			m.log.Warn(ctx, "profile bootstrap failed", "user_id", userID, "error", err)
			return bare
		}
		return *created
	case err != nil:
		m.log.Warn(ctx, "profile fetch failed", "user_id", userID, "error", err)
		return bare
	}

	if checkStreak {
		next, _ := m.d.Streak.Check(ctx, *p)
		return next
	}
	return *p
}

// Refresh reloads the profile without running the streak check.
func (m *Manager) Refresh(ctx context.Context) (models.UserProfile, error) {
	cur := m.get()
	if cur == nil {
		return models.UserProfile{}, ErrNotSignedIn
	}
	p := m.loadProfile(ctx, cur.profile.ID, false)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur == nil || m.cur.profile.ID != p.ID {
		return p, ErrNotSignedIn
	}
	m.cur = &state{token: m.cur.token, profile: p}
	return p, nil
}

// SetName stores the onboarding display name.
func (m *Manager) SetName(ctx context.Context, name string) (models.UserProfile, error) {
	cur := m.get()
	if cur == nil {
		return models.UserProfile{}, ErrNotSignedIn
	}
	if m.d.Profiles == nil {
		return models.UserProfile{}, ErrNoCloud
	}
	if err := m.d.Profiles.UpsertName(ctx, cur.profile.ID, strings.TrimSpace(name)); err != nil {
		return models.UserProfile{}, err
	}
	return m.Refresh(ctx)
}

// Profile returns the current profile, false when signed out.
func (m *Manager) Profile() (models.UserProfile, bool) {
	cur := m.get()
	if cur == nil {
		return models.UserProfile{}, false
	}
	return cur.profile, true
}

// UserID returns nil when signed out.
func (m *Manager) UserID() *string {
	cur := m.get()
	if cur == nil {
		return nil
	}
	id := cur.profile.ID
	return &id
}

// SignOut clears memory and the device store before returning. The remote
// revoke runs in the background; see Wait.
func (m *Manager) SignOut(ctx context.Context) {
	m.mu.Lock()
	prev := m.cur
	m.cur = nil
	m.mu.Unlock()

	if m.d.Device != nil {
		if err := m.d.Device.Clear(ctx); err != nil {
			m.log.Error(ctx, "device wipe failed", "error", err)
		}
	}
	if prev == nil || m.d.Revoker == nil {
		return
	}

	m.wg.Add(1)
	go func(ctx context.Context, token string) {
		defer m.wg.Done()
		if err := m.d.Revoker.Revoke(ctx, token); err != nil {
			m.log.Warn(ctx, "remote sign-out failed", "error", err)
		}
	}(context.WithoutCancel(ctx), prev.token)
}

// DeleteAccount erases the user's cloud data and signs out.
func (m *Manager) DeleteAccount(ctx context.Context) error {
	cur := m.get()
	if cur == nil {
		return ErrNotSignedIn
	}
	if m.d.Eraser == nil {
		return ErrNoCloud
	}
	if err := m.d.Eraser.DeleteUserData(ctx, cur.profile.ID); err != nil {
		return err
	}
	m.log.Info(ctx, "account deleted", "user_id", cur.profile.ID)
	m.SignOut(ctx)
	return nil
}

// Wait blocks until background sign-outs have finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}

func (m *Manager) get() *state {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

func (m *Manager) set(s *state) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = s
}
