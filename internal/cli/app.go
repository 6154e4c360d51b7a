package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/mindease/internal/journal"
	"github.com/dmitrijs2005/mindease/internal/logging"
	"github.com/dmitrijs2005/mindease/internal/models"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

const greeting = "Hello! I'm MindEase. I'm here to listen. How are you feeling today?"

// Responder produces chat replies.
type Responder interface {
	Respond(ctx context.Context, text string, history []models.ConversationMessage, aiEnabled bool) models.Reply
	RemoteEnabled() bool
}

type Journal interface {
	Save(ctx context.Context, draft models.JournalDraft) (journal.SaveResult, error)
	Load(ctx context.Context, userID *string) journal.LoadResult
}

type MoodService interface {
	Log(ctx context.Context, userID string, level int, note string) (*models.MoodLog, *models.Analysis, error)
	Trend(ctx context.Context, userID string) ([]models.TrendPoint, error)
}

type Session interface {
	Init(ctx context.Context)
	SignIn(ctx context.Context, token string) (models.UserProfile, error)
	SetName(ctx context.Context, name string) (models.UserProfile, error)
	Profile() (models.UserProfile, bool)
	UserID() *string
	SignOut(ctx context.Context)
	DeleteAccount(ctx context.Context) error
}

// Pinger reports cloud reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Session   Session
	Responder Responder
	Journal   Journal
	Mood      MoodService
	Pinger    Pinger
	Log       logging.Logger

	In  io.Reader
	Out io.Writer

	OnlineCheckInterval time.Duration
}

type App struct {
	session   Session
	responder Responder
	journal   Journal
	mood      MoodService
	pinger    Pinger
	log       logging.Logger

	reader *bufio.Reader
	out    io.Writer

	interval time.Duration

	mu        sync.RWMutex
	Mode      Mode
	aiEnabled bool
	conv      models.Conversation
}

func NewApp(d Deps) *App {
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	if d.OnlineCheckInterval <= 0 {
		d.OnlineCheckInterval = 3 * time.Second
	}
	a := &App{
		session:   d.Session,
		responder: d.Responder,
		journal:   d.Journal,
		mood:      d.Mood,
		pinger:    d.Pinger,
		log:       d.Log.With("module", "cli"),
		reader:    bufio.NewReader(d.In),
		out:       d.Out,
		interval:  d.OnlineCheckInterval,
		Mode:      ModeOffline,
		aiEnabled: d.Responder != nil && d.Responder.RemoteEnabled(),
	}
	a.conv.AppendReply(models.Reply{Text: greeting, Mood: models.MoodCalm})
	return a
}

// StatusPrinter returns a sink for in-flight save notices.
func StatusPrinter(w io.Writer) journal.StatusFunc {
	return func(s models.Status) {
		fmt.Fprintln(w, formatStatus(s))
	}
}

func formatStatus(s models.Status) string {
	switch s.Type {
	case models.StatusError:
		return "! " + s.Text
	case models.StatusSuccess:
		return "✓ " + s.Text
	}
	return s.Text
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.Mode
}

func (a *App) isLoggedIn() bool {
	return a.session.UserID() != nil
}

// Run restores the session, starts the connectivity watcher and serves the
// REPL on the configured input until EOF or "exit".
func (a *App) Run(ctx context.Context) {
	a.session.Init(ctx)

	if a.pinger == nil {
		a.setMode(ModeDisabled)
	} else {
		a.checkOnline(ctx)
		go a.StartOnlineStatusWatcher(ctx, a.interval)
	}

	a.println("Welcome to MindEase (type 'help' for commands)")
	if p, ok := a.session.Profile(); ok {
		a.println(fmt.Sprintf("Welcome back, %s. Streak: %d day(s).", p.DisplayName(), p.StreakCount))
	}
	a.println(greeting)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.pinger.Ping(ctx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
}

// StartOnlineStatusWatcher pings the cloud store every interval until ctx is
// done and flips Mode accordingly.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if p, ok := a.session.Profile(); ok {
		s = p.DisplayName() + " "
	}
	s += string(a.mode())
	a.mu.RLock()
	ai := a.aiEnabled
	a.mu.RUnlock()
	if ai {
		s += " ai"
	}
	return fmt.Sprintf("(%s)", s)
}
