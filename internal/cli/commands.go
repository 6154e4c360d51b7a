package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mindease/internal/ai"
	"github.com/dmitrijs2005/mindease/internal/models"
	"github.com/dmitrijs2005/mindease/internal/mood"
)

var errNotLoggedIn = errors.New("please login first")

const resourcesHint = "If you might act on these thoughts, please contact local emergency services or a crisis line right now. You deserve support."

// Login signs in with a pasted access token. A user without a display name
// is asked for one.
func (a *App) Login(ctx context.Context) error {
	token, err := getToken(a.out)
	if err != nil {
		return err
	}
	if token == "" {
		return errors.New("empty token")
	}

	p, err := a.session.SignIn(ctx, token)
	if err != nil {
		a.log.Warn(ctx, "sign in failed", "error", err)
		return fmt.Errorf("login unsuccessful: %w", err)
	}
	a.println(fmt.Sprintf("Login successful. Streak: %d day(s).", p.StreakCount))

	if p.Name == nil || *p.Name == "" {
		return a.Name(ctx)
	}
	return nil
}

// Say sends one chat message and prints the reply.
func (a *App) Say(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		var err error
		text, err = getSimpleText(a.reader, "What's on your mind?", a.out)
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}
	}

	a.mu.Lock()
	history := a.conv.Last(ai.HistoryTurns)
	a.conv.AppendUser(text)
	enabled := a.aiEnabled
	a.mu.Unlock()

	reply := a.responder.Respond(ctx, text, history, enabled)

	a.mu.Lock()
	a.conv.AppendReply(reply)
	a.mu.Unlock()

	a.println(fmt.Sprintf("MindEase (%s): %s", reply.Mood, reply.Text))
	if reply.SuggestResources {
		a.println(resourcesHint)
	}
	return nil
}

// Journal prompts for a mood and an entry and saves it.
func (a *App) Journal(ctx context.Context) error {
	levelText, err := getSimpleText(a.reader, "Mood 1-5 (empty to skip)", a.out)
	if err != nil {
		return err
	}
	level, err := parseLevel(levelText)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Write your entry", a.out)
	if err != nil {
		return err
	}

	a.mu.RLock()
	enabled := a.aiEnabled
	a.mu.RUnlock()

	res, err := a.journal.Save(ctx, models.JournalDraft{
		UserID:      a.session.UserID(),
		Content:     content,
		MoodLevel:   level,
		IsAIEnabled: enabled,
	})
	a.println(formatStatus(res.Status))
	if err != nil {
		return nil
	}
	if res.Entry.AISummary != "" {
		a.println("Insight:", res.Entry.AISummary)
	}
	if len(res.Entry.MoodTags) > 0 {
		a.println("Tags:", strings.Join(res.Entry.MoodTags, ", "))
	}
	return nil
}

// Entries lists the merged journal, newest first.
func (a *App) Entries(ctx context.Context) error {
	res := a.journal.Load(ctx, a.session.UserID())
	if len(res.Entries) == 0 {
		a.println("No entries yet.")
		return nil
	}
	a.println(fmt.Sprintf("%d entries (%s)", len(res.Entries), res.Source))
	for _, e := range res.Entries {
		a.println(formatEntry(e))
	}
	return nil
}

func formatEntry(e models.JournalEntry) string {
	var b strings.Builder
	b.WriteString(e.CreatedAt.Local().Format("2006-01-02 15:04"))
	if e.IsLocal {
		b.WriteString(" [device]")
	}
	if e.MoodLevel != nil {
		fmt.Fprintf(&b, " mood:%d", *e.MoodLevel)
	}
	if len(e.MoodTags) > 0 {
		fmt.Fprintf(&b, " #%s", strings.Join(e.MoodTags, " #"))
	}
	content := strings.ReplaceAll(e.Content, "\n", " ")
	if r := []rune(content); len(r) > 60 {
		content = string(r[:60]) + "…"
	}
	if content != "" {
		b.WriteString(" | ")
		b.WriteString(content)
	}
	return b.String()
}

// Mood logs a quick check-in to the cloud.
func (a *App) Mood(ctx context.Context) error {
	uid := a.session.UserID()
	if uid == nil {
		return errNotLoggedIn
	}
	levelText, err := getSimpleText(a.reader, "How are you feeling? 1 Overwhelmed, 2 Down, 3 Okay, 4 Good, 5 Great", a.out)
	if err != nil {
		return err
	}
	level, err := parseLevel(levelText)
	if err != nil {
		return err
	}
	if level == nil {
		return errBadLevel
	}
	note, err := getSimpleText(a.reader, "Anything to add? (optional)", a.out)
	if err != nil {
		return err
	}

	_, insight, err := a.mood.Log(ctx, *uid, *level, note)
	if err != nil {
		return errors.New("error saving mood")
	}
	a.println("Mood saved.")
	if insight != nil {
		a.println(fmt.Sprintf("Sentiment: %.0f/100  Emotions: %s", insight.SentimentScore, strings.Join(insight.Emotions, ", ")))
		a.println(insight.Response)
	}
	return nil
}

// Trend prints the last mood levels as a sparkline with weekday labels.
func (a *App) Trend(ctx context.Context) error {
	uid := a.session.UserID()
	if uid == nil {
		return errNotLoggedIn
	}
	points, err := a.mood.Trend(ctx, *uid)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		a.println("No mood data yet. Add a mood to a journal entry to see your trend.")
		return nil
	}
	days := make([]string, len(points))
	for i, p := range points {
		days[i] = fmt.Sprintf("%s:%d", p.Day, p.MoodLevel)
	}
	a.println(mood.Sparkline(points))
	a.println(strings.Join(days, " "))
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	p, ok := a.session.Profile()
	if !ok {
		return errNotLoggedIn
	}
	a.println("Name:", p.DisplayName())
	a.println("Streak:", p.StreakCount)
	if p.LastCheckIn != nil {
		a.println("Last check-in:", p.LastCheckIn.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// Name asks for and stores the display name.
func (a *App) Name(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	name, err := getSimpleText(a.reader, "What should we call you?", a.out)
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return nil
	}
	p, err := a.session.SetName(ctx, name)
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("Nice to meet you, %s.", p.DisplayName()))
	return nil
}

func (a *App) SetAI(on bool) error {
	a.mu.Lock()
	a.aiEnabled = on
	a.mu.Unlock()

	if on && !a.responder.RemoteEnabled() {
		a.println("No AI credential configured; replies come from the offline companion.")
		return nil
	}
	if on {
		a.println("AI replies on.")
	} else {
		a.println("AI replies off.")
	}
	return nil
}

// Logout signs out and starts a fresh conversation.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	a.session.SignOut(ctx)

	a.mu.Lock()
	a.conv = models.Conversation{}
	a.conv.AppendReply(models.Reply{Text: greeting, Mood: models.MoodCalm})
	a.mu.Unlock()

	a.println("Signed out. Device data cleared.")
	return nil
}

// Delete removes the account's cloud data after confirmation.
func (a *App) Delete(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	answer, err := getSimpleText(a.reader, "Are you sure you want to delete all your data? This action cannot be undone. Type DELETE to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "DELETE" {
		a.println("Cancelled.")
		return nil
	}
	if err := a.session.DeleteAccount(ctx); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	a.println("All your data has been deleted.")
	return nil
}
