package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/mindease/internal/ai"
	"github.com/dmitrijs2005/mindease/internal/auth"
	"github.com/dmitrijs2005/mindease/internal/config"
	"github.com/dmitrijs2005/mindease/internal/device"
	"github.com/dmitrijs2005/mindease/internal/journal"
	"github.com/dmitrijs2005/mindease/internal/knowledge"
	"github.com/dmitrijs2005/mindease/internal/logging"
	"github.com/dmitrijs2005/mindease/internal/mood"
	"github.com/dmitrijs2005/mindease/internal/pipeline"
	"github.com/dmitrijs2005/mindease/internal/remote"
	"github.com/dmitrijs2005/mindease/internal/session"
	"github.com/dmitrijs2005/mindease/internal/streak"
)

// Build wires every collaborator from cfg. Missing or unreachable backends
// degrade the app instead of failing it: no AI key means offline replies, no
// cloud means device-only storage. The returned func releases resources.
func Build(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, func(), error) {
	engine, err := knowledge.New(nil)
	if err != nil {
		return nil, nil, err
	}

	tiers, err := ai.NewTiers(ctx, cfg)
	switch {
	case errors.Is(err, ai.ErrNoCredential):
		log.Info(ctx, "no AI credential, using the offline companion")
	case err != nil:
		log.Warn(ctx, "AI provider unavailable, using the offline companion", "provider", cfg.AIProvider, "error", err)
		tiers = nil
	}
	pipe := pipeline.New(engine, tiers, log, pipeline.WithAnalysisTimeout(cfg.AnalysisTimeout))

	var closers []func() error

	var local device.Store
	if db, err := device.Open(ctx, cfg.LocalDBPath); err != nil {
		log.Warn(ctx, "device store unavailable, keeping data in memory", "path", cfg.LocalDBPath, "error", err)
		local = device.NewMemoryStore()
	} else {
		local = device.NewSQLiteStore(db)
		closers = append(closers, db.Close)
	}

	var cloud *remote.Store
	if cfg.DatabaseDSN != "" {
		octx, cancel := context.WithTimeout(ctx, cfg.SessionInitTimeout)
		db, err := remote.Open(octx, cfg.DatabaseDSN)
		cancel()
		if err != nil {
			log.Warn(ctx, "cloud store unavailable, running device-only", "error", err)
		} else {
			cloud = remote.NewStore(db)
			closers = append(closers, cloud.Close)
		}
	}

	secret := []byte(cfg.JWTSecret)
	sd := session.Deps{
		Verify:        func(token string) (string, error) { return auth.UserIDFromToken(token, secret) },
		Device:        local,
		Log:           log,
		FallbackToken: cfg.AccessToken,
		InitTimeout:   cfg.SessionInitTimeout,
	}
	var (
		cloudJournal journal.CloudJournal
		moodSvc      *mood.Service
		pinger       Pinger
	)
	if cloud != nil {
		sd.Profiles = cloud.Profiles
		sd.Eraser = cloud
		sd.Streak = streak.NewChecker(cloud.Profiles, log)
		cloudJournal = cloud.Journal
		moodSvc = mood.NewService(pipe, cloud.Moods, cloud.Journal, log)
		pinger = cloud
	} else {
		moodSvc = mood.NewService(pipe, nil, nil, log)
	}
	sess := session.NewManager(sd)

	rec := journal.NewReconciler(pipe, cloudJournal, local, log,
		journal.WithWatchdog(cfg.SaveWatchdog),
		journal.WithStatusFunc(StatusPrinter(os.Stdout)),
	)

	app := NewApp(Deps{
		Session:             sess,
		Responder:           pipe,
		Journal:             rec,
		Mood:                moodSvc,
		Pinger:              pinger,
		Log:                 log,
		OnlineCheckInterval: cfg.OnlineCheckInterval,
	})

	cleanup := func() {
		sess.Wait()
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn(context.Background(), "close failed", "error", err)
			}
		}
	}
	return app, cleanup, nil
}
