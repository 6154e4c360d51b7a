package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/mindease/internal/flagx"
)

// parseFlags populates cfg from the flags this package owns. Other flags on
// the command line are filtered out first with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-p", "-m", "-d", "-l", "-i", "-log"})

	fs := flag.NewFlagSet("mindease", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.AIProvider, "p", cfg.AIProvider, "AI provider (gemini|openai)")
	fs.StringVar(&cfg.PrimaryModel, "m", cfg.PrimaryModel, "primary model")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "cloud database DSN")
	fs.StringVar(&cfg.LocalDBPath, "l", cfg.LocalDBPath, "local database path")
	fs.StringVar(&cfg.LogFormat, "log", cfg.LogFormat, "log format (text|json|zap|zap-dev)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
}
