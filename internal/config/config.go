package config

import (
	"strings"
	"time"
)

// Provider names accepted for AIProvider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds runtime settings for the MindEase CLI.
type Config struct {
	// AI
	AIProvider     string
	AIAPIKey       string
	PrimaryModel   string
	SecondaryModel string
	AIBaseURL      string

	// Storage
	DatabaseDSN string
	LocalDBPath string

	// Budgets
	AnalysisTimeout     time.Duration
	SaveWatchdog        time.Duration
	SessionInitTimeout  time.Duration
	OnlineCheckInterval time.Duration

	// Identity
	JWTSecret   string
	AccessToken string

	LogFormat string
}

// LoadDefaults populates c with defaults matching the hosted deployment.
func (c *Config) LoadDefaults() {
	c.AIProvider = ProviderGemini
	c.PrimaryModel = "gemini-1.5-flash"
	c.SecondaryModel = "gemini-pro"
	c.AIBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	c.LocalDBPath = "mindease.db"
	c.AnalysisTimeout = 4 * time.Second
	c.SaveWatchdog = 8 * time.Second
	c.SessionInitTimeout = 3 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.LogFormat = "text"
}

// AIEnabled reports whether a remote AI credential is configured.
func (c *Config) AIEnabled() bool {
	return c.AIAPIKey != ""
}

// LoadConfig applies defaults, then JSON (if -c/-config is given), then the
// environment, then command-line flags. Later sources win.
func LoadConfig(args []string, getenv func(string) string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, getenv)
	parseFlags(cfg, args)
	cfg.applyProviderDefaults()
	return cfg
}

// applyProviderDefaults swaps the Gemini model defaults for OpenAI ones
// when the provider was switched without naming models.
func (c *Config) applyProviderDefaults() {
	if c.AIProvider != ProviderOpenAI {
		return
	}
	if strings.HasPrefix(c.PrimaryModel, "gemini") {
		c.PrimaryModel = "gpt-4o-mini"
	}
	if strings.HasPrefix(c.SecondaryModel, "gemini") {
		c.SecondaryModel = "gpt-4o-mini"
	}
}
