package ai

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mindease/internal/config"
)

// Tiers is the pair of remote generators for one provider.
type Tiers struct {
	Primary   Generator
	Secondary Generator
}

// NewTiers builds the primary and secondary generators for the configured
// provider. It returns ErrNoCredential when no API key is set.
func NewTiers(ctx context.Context, cfg *config.Config) (*Tiers, error) {
	if !cfg.AIEnabled() {
		return nil, ErrNoCredential
	}

	switch cfg.AIProvider {
	case config.ProviderGemini, "":
		primary, err := NewGeminiSDK(ctx, cfg.AIAPIKey, cfg.PrimaryModel, "")
		if err != nil {
			return nil, err
		}
		return &Tiers{
			Primary:   primary,
			Secondary: NewGeminiREST(cfg.AIAPIKey, cfg.SecondaryModel, cfg.AIBaseURL),
		}, nil
	case config.ProviderOpenAI:
		return &Tiers{
			Primary:   NewOpenAIResponses(cfg.AIAPIKey, cfg.PrimaryModel),
			Secondary: NewOpenAIChat(cfg.AIAPIKey, cfg.SecondaryModel),
		}, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AIProvider)
	}
}
