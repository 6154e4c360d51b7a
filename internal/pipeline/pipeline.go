// Package pipeline produces chat replies and journal analyses through the
// layered fallback: crisis filter, primary remote tier, one secondary remote
// call, then the offline knowledge engine. Callers always get an answer.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/mindease/internal/ai"
	"github.com/dmitrijs2005/mindease/internal/crisis"
	"github.com/dmitrijs2005/mindease/internal/knowledge"
	"github.com/dmitrijs2005/mindease/internal/logging"
	"github.com/dmitrijs2005/mindease/internal/models"
	"github.com/dmitrijs2005/mindease/internal/race"
)

// MinAnalysisLength is the shortest text worth analysing.
const MinAnalysisLength = 5

// DefaultAnalysisTimeout bounds Analyze end to end.
const DefaultAnalysisTimeout = 4 * time.Second

// Pipeline is safe for concurrent use.
type Pipeline struct {
	primary         ai.Generator
	secondary       ai.Generator
	offline         *knowledge.Engine
	log             logging.Logger
	analysisTimeout time.Duration
}

type Option func(*Pipeline)

// WithAnalysisTimeout overrides DefaultAnalysisTimeout.
func WithAnalysisTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.analysisTimeout = d }
}

// New wires the pipeline. tiers may be nil when no AI credential is
// configured; every request then goes straight to the offline engine.
func New(offline *knowledge.Engine, tiers *ai.Tiers, log logging.Logger, opts ...Option) *Pipeline {
	if log == nil {
		log = logging.Nop()
	}
	p := &Pipeline{
		offline:         offline,
		log:             log.With("module", "pipeline"),
		analysisTimeout: DefaultAnalysisTimeout,
	}
	if tiers != nil {
		p.primary = tiers.Primary
		p.secondary = tiers.Secondary
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// RemoteEnabled reports whether a remote tier is wired.
func (p *Pipeline) RemoteEnabled() bool {
	return p.primary != nil
}

// Respond returns a reply for text.
func (p *Pipeline) Respond(ctx context.Context, text string, history []models.ConversationMessage, aiEnabled bool) models.Reply {
	if crisis.Classify(text) {
		p.log.Warn(ctx, "crisis language detected, remote tiers skipped")
		return crisis.Reply()
	}

	if aiEnabled && p.primary != nil {
		reply, err := p.remoteReply(ctx, p.primary, ai.ChatPrompt(text, history))
		if err == nil {
			return reply
		}
		p.log.Warn(ctx, "primary reply failed", "error", err)

		if p.secondary != nil {
			reply, err = p.remoteReply(ctx, p.secondary, ai.SimpleChatPrompt(text))
			if err == nil {
				return reply
			}
			p.log.Warn(ctx, "secondary reply failed", "error", err)
		}
	}

	return p.offline.Match(text)
}

func (p *Pipeline) remoteReply(ctx context.Context, g ai.Generator, prompt string) (models.Reply, error) {
	raw, err := g.Generate(ctx, prompt, ai.FormatChat)
	if err != nil {
		return models.Reply{}, err
	}
	return ai.ParseReply(raw)
}

// OfflineAnalysis is returned when no remote tier produced an analysis.
func OfflineAnalysis() *models.Analysis {
	return &models.Analysis{
		SentimentScore: ai.DefaultSentiment,
		Emotions:       []string{ai.DefaultEmotion},
		Response:       "Thanks for saving this entry. Writing your thoughts down is a powerful step.",
	}
}

// Analyze returns a reading of text, or nil when text is too short or the
// whole chain did not finish within the analysis timeout. The losing
// remote call is left running and its result discarded.
func (p *Pipeline) Analyze(ctx context.Context, text string) *models.Analysis {
	if len(text) < MinAnalysisLength {
		return nil
	}

	a, err := race.Do(ctx, p.analysisTimeout, func(ctx context.Context) (*models.Analysis, error) {
		return p.analyze(ctx, text), nil
	})
	if err != nil {
		if errors.Is(err, race.ErrTimeout) {
			p.log.Warn(ctx, "analysis timed out", "timeout", p.analysisTimeout)
		}
		return nil
	}
	return a
}

func (p *Pipeline) analyze(ctx context.Context, text string) *models.Analysis {
	if p.primary == nil {
		return OfflineAnalysis()
	}

	raw, err := p.primary.Generate(ctx, ai.AnalysisPrompt(text), ai.FormatAnalysis)
	if err == nil {
		var a *models.Analysis
		if a, err = ai.ParseAnalysis(raw, false); err == nil {
			return a
		}
	}
	p.log.Warn(ctx, "primary analysis failed", "error", err)

	if p.secondary != nil {
		raw, err = p.secondary.Generate(ctx, ai.SimpleAnalysisPrompt(text), ai.FormatAnalysis)
		if err == nil {
			var a *models.Analysis
			if a, err = ai.ParseAnalysis(raw, true); err == nil {
				return a
			}
		}
		p.log.Warn(ctx, "secondary analysis failed", "error", err)
	}

	return OfflineAnalysis()
}
