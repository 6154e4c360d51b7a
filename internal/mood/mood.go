// Package mood records quick mood check-ins and builds the weekly trend.
package mood

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/mindease/internal/logging"
	"github.com/dmitrijs2005/mindease/internal/models"
)

const (
	// MinNoteLength is the note length above which a check-in is analysed.
	MinNoteLength = 10
	// TrendSize is the number of points in a trend.
	TrendSize = 7
)

var (
	ErrInvalidLevel = errors.New("mood level must be between 1 and 5")
	ErrNoCloud      = errors.New("mood log needs a signed-in user and a cloud store")
)

type Analyzer interface {
	Analyze(ctx context.Context, text string) *models.Analysis
}

type Logs interface {
	Insert(ctx context.Context, m models.MoodLog) (*models.MoodLog, error)
}

type Levels interface {
	RecentMoodLevels(ctx context.Context, userID string, limit int) ([]models.TrendPoint, error)
}

type Service struct {
	analyzer Analyzer
	logs     Logs
	levels   Levels
	log      logging.Logger
	loc      *time.Location
}

// NewService wires the service. logs and levels may be nil when there is no
// cloud store; every call then returns ErrNoCloud.
func NewService(analyzer Analyzer, logs Logs, levels Levels, log logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{analyzer: analyzer, logs: logs, levels: levels, log: log.With("module", "mood"), loc: time.Local}
}

// Log stores a check-in. The returned insight is nil unless the note was long
// enough to analyse.
func (s *Service) Log(ctx context.Context, userID string, level int, note string) (*models.MoodLog, *models.Analysis, error) {
	if !models.ValidMoodLevel(level) {
		return nil, nil, ErrInvalidLevel
	}
	if userID == "" || s.logs == nil {
		return nil, nil, ErrNoCloud
	}

	m := models.MoodLog{UserID: userID, MoodLevel: level, Note: note}

	var insight *models.Analysis
	if len(note) > MinNoteLength && s.analyzer != nil {
		insight = s.analyzer.Analyze(ctx, note)
	}
	if insight != nil {
		if insight.SentimentScore != 0 {
			score := insight.SentimentScore
			m.SentimentScore = &score
		}
		m.AITags = slices.Clone(insight.Emotions)
		m.AIResponse = insight.Response
	}

	saved, err := s.logs.Insert(ctx, m)
	if err != nil {
		s.log.Error(ctx, "mood insert failed", "user_id", userID, "error", err)
		return nil, insight, fmt.Errorf("save mood: %w", err)
	}
	return saved, insight, nil
}

// Trend returns the latest TrendSize journal mood levels, oldest first, each
// labelled with its short weekday name.
func (s *Service) Trend(ctx context.Context, userID string) ([]models.TrendPoint, error) {
	if userID == "" || s.levels == nil {
		return nil, ErrNoCloud
	}
	points, err := s.levels.RecentMoodLevels(ctx, userID, TrendSize)
	if err != nil {
		return nil, fmt.Errorf("load trend: %w", err)
	}
	out := make([]models.TrendPoint, 0, len(points))
	for _, p := range slices.Backward(points) {
		p.Day = p.CreatedAt.In(s.loc).Format("Mon")
		out = append(out, p)
	}
	return out, nil
}

// Sparkline renders points as a row of block glyphs, one per level.
func Sparkline(points []models.TrendPoint) string {
	const glyphs = "▁▂▄▆█"
	bars := []rune(glyphs)
	var b strings.Builder
	for _, p := range points {
		lvl := min(max(p.MoodLevel, 1), len(bars))
		b.WriteRune(bars[lvl-1])
	}
	return b.String()
}
