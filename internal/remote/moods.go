package remote

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/mindease/internal/dbx"
	"github.com/dmitrijs2005/mindease/internal/models"
)

// MoodRepository stores quick mood check-ins.
type MoodRepository struct {
	db dbx.DBTX
}

func NewMoodRepository(db dbx.DBTX) *MoodRepository {
	return &MoodRepository{db: db}
}

func (r *MoodRepository) Insert(ctx context.Context, m models.MoodLog) (*models.MoodLog, error) {
	tags, err := encodeTags(m.AITags)
	if err != nil {
		return nil, err
	}
	var score sql.NullFloat64
	if m.SentimentScore != nil {
		score = sql.NullFloat64{Float64: *m.SentimentScore, Valid: true}
	}

	query :=
		`INSERT INTO moods (user_id, mood_level, note, sentiment_score, ai_tags, ai_response)
		 VALUES ($1, $2, $3, $4, $5::jsonb, $6)
		 RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		m.UserID, m.MoodLevel, m.Note, score, tags, m.AIResponse,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &m, nil
}

func (r *MoodRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM moods WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
