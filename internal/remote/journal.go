package remote

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/mindease/internal/dbx"
	"github.com/dmitrijs2005/mindease/internal/models"
)

// JournalRepository stores journal entries in the cloud.
type JournalRepository struct {
	db dbx.DBTX
}

func NewJournalRepository(db dbx.DBTX) *JournalRepository {
	return &JournalRepository{db: db}
}

// Insert stores e and returns it with the store-assigned id and timestamp.
func (r *JournalRepository) Insert(ctx context.Context, e models.JournalEntry) (*models.JournalEntry, error) {
	if e.UserID == nil {
		return nil, fmt.Errorf("insert journal entry: user id is required")
	}
	tags, err := encodeTags(e.MoodTags)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO journal_entries (user_id, content, mood_level, is_ai_enabled, sentiment_score, mood_tags, ai_summary)
		 VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)
		 RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		*e.UserID, e.Content, nullInt(e.MoodLevel), e.IsAIEnabled, e.SentimentScore, tags, e.AISummary,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	e.IsLocal = false
	return &e, nil
}

// ListByUser returns the user's entries, newest first.
func (r *JournalRepository) ListByUser(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	query :=
		`SELECT id, user_id, content, mood_level, is_ai_enabled, sentiment_score, mood_tags, ai_summary, created_at
		 FROM journal_entries
		 WHERE user_id = $1
		 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.JournalEntry
	for rows.Next() {
		var (
			e     models.JournalEntry
			uid   string
			level sql.NullInt64
			tags  []byte
		)
		if err := rows.Scan(&e.ID, &uid, &e.Content, &level, &e.IsAIEnabled, &e.SentimentScore, &tags, &e.AISummary, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.UserID = &uid
		e.MoodLevel = intPtr(level)
		if e.MoodTags, err = decodeTags(tags); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return out, nil
}

// RecentMoodLevels returns up to limit of the newest entries that carry a
// mood level, newest first.
func (r *JournalRepository) RecentMoodLevels(ctx context.Context, userID string, limit int) ([]models.TrendPoint, error) {
	query :=
		`SELECT mood_level, created_at
		 FROM journal_entries
		 WHERE user_id = $1 AND mood_level IS NOT NULL
		 ORDER BY created_at DESC
		 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.TrendPoint
	for rows.Next() {
		var p models.TrendPoint
		if err := rows.Scan(&p.MoodLevel, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan mood level: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mood levels: %w", err)
	}
	return out, nil
}

func (r *JournalRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func decodeTags(b []byte) ([]string, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal(b, &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return tags, nil
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
