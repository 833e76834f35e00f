package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"signquiz-backend/internal/models"
)

type ProgressRepo struct {
	pool *pgxpool.Pool
}

func NewProgressRepo(pool *pgxpool.Pool) *ProgressRepo {
	return &ProgressRepo{pool: pool}
}

// ListByUser returns the user's answer events in the order they were logged.
func (r *ProgressRepo) ListByUser(ctx context.Context, userID string) ([]models.AnswerEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, question_id, selected_answer, is_correct, completed_at
		FROM user_progress
		WHERE user_id = $1
		ORDER BY seq
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.AnswerEvent{}
	for rows.Next() {
		var e models.AnswerEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.QuestionID, &e.SelectedAnswer, &e.IsCorrect, &e.CompletedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// InsertBatch appends events in one transaction. Events whose id is already
// logged are skipped, so a retried job never duplicates entries.
func (r *ProgressRepo) InsertBatch(ctx context.Context, events []models.AnswerEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin progress insert: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(`
			INSERT INTO user_progress (id, user_id, question_id, selected_answer, is_correct, completed_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, e.ID, e.UserID, e.QuestionID, e.SelectedAnswer, e.IsCorrect, e.CompletedAt)
	}

	results := tx.SendBatch(ctx, batch)
	inserted := 0
	for i := range events {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return 0, fmt.Errorf("failed to insert event %s: %w", events[i].ID, err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit progress insert: %w", err)
	}
	return inserted, nil
}
