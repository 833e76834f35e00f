package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"signquiz-backend/internal/models"
)

type QuestionRepo struct {
	pool *pgxpool.Pool
}

func NewQuestionRepo(pool *pgxpool.Pool) *QuestionRepo {
	return &QuestionRepo{pool: pool}
}

// ListByCategory returns the category's questions with their answer options
// nested, both in creation order.
func (r *QuestionRepo) ListByCategory(ctx context.Context, categoryID string) ([]models.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, category_id, question_text, media_url, media_type, correct_answer, created_at
		FROM questions
		WHERE category_id = $1
		ORDER BY created_at, id
	`, categoryID)
	if err != nil {
		return nil, err
	}

	questions := []models.Question{}
	byID := make(map[string]int)
	var ids []string
	for rows.Next() {
		var q models.Question
		var mediaURL, mediaType *string
		if err := rows.Scan(&q.ID, &q.CategoryID, &q.Text, &mediaURL, &mediaType, &q.CorrectAnswer, &q.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		q.Media = models.MediaFromColumns(mediaURL, mediaType)
		q.Options = []models.AnswerOption{}
		byID[q.ID] = len(questions)
		ids = append(ids, q.ID)
		questions = append(questions, q)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return questions, nil
	}

	optRows, err := r.pool.Query(ctx, `
		SELECT id, question_id, option_text, media_url, media_type, created_at
		FROM answer_options
		WHERE question_id = ANY($1)
		ORDER BY created_at, id
	`, ids)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		var o models.AnswerOption
		var mediaURL, mediaType *string
		if err := optRows.Scan(&o.ID, &o.QuestionID, &o.OptionText, &mediaURL, &mediaType, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Media = models.MediaFromColumns(mediaURL, mediaType)
		if i, ok := byID[o.QuestionID]; ok {
			questions[i].Options = append(questions[i].Options, o)
		}
	}
	return questions, optRows.Err()
}
