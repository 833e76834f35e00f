package models

import (
	"time"

	"github.com/google/uuid"
)

// AnswerEvent is one entry of the append-only progress log.
type AnswerEvent struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	QuestionID     string    `json:"question_id"`
	SelectedAnswer string    `json:"selected_answer"`
	IsCorrect      bool      `json:"is_correct"`
	CompletedAt    time.Time `json:"completed_at"`
}

// ProgressJob is the queue payload carrying the events of one finished quiz
// session to the recorder workers.
type ProgressJob struct {
	ID         uuid.UUID     `json:"id"`
	UserID     string        `json:"user_id"`
	SessionID  uuid.UUID     `json:"session_id"`
	CategoryID string        `json:"category_id"`
	Events     []AnswerEvent `json:"events"`
	RetryCount int           `json:"retry_count"`
	CreatedAt  time.Time     `json:"created_at"`
}
