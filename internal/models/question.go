package models

import "time"

type Question struct {
	ID            string         `json:"id" yaml:"id"`
	CategoryID    string         `json:"category_id" yaml:"category_id"`
	Text          string         `json:"question_text" yaml:"text"`
	Media         Media          `json:"media" yaml:"media"`
	CorrectAnswer string         `json:"correct_answer" yaml:"correct_answer"`
	Options       []AnswerOption `json:"answer_options" yaml:"options"`
	CreatedAt     time.Time      `json:"created_at" yaml:"-"`
}

type AnswerOption struct {
	ID         string    `json:"id" yaml:"id"`
	QuestionID string    `json:"question_id" yaml:"-"`
	OptionText string    `json:"option_text" yaml:"text"`
	Media      Media     `json:"media" yaml:"media"`
	CreatedAt  time.Time `json:"created_at" yaml:"-"`
}

// PublicQuestion is a question as shown to a learner before answering: the
// correct answer is withheld.
type PublicQuestion struct {
	ID         string         `json:"id"`
	CategoryID string         `json:"category_id"`
	Text       string         `json:"question_text"`
	Media      Media          `json:"media"`
	Options    []AnswerOption `json:"answer_options"`
}

func (q Question) Public() PublicQuestion {
	options := q.Options
	if options == nil {
		options = []AnswerOption{}
	}
	return PublicQuestion{
		ID:         q.ID,
		CategoryID: q.CategoryID,
		Text:       q.Text,
		Media:      q.Media,
		Options:    options,
	}
}
