package quiz

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"signquiz-backend/internal/models"
)

type State string

const (
	StateAwaitingAnswer  State = "awaiting_answer"
	StateAnswerSubmitted State = "answer_submitted"
	StateCompleted       State = "completed"
)

const (
	FeedbackCorrect   = "Correct! Great job!"
	feedbackIncorrect = "Incorrect. The correct answer is: %s"

	RatingExcellent      = "excellent"
	RatingGood           = "good"
	RatingKeepPracticing = "keep_practicing"
)

// Session is one attempt at a category's question sequence.
//
// Answers is the only record of what was answered; the score is always
// derived from it. CurrentIndex equals len(Questions) exactly when the
// session is completed.
type Session struct {
	ID           uuid.UUID         `json:"id"`
	UserID       string            `json:"user_id"`
	CategoryID   string            `json:"category_id"`
	Questions    []models.Question `json:"questions"`
	CurrentIndex int               `json:"current_index"`
	Answers      map[string]string `json:"answers"`
	Selected     *string           `json:"selected,omitempty"`
	State        State             `json:"state"`
	Recorded     bool              `json:"recorded"`
	StartedAt    time.Time         `json:"started_at"`
}

type Feedback struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	Message       string `json:"message"`
}

// Initialize starts a session at the first question.
func Initialize(questions []models.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		if _, ok := seen[q.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateQuestion, q.ID)
		}
		seen[q.ID] = struct{}{}
	}

	qs := make([]models.Question, len(questions))
	copy(qs, questions)

	return &Session{
		Questions: qs,
		Answers:   make(map[string]string, len(qs)),
		State:     StateAwaitingAnswer,
	}, nil
}

// NewSession is Initialize plus the identity of the attempt.
func NewSession(userID, categoryID string, questions []models.Question, now time.Time) (*Session, error) {
	s, err := Initialize(questions)
	if err != nil {
		return nil, err
	}
	s.ID = uuid.New()
	s.UserID = userID
	s.CategoryID = categoryID
	s.StartedAt = now
	return s, nil
}

func (s *Session) CurrentQuestion() (models.Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return models.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// SelectAnswer records a tentative choice for the current question. It may be
// called any number of times before the answer is submitted.
func (s *Session) SelectAnswer(optionText string) error {
	if s.State != StateAwaitingAnswer {
		return invalidTransition("select an answer", s.State)
	}
	if optionText == "" {
		return ErrNoAnswerSelected
	}
	choice := optionText
	s.Selected = &choice
	return nil
}

// SubmitAnswer locks in the tentative choice. Comparison with the correct
// answer is exact: case-sensitive and untrimmed.
func (s *Session) SubmitAnswer() (Feedback, error) {
	if s.State != StateAwaitingAnswer {
		return Feedback{}, invalidTransition("submit an answer", s.State)
	}
	if s.Selected == nil {
		return Feedback{}, ErrNoAnswerSelected
	}

	q := s.Questions[s.CurrentIndex]
	choice := *s.Selected
	isCorrect := choice == q.CorrectAnswer

	if s.Answers == nil {
		s.Answers = make(map[string]string)
	}
	s.Answers[q.ID] = choice
	s.State = StateAnswerSubmitted

	return newFeedback(isCorrect, q.CorrectAnswer), nil
}

// LastFeedback rebuilds the feedback for the answer currently on screen.
func (s *Session) LastFeedback() (Feedback, bool) {
	if s.State != StateAnswerSubmitted {
		return Feedback{}, false
	}
	q := s.Questions[s.CurrentIndex]
	choice, ok := s.Answers[q.ID]
	if !ok {
		return Feedback{}, false
	}
	return newFeedback(choice == q.CorrectAnswer, q.CorrectAnswer), true
}

// Advance moves past a submitted answer, either to the next question or to
// completion.
func (s *Session) Advance() error {
	if s.State != StateAnswerSubmitted {
		return invalidTransition("advance", s.State)
	}

	s.Selected = nil
	if s.CurrentIndex+1 < len(s.Questions) {
		s.CurrentIndex++
		s.State = StateAwaitingAnswer
		return nil
	}

	s.CurrentIndex = len(s.Questions)
	s.State = StateCompleted
	return nil
}

func (s *Session) IsComplete() bool {
	return s.State == StateCompleted
}

// Score counts the questions whose recorded answer matches the correct one.
func (s *Session) Score() int {
	score := 0
	for _, q := range s.Questions {
		if answer, ok := s.Answers[q.ID]; ok && answer == q.CorrectAnswer {
			score++
		}
	}
	return score
}

// Progress is the position bar shown above the current question, in percent.
func (s *Session) Progress() int {
	if s.IsComplete() {
		return 100
	}
	return models.Percentage(s.CurrentIndex+1, len(s.Questions))
}

func (s *Session) Summary() (models.QuizSummary, error) {
	if !s.IsComplete() {
		return models.QuizSummary{}, invalidTransition("summarise", s.State)
	}

	score := s.Score()
	total := len(s.Questions)
	pct := models.Percentage(score, total)
	return models.QuizSummary{
		Score:      score,
		Total:      total,
		Percentage: pct,
		Rating:     Rating(pct),
	}, nil
}

// RecordCompletion turns a completed session into progress log entries, one
// per answered question in question order. Events can be taken only once per
// session.
func (s *Session) RecordCompletion(userID string, now time.Time) ([]models.AnswerEvent, error) {
	if !s.IsComplete() {
		return nil, invalidTransition("record completion", s.State)
	}
	if s.Recorded {
		return nil, invalidTransition("record completion", "already recorded")
	}

	events := make([]models.AnswerEvent, 0, len(s.Answers))
	for _, q := range s.Questions {
		answer, ok := s.Answers[q.ID]
		if !ok {
			continue
		}
		events = append(events, models.AnswerEvent{
			ID:             uuid.NewString(),
			UserID:         userID,
			QuestionID:     q.ID,
			SelectedAnswer: answer,
			IsCorrect:      answer == q.CorrectAnswer,
			CompletedAt:    now,
		})
	}

	s.Recorded = true
	return events, nil
}

func Rating(percentage int) string {
	switch {
	case percentage >= 80:
		return RatingExcellent
	case percentage >= 60:
		return RatingGood
	default:
		return RatingKeepPracticing
	}
}

func newFeedback(isCorrect bool, correctAnswer string) Feedback {
	msg := FeedbackCorrect
	if !isCorrect {
		msg = fmt.Sprintf(feedbackIncorrect, correctAnswer)
	}
	return Feedback{
		IsCorrect:     isCorrect,
		CorrectAnswer: correctAnswer,
		Message:       msg,
	}
}
