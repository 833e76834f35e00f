package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"signquiz-backend/internal/models"
	"signquiz-backend/internal/quiz"
)

// QuizService drives quiz sessions on behalf of a user. Every call checks
// that the session belongs to the caller; foreign sessions look missing.
type QuizService struct {
	bank       *QuestionBank
	sessions   SessionStore
	progress   *ProgressStore
	autoRecord bool
	now        func() time.Time
}

func NewQuizService(bank *QuestionBank, sessions SessionStore, progress *ProgressStore, autoRecord bool) *QuizService {
	return &QuizService{
		bank:       bank,
		sessions:   sessions,
		progress:   progress,
		autoRecord: autoRecord,
		now:        time.Now,
	}
}

// Start loads the category's questions and opens a new session. The boolean
// reports whether fallback questions were used. If ctx ends while questions
// load, the result is discarded.
func (s *QuizService) Start(ctx context.Context, userID, categoryID string) (*quiz.Session, bool, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return nil, false, &ValidationError{Fields: map[string]string{"category_id": "Category is required"}}
	}

	questions, usedFallback := s.bank.ListQuestions(ctx, categoryID)
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	sess, err := quiz.NewSession(userID, categoryID, questions, s.now().UTC())
	if err != nil {
		return nil, usedFallback, err
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, usedFallback, err
	}

	log.Printf("Quiz session %s started for user %s in category %s (%d questions)", sess.ID, userID, categoryID, len(questions))
	return sess, usedFallback, nil
}

func (s *QuizService) Get(ctx context.Context, userID string, id uuid.UUID) (*quiz.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, sessionErr(err)
	}
	if sess.UserID != userID {
		return nil, sessionErr(ErrSessionNotFound)
	}
	return sess, nil
}

func (s *QuizService) Select(ctx context.Context, userID string, id uuid.UUID, answer string) (*quiz.Session, error) {
	return s.update(ctx, userID, id, func(sess *quiz.Session) error {
		return sess.SelectAnswer(answer)
	})
}

func (s *QuizService) Submit(ctx context.Context, userID string, id uuid.UUID) (*quiz.Session, quiz.Feedback, error) {
	var feedback quiz.Feedback
	sess, err := s.update(ctx, userID, id, func(sess *quiz.Session) error {
		fb, err := sess.SubmitAnswer()
		if err != nil {
			return err
		}
		feedback = fb
		return nil
	})
	if err != nil {
		return nil, quiz.Feedback{}, err
	}
	return sess, feedback, nil
}

// Advance moves to the next question. When the session completes and
// automatic recording is on, its answers are queued for the progress log.
func (s *QuizService) Advance(ctx context.Context, userID string, id uuid.UUID) (*quiz.Session, error) {
	var events []models.AnswerEvent
	sess, err := s.update(ctx, userID, id, func(sess *quiz.Session) error {
		if err := sess.Advance(); err != nil {
			return err
		}
		if s.autoRecord && sess.IsComplete() {
			evs, err := sess.RecordCompletion(userID, s.now().UTC())
			if err != nil {
				return err
			}
			events = evs
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if events != nil {
		if _, err := s.enqueue(ctx, sess, events); err != nil {
			log.Printf("Failed to record completion of session %s: %v", sess.ID, err)
		}
	}
	return sess, nil
}

func (s *QuizService) Summary(ctx context.Context, userID string, id uuid.UUID) (models.QuizSummary, error) {
	sess, err := s.Get(ctx, userID, id)
	if err != nil {
		return models.QuizSummary{}, err
	}
	return sess.Summary()
}

// RecordCompletion queues the answers of a completed session for the
// progress log. It succeeds at most once per session.
func (s *QuizService) RecordCompletion(ctx context.Context, userID string, id uuid.UUID) (uuid.UUID, []models.AnswerEvent, error) {
	var events []models.AnswerEvent
	sess, err := s.update(ctx, userID, id, func(sess *quiz.Session) error {
		evs, err := sess.RecordCompletion(userID, s.now().UTC())
		if err != nil {
			return err
		}
		events = evs
		return nil
	})
	if err != nil {
		return uuid.Nil, nil, err
	}

	jobID, err := s.enqueue(ctx, sess, events)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return jobID, events, nil
}

// Discard drops the session. Pending work on it fails with not found.
func (s *QuizService) Discard(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return sessionErr(err)
	}
	log.Printf("Quiz session %s discarded by user %s", id, userID)
	return nil
}

func (s *QuizService) update(ctx context.Context, userID string, id uuid.UUID, fn func(*quiz.Session) error) (*quiz.Session, error) {
	sess, err := s.sessions.Update(ctx, id, func(sess *quiz.Session) error {
		if sess.UserID != userID {
			return ErrSessionNotFound
		}
		return fn(sess)
	})
	if err != nil {
		return nil, sessionErr(err)
	}
	return sess, nil
}

// enqueue hands the events to the progress store. On failure the session is
// marked unrecorded again so the caller can retry.
func (s *QuizService) enqueue(ctx context.Context, sess *quiz.Session, events []models.AnswerEvent) (uuid.UUID, error) {
	jobID, err := s.progress.Append(ctx, sess, events)
	if err == nil {
		return jobID, nil
	}

	_, rerr := s.sessions.Update(ctx, sess.ID, func(stored *quiz.Session) error {
		stored.Recorded = false
		return nil
	})
	if rerr != nil && !errors.Is(rerr, ErrSessionNotFound) {
		log.Printf("Failed to reset recorded flag on session %s: %v", sess.ID, rerr)
	}
	return uuid.Nil, err
}

func sessionErr(err error) error {
	if errors.Is(err, ErrSessionNotFound) {
		return &NotFoundError{Message: "Quiz session not found"}
	}
	return err
}
