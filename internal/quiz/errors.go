package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrNoQuestionsAvailable is returned when a quiz is started over an empty
	// question set. Callers render an empty state instead of a quiz.
	ErrNoQuestionsAvailable = errors.New("no questions available for this category")

	// ErrInvalidTransition is returned for any operation that is not allowed
	// in the session's current state. The session is left untouched.
	ErrInvalidTransition = errors.New("invalid quiz transition")

	ErrNoAnswerSelected = fmt.Errorf("%w: no answer selected", ErrInvalidTransition)

	ErrDuplicateQuestion = errors.New("duplicate question id")
)

func invalidTransition(op string, state State) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, op, state)
}
