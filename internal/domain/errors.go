package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoQuestions is returned when a question source yields an empty set.
	ErrNoQuestions = errors.New("no questions found")
	// ErrIncompleteAnswers is returned when submitting before every position is answered.
	ErrIncompleteAnswers = errors.New("all questions must be answered before submitting")
	// ErrAlreadySubmitted guards against acting on a round that was already submitted.
	ErrAlreadySubmitted = errors.New("round already submitted")
	// ErrNotYetSubmitted guards the reveal toggle before submission.
	ErrNotYetSubmitted = errors.New("round not submitted yet")
	// ErrInvalidPosition indicates a position outside the current round.
	ErrInvalidPosition = errors.New("invalid question position")
	// ErrInvalidChoice indicates a choice index outside the question's choices.
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrSessionNotFound is returned when a game session does not exist.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrInvalidTheme is returned for theme values other than light or dark.
	ErrInvalidTheme = errors.New("invalid theme")
)

// LoadError reports a failed attempt to load the question set.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("unable to load questions from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
