package game

import (
	"fmt"
	"math/rand/v2"

	"clubcine-quiz/internal/domain"
)

// DefaultQuestionsPerRound is the round size used when none is configured.
const DefaultQuestionsPerRound = 10

// RoundQuestion is a sampled question with its choice order fixed for the round.
type RoundQuestion struct {
	domain.Question
}

// Session is the state of one play-through. It is not safe for concurrent use;
// callers serialize access through a single owner.
type Session struct {
	questions  []RoundQuestion
	selections map[int]int
	phase      domain.Phase
	revealed   bool
	score      int
}

// Start samples a round from questions and shuffles each question's choices once.
func Start(r *rand.Rand, questions []domain.Question, n int) (*Session, error) {
	if len(questions) == 0 {
		return nil, domain.ErrNoQuestions
	}
	sampled := Sample(r, questions, n)
	round := make([]RoundQuestion, len(sampled))
	for i, q := range sampled {
		q.Choices = Shuffle(r, q.Choices)
		round[i] = RoundQuestion{Question: q}
	}
	return &Session{
		questions:  round,
		selections: make(map[int]int),
		phase:      domain.PhaseCollecting,
	}, nil
}

// Questions returns the round questions in position order.
func (s *Session) Questions() []RoundQuestion {
	out := make([]RoundQuestion, len(s.questions))
	copy(out, s.questions)
	return out
}

func (s *Session) Len() int { return len(s.questions) }

func (s *Session) Phase() domain.Phase { return s.phase }

func (s *Session) Revealed() bool { return s.revealed }

// Score is meaningful only once the session is submitted.
func (s *Session) Score() (int, bool) {
	return s.score, s.phase == domain.PhaseSubmitted
}

// Select records choice (an index into the shuffled choices) for position.
// Selections are frozen once the round is submitted.
func (s *Session) Select(position, choice int) error {
	if s.phase == domain.PhaseSubmitted {
		return domain.ErrAlreadySubmitted
	}
	if position < 0 || position >= len(s.questions) {
		return fmt.Errorf("%w: %d", domain.ErrInvalidPosition, position)
	}
	if choice < 0 || choice >= len(s.questions[position].Choices) {
		return fmt.Errorf("%w: %d", domain.ErrInvalidChoice, choice)
	}
	s.selections[position] = choice
	return nil
}

// Submit scores the round. It fails without changing state if any position is unanswered
// or the round was already submitted.
func (s *Session) Submit() (domain.SubmitResult, error) {
	if s.phase == domain.PhaseSubmitted {
		return domain.SubmitResult{}, domain.ErrAlreadySubmitted
	}
	if missing := len(s.questions) - len(s.selections); missing > 0 {
		return domain.SubmitResult{}, fmt.Errorf("%w: %d of %d unanswered", domain.ErrIncompleteAnswers, missing, len(s.questions))
	}

	result := domain.SubmitResult{Total: len(s.questions), Correct: make([]bool, len(s.questions))}
	for i := range s.questions {
		if s.isCorrect(i) {
			result.Correct[i] = true
			result.Score++
		}
	}
	s.score = result.Score
	s.phase = domain.PhaseSubmitted
	return result, nil
}

// ToggleReveal flips display of correct answers and returns the new value.
func (s *Session) ToggleReveal() (bool, error) {
	if s.phase != domain.PhaseSubmitted {
		return s.revealed, domain.ErrNotYetSubmitted
	}
	s.revealed = !s.revealed
	return s.revealed, nil
}

// Outcome projects the selection and correctness of one position. IsCorrect stays false
// until the round is submitted.
func (s *Session) Outcome(position int) (domain.Outcome, error) {
	if position < 0 || position >= len(s.questions) {
		return domain.Outcome{}, fmt.Errorf("%w: %d", domain.ErrInvalidPosition, position)
	}
	q := s.questions[position]
	out := domain.Outcome{CorrectAnswer: q.Answer}
	if choice, ok := s.selections[position]; ok {
		c := choice
		out.Selected = &c
		out.SelectedText = q.Choices[choice]
		out.IsCorrect = s.phase == domain.PhaseSubmitted && s.isCorrect(position)
	}
	return out, nil
}

// Marks returns per-choice styling flags for position. A selected choice is marked correct
// or incorrect after submission; every choice matching the answer is marked correct while
// answers are revealed.
func (s *Session) Marks(position int) ([]domain.ChoiceMark, error) {
	if position < 0 || position >= len(s.questions) {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidPosition, position)
	}
	q := s.questions[position]
	selected, answered := s.selections[position]
	submitted := s.phase == domain.PhaseSubmitted

	marks := make([]domain.ChoiceMark, len(q.Choices))
	for i, text := range q.Choices {
		isAnswer := text == q.Answer
		isSelected := answered && selected == i
		m := domain.ChoiceMark{Text: text, Selected: isSelected}
		if submitted && isSelected {
			m.Correct = isAnswer
			m.Incorrect = !isAnswer
		}
		if submitted && s.revealed && isAnswer {
			m.Correct = true
		}
		marks[i] = m
	}
	return marks, nil
}

// View renders the whole session for the presentation layer.
func (s *Session) View(sessionID string) domain.RoundView {
	view := domain.RoundView{
		SessionID: sessionID,
		Phase:     s.phase,
		Revealed:  s.revealed,
		Total:     len(s.questions),
		Questions: make([]domain.QuestionView, len(s.questions)),
	}
	if score, ok := s.Score(); ok {
		view.Score = &score
	}
	for i, q := range s.questions {
		marks, _ := s.Marks(i)
		view.Questions[i] = domain.QuestionView{
			Position: i,
			Kind:     q.Kind,
			Label:    q.Kind.Label(),
			Prompt:   q.Prompt,
			MediaRef: q.MediaRef(),
			Choices:  marks,
		}
	}
	return view
}

func (s *Session) isCorrect(position int) bool {
	choice, ok := s.selections[position]
	if !ok {
		return false
	}
	q := s.questions[position]
	return q.Choices[choice] == q.Answer
}
