package app_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"clubcine-quiz/internal/app"
	"clubcine-quiz/internal/domain"
	"clubcine-quiz/internal/infra/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSelectSubmitReveal(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t, singleQuestion())

	view, err := service.Start(ctx, "")
	require.NoError(t, err)
	require.Len(t, view.Questions, 1)
	assert.Equal(t, domain.PhaseCollecting, view.Phase)
	a := choiceIndex(view, 0, "A")

	outcome, err := service.Select(ctx, view.SessionID, 0, a)
	require.NoError(t, err)
	assert.Equal(t, "A", outcome.SelectedText)
	assert.False(t, outcome.IsCorrect, "not scored before submission")

	result, submitted, err := service.Submit(ctx, view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, []bool{true}, result.Correct)
	require.NotNil(t, submitted.Score)
	assert.Equal(t, 1, *submitted.Score)

	outcome, err = service.Outcome(ctx, view.SessionID, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.Outcome{Selected: &a, SelectedText: "A", IsCorrect: true, CorrectAnswer: "A"}, outcome)

	revealed, revealView, err := service.ToggleReveal(ctx, view.SessionID)
	require.NoError(t, err)
	assert.True(t, revealed)
	assert.True(t, revealView.Revealed)
}

func TestWrongAnswerScenario(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t, singleQuestion())

	view, err := service.Start(ctx, "")
	require.NoError(t, err)

	_, err = service.Select(ctx, view.SessionID, 0, choiceIndex(view, 0, "B"))
	require.NoError(t, err)
	result, _, err := service.Submit(ctx, view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)

	revealed, _, err := service.ToggleReveal(ctx, view.SessionID)
	require.NoError(t, err)
	assert.True(t, revealed)
}

func TestGuardsSurfaceAsErrors(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t, manyQuestions(3))

	view, err := service.Start(ctx, "")
	require.NoError(t, err)

	_, _, err = service.Submit(ctx, view.SessionID)
	assert.ErrorIs(t, err, domain.ErrIncompleteAnswers)

	_, _, err = service.ToggleReveal(ctx, view.SessionID)
	assert.ErrorIs(t, err, domain.ErrNotYetSubmitted)

	for i := 0; i < 3; i++ {
		_, err := service.Select(ctx, view.SessionID, i, 0)
		require.NoError(t, err)
	}
	_, _, err = service.Submit(ctx, view.SessionID)
	require.NoError(t, err)

	_, _, err = service.Submit(ctx, view.SessionID)
	assert.ErrorIs(t, err, domain.ErrAlreadySubmitted)
	_, err = service.Select(ctx, view.SessionID, 0, 1)
	assert.ErrorIs(t, err, domain.ErrAlreadySubmitted)
}

func TestStartReplacesPreviousSession(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t, manyQuestions(12))

	first, err := service.Start(ctx, "")
	require.NoError(t, err)
	assert.Len(t, first.Questions, 10)

	second, err := service.Start(ctx, first.SessionID)
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.Equal(t, 1, store.Len())

	_, err = service.View(ctx, first.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	service.End(ctx, second.SessionID)
	assert.Equal(t, 0, store.Len())
}

func TestUnknownSession(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t, singleQuestion())

	_, err := service.Select(ctx, "missing", 0, 0)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, _, err = service.Submit(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, _, err = service.ToggleReveal(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = service.Outcome(ctx, "missing", 0)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStartSurfacesLoadError(t *testing.T) {
	bank := memory.NewQuestionBank(memory.NewFailingQuestionLoader(errors.New("HTTP 404")), "data.json", nil)
	require.Error(t, bank.Load(context.Background()))

	service := app.NewQuizService(bank, memory.NewSessionStore(), 10, nil)
	_, err := service.Start(context.Background(), "")

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "data.json", loadErr.Source)
}

func TestConcurrentSelectionsAreSerialized(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t, manyQuestions(10))

	view, err := service.Start(ctx, "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(pos int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = service.Select(ctx, view.SessionID, pos, j%4)
				_, _ = service.View(ctx, view.SessionID)
			}
		}(i)
	}
	wg.Wait()

	result, _, err := service.Submit(ctx, view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Total)
}

func newTestService(t *testing.T, questions []domain.Question) (*app.QuizService, *memory.SessionStore) {
	t.Helper()
	bank := memory.NewQuestionBank(memory.NewStaticQuestionLoader(questions), "static", nil)
	require.NoError(t, bank.Load(context.Background()))
	store := memory.NewSessionStore()
	return app.NewQuizServiceWithRand(bank, store, 10, nil, rand.New(rand.NewPCG(3, 4))), store
}

func choiceIndex(view domain.RoundView, position int, text string) int {
	for i, c := range view.Questions[position].Choices {
		if c.Text == text {
			return i
		}
	}
	return -1
}

func singleQuestion() []domain.Question {
	return []domain.Question{{
		Kind:    domain.KindText,
		Prompt:  "Pick A",
		Choices: []string{"A", "B"},
		Answer:  "A",
	}}
}

func manyQuestions(n int) []domain.Question {
	qs := make([]domain.Question, n)
	for i := range qs {
		qs[i] = domain.Question{
			Kind:    domain.KindText,
			Prompt:  fmt.Sprintf("Question %d", i),
			Choices: []string{"a", "b", "c", "d"},
			Answer:  "a",
		}
	}
	return qs
}
