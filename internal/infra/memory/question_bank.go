package memory

import (
	"context"
	"errors"
	"sync"

	"clubcine-quiz/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var errNotLoaded = errors.New("questions not loaded yet")

// QuestionLoader fetches the question set from a backing resource (file, URL, database).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// QuestionBank holds the imported question set. Each Load is exactly one attempt until
// a set is loaded; after that the set is fixed for the lifetime of the bank.
type QuestionBank struct {
	loader QuestionLoader
	source string
	log    *zap.Logger
	sf     singleflight.Group

	mu        sync.RWMutex
	questions []domain.Question
	err       error
}

func NewQuestionBank(loader QuestionLoader, source string, log *zap.Logger) *QuestionBank {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuestionBank{
		loader: loader,
		source: source,
		log:    log,
		err:    &domain.LoadError{Source: source, Err: errNotLoaded},
	}
}

// Load performs one load attempt while nothing is loaded, and is a no-op afterwards.
// Concurrent callers share the same attempt.
func (b *QuestionBank) Load(ctx context.Context) error {
	if b.Loaded() {
		return nil
	}
	_, err, _ := b.sf.Do("load", func() (interface{}, error) {
		if b.Loaded() {
			return nil, nil
		}
		questions, err := b.loader.LoadQuestions(ctx)
		if err == nil && len(questions) == 0 {
			err = domain.ErrNoQuestions
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		if err != nil {
			loadErr := &domain.LoadError{Source: b.source, Err: err}
			b.err = loadErr
			b.log.Error("question load failed", zap.String("source", b.source), zap.Error(err))
			return nil, loadErr
		}
		b.questions = questions
		b.err = nil
		b.log.Info("questions loaded", zap.String("source", b.source), zap.Int("count", len(questions)))
		return nil, nil
	})
	return err
}

// Questions returns a copy of the loaded set, or the load error while nothing is loaded.
func (b *QuestionBank) Questions() ([]domain.Question, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.err != nil {
		return nil, b.err
	}
	out := make([]domain.Question, len(b.questions))
	copy(out, b.questions)
	return out, nil
}

// Loaded reports whether a question set is in place.
func (b *QuestionBank) Loaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.questions != nil
}

// Source names where the bank loads from.
func (b *QuestionBank) Source() string {
	return b.source
}

// StaticQuestionLoader is a loader backed by a fixed slice (useful for tests/demos).
type StaticQuestionLoader struct {
	questions []domain.Question
	err       error
}

func NewStaticQuestionLoader(questions []domain.Question) *StaticQuestionLoader {
	return &StaticQuestionLoader{questions: questions}
}

// NewFailingQuestionLoader always returns err.
func NewFailingQuestionLoader(err error) *StaticQuestionLoader {
	return &StaticQuestionLoader{err: err}
}

func (l *StaticQuestionLoader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	if l.err != nil {
		return nil, l.err
	}
	out := make([]domain.Question, len(l.questions))
	copy(out, l.questions)
	return out, nil
}
