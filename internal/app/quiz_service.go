package app

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"clubcine-quiz/internal/domain"
	"clubcine-quiz/internal/game"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionRepository abstracts where live game sessions are kept (in-memory, Redis-marked, etc).
type SessionRepository interface {
	Save(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// QuestionSource exposes the loaded question set.
type QuestionSource interface {
	Questions() ([]domain.Question, error)
}

// QuizService is the single owner of game sessions. Every mutation of a session goes
// through it and is serialized by that session's lock.
type QuizService struct {
	questions QuestionSource
	sessions  SessionRepository
	perRound  int
	log       *zap.Logger

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuizService(questions QuestionSource, sessions SessionRepository, perRound int, log *zap.Logger) *QuizService {
	seed := uint64(time.Now().UnixNano())
	return NewQuizServiceWithRand(questions, sessions, perRound, log, rand.New(rand.NewPCG(seed, seed>>1|1)))
}

// NewQuizServiceWithRand is used by tests for deterministic rounds.
func NewQuizServiceWithRand(questions QuestionSource, sessions SessionRepository, perRound int, log *zap.Logger, rnd *rand.Rand) *QuizService {
	if perRound <= 0 {
		perRound = game.DefaultQuestionsPerRound
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &QuizService{
		questions: questions,
		sessions:  sessions,
		perRound:  perRound,
		log:       log,
		rnd:       rnd,
	}
}

// Start begins a new round. When replaceID names a live session it is discarded;
// nothing carries over between rounds.
func (s *QuizService) Start(_ context.Context, replaceID string) (domain.RoundView, error) {
	questions, err := s.questions.Questions()
	if err != nil {
		return domain.RoundView{}, err
	}

	s.rndMu.Lock()
	g, err := game.Start(s.rnd, questions, s.perRound)
	s.rndMu.Unlock()
	if err != nil {
		return domain.RoundView{}, err
	}

	session := newSession(uuid.NewString(), g)
	s.sessions.Save(session)
	if replaceID != "" {
		s.sessions.Delete(replaceID)
	}
	s.log.Debug("round started",
		zap.String("session", session.id),
		zap.String("replaced", replaceID),
		zap.Int("questions", g.Len()))
	return session.view(), nil
}

// Select records a choice for a position of the session's round.
func (s *QuizService) Select(_ context.Context, sessionID string, position, choice int) (domain.Outcome, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Outcome{}, domain.ErrSessionNotFound
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if err := session.game.Select(position, choice); err != nil {
		return domain.Outcome{}, err
	}
	return session.game.Outcome(position)
}

// Submit scores the session's round.
func (s *QuizService) Submit(_ context.Context, sessionID string) (domain.SubmitResult, domain.RoundView, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SubmitResult{}, domain.RoundView{}, domain.ErrSessionNotFound
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	result, err := session.game.Submit()
	if err != nil {
		return domain.SubmitResult{}, domain.RoundView{}, err
	}
	s.log.Info("round submitted",
		zap.String("session", sessionID),
		zap.Int("score", result.Score),
		zap.Int("total", result.Total))
	return result, session.game.View(sessionID), nil
}

// ToggleReveal flips display of the correct answers of a submitted round.
func (s *QuizService) ToggleReveal(_ context.Context, sessionID string) (bool, domain.RoundView, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return false, domain.RoundView{}, domain.ErrSessionNotFound
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	revealed, err := session.game.ToggleReveal()
	if err != nil {
		return revealed, domain.RoundView{}, err
	}
	return revealed, session.game.View(sessionID), nil
}

// Outcome returns the read-only projection of one position.
func (s *QuizService) Outcome(_ context.Context, sessionID string, position int) (domain.Outcome, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Outcome{}, domain.ErrSessionNotFound
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.game.Outcome(position)
}

// View renders the current state of a session.
func (s *QuizService) View(_ context.Context, sessionID string) (domain.RoundView, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.RoundView{}, domain.ErrSessionNotFound
	}
	return session.view(), nil
}

// End discards a session.
func (s *QuizService) End(_ context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	s.sessions.Delete(sessionID)
}

// Session is a live game session guarded by its own lock.
type Session struct {
	id        string
	createdAt time.Time
	mu        sync.Mutex
	game      *game.Session
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string, g *game.Session) *Session {
	return newSession(id, g)
}

func newSession(id string, g *game.Session) *Session {
	return &Session{id: id, createdAt: time.Now(), game: g}
}

func (s *Session) ID() string { return s.id }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

func (s *Session) view() domain.RoundView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.View(s.id)
}
