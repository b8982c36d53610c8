package memory

import (
	"context"
	"sync"

	"clubcine-quiz/internal/domain"
)

// ThemeStore keeps theme preferences in process memory.
type ThemeStore struct {
	mu     sync.RWMutex
	themes map[string]domain.Theme
}

func NewThemeStore() *ThemeStore {
	return &ThemeStore{themes: make(map[string]domain.Theme)}
}

func (s *ThemeStore) GetTheme(_ context.Context, clientID string) (domain.Theme, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	theme, ok := s.themes[clientID]
	return theme, ok, nil
}

func (s *ThemeStore) SetTheme(_ context.Context, clientID string, theme domain.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[clientID] = theme
	return nil
}
