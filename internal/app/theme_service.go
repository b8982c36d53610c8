package app

import (
	"context"

	"clubcine-quiz/internal/domain"
)

// ThemeStore persists the display preference of a client.
type ThemeStore interface {
	GetTheme(ctx context.Context, clientID string) (domain.Theme, bool, error)
	SetTheme(ctx context.Context, clientID string, theme domain.Theme) error
}

// ThemeService reads and toggles the light/dark preference. It is not part of the quiz core.
type ThemeService struct {
	store    ThemeStore
	fallback domain.Theme
}

func NewThemeService(store ThemeStore, fallback domain.Theme) *ThemeService {
	if fallback == "" {
		fallback = domain.ThemeLight
	}
	return &ThemeService{store: store, fallback: fallback}
}

// Current returns the stored theme, else preferred, else the configured fallback.
func (s *ThemeService) Current(ctx context.Context, clientID string, preferred domain.Theme) (domain.Theme, error) {
	theme, ok, err := s.store.GetTheme(ctx, clientID)
	if err != nil {
		return "", err
	}
	if ok {
		return theme, nil
	}
	if preferred != "" {
		return preferred, nil
	}
	return s.fallback, nil
}

// Toggle flips the current theme and persists it.
func (s *ThemeService) Toggle(ctx context.Context, clientID string, preferred domain.Theme) (domain.Theme, error) {
	current, err := s.Current(ctx, clientID, preferred)
	if err != nil {
		return "", err
	}
	next := current.Toggle()
	if err := s.store.SetTheme(ctx, clientID, next); err != nil {
		return "", err
	}
	return next, nil
}
