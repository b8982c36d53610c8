package redis

import (
	"context"
	"errors"

	"clubcine-quiz/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ThemeStore persists theme preferences without expiry: SET clubcine-theme:{client} light|dark
type ThemeStore struct {
	client *redis.Client
}

func NewThemeStore(client *redis.Client) *ThemeStore {
	return &ThemeStore{client: client}
}

func (s *ThemeStore) GetTheme(ctx context.Context, clientID string) (domain.Theme, bool, error) {
	raw, err := s.client.Get(ctx, s.key(clientID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	theme, err := domain.ParseTheme(raw)
	if err != nil {
		// stale or foreign value, treat as unset
		return "", false, nil
	}
	return theme, true, nil
}

func (s *ThemeStore) SetTheme(ctx context.Context, clientID string, theme domain.Theme) error {
	return s.client.Set(ctx, s.key(clientID), string(theme), 0).Err()
}

func (s *ThemeStore) key(clientID string) string {
	return "clubcine-theme:" + clientID
}
