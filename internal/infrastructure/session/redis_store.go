// Package session persists the logged-in user's profile and chosen visual
// theme across restarts, behind the ports.SessionStore interface so tests
// can substitute an in-memory fake.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
)

const (
	profileKeyPrefix = "session:profile:"
	themeKeyPrefix   = "session:theme:"
)

// RedisStore is the production session store. Profiles are cleared on
// logout; themes are stored without expiry and survive logout.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) SaveProfile(ctx context.Context, user domain.User) error {
	// Guard the invariant at the boundary: stored profiles never carry a password.
	payload, err := json.Marshal(user.StripPassword())
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.client.Set(ctx, profileKeyPrefix+user.ID, payload, 0).Err(); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *RedisStore) LoadProfile(ctx context.Context, userID string) (*domain.User, error) {
	raw, err := s.client.Get(ctx, profileKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &user, nil
}

func (s *RedisStore) ClearProfile(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, profileKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}

func (s *RedisStore) SaveTheme(ctx context.Context, userID, theme string) error {
	if !ValidTheme(theme) {
		return &domain.ValidationError{Field: "theme", Reason: "unknown theme " + theme}
	}
	if err := s.client.Set(ctx, themeKeyPrefix+userID, theme, 0).Err(); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

func (s *RedisStore) LoadTheme(ctx context.Context, userID string) (string, error) {
	theme, err := s.client.Get(ctx, themeKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return DefaultTheme, nil
	}
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	return theme, nil
}
