package session

import (
	"context"
	"sync"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
)

// MemoryStore is an in-memory session store for tests and local runs
// without Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.User
	themes   map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]domain.User),
		themes:   make(map[string]string),
	}
}

func (s *MemoryStore) SaveProfile(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[user.ID] = user.StripPassword()
	return nil
}

func (s *MemoryStore) LoadProfile(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (s *MemoryStore) ClearProfile(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
	return nil
}

func (s *MemoryStore) SaveTheme(_ context.Context, userID, theme string) error {
	if !ValidTheme(theme) {
		return &domain.ValidationError{Field: "theme", Reason: "unknown theme " + theme}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[userID] = theme
	return nil
}

func (s *MemoryStore) LoadTheme(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if theme, ok := s.themes[userID]; ok {
		return theme, nil
	}
	return DefaultTheme, nil
}
