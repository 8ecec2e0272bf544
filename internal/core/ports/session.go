package ports

import (
	"context"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
)

// SessionStore persists the logged-in user's profile and chosen theme
// across restarts. Profiles are cleared on logout; themes persist.
//
// Implementations must never store a profile carrying a password.
type SessionStore interface {
	SaveProfile(ctx context.Context, user domain.User) error
	LoadProfile(ctx context.Context, userID string) (*domain.User, error)
	ClearProfile(ctx context.Context, userID string) error
	SaveTheme(ctx context.Context, userID, theme string) error
	LoadTheme(ctx context.Context, userID string) (string, error)
}

// SessionRegistry tracks which sessions are live in this process. The
// synchronization layer polls only while at least one session is active.
type SessionRegistry interface {
	Register(sessionID string)
	Unregister(sessionID string)
	Active() bool
	// Wake returns a channel that receives a signal when the registry
	// transitions from empty to non-empty.
	Wake() <-chan struct{}
}
