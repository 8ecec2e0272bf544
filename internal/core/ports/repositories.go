package ports

import (
	"context"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
)

// UserRepository is the reference gateway's durable user store. Stored
// users never carry plaintext passwords; the hash travels separately.
type UserRepository interface {
	// Create persists a new user. Emails are unique case-insensitively;
	// a clash returns domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error)
	// FindByEmail matches case-insensitively and returns the stored
	// password hash alongside the profile, or domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, string, error)
	List(ctx context.Context) ([]domain.User, error)
}

// JobRepository is the reference gateway's durable job store.
type JobRepository interface {
	Insert(ctx context.Context, job *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Job, error)
}
