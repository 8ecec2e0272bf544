// Package memory provides in-memory repository implementations used by the
// reference gateway in tests and local runs without MongoDB.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
)

// UserRepository is the in-memory counterpart of the Mongo user store.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[string]domain.User // keyed by id
	hashes map[string]string      // keyed by lowercased email
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[string]domain.User),
		hashes: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := r.hashes[email]; exists {
		return nil, domain.ErrUserExists
	}

	created := user.StripPassword()
	created.Email = email
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	r.users[created.ID] = created
	r.hashes[email] = passwordHash
	return &created, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(email)
	for _, u := range r.users {
		if u.Email == needle {
			user := u
			return &user, r.hashes[needle], nil
		}
	}
	return nil, "", domain.ErrUserNotFound
}

func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

// JobRepository is the in-memory counterpart of the Mongo job store.
type JobRepository struct {
	mu   sync.RWMutex
	jobs map[string]domain.Job
}

func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[string]domain.Job)}
}

func (r *JobRepository) Insert(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *job
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	r.jobs[created.ID] = created
	out := created
	return &out, nil
}

func (r *JobRepository) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return &job, nil
}

func (r *JobRepository) Update(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[job.ID]; !ok {
		return nil, domain.ErrJobNotFound
	}
	r.jobs[job.ID] = *job
	out := *job
	return &out, nil
}

func (r *JobRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *JobRepository) List(_ context.Context) ([]domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, j)
	}
	domain.SortJobsByCreatedAt(out)
	return out, nil
}
