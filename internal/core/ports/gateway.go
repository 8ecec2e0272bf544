package ports

import (
	"context"
	"time"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
)

// NewUser carries the full registration payload, password included.
type NewUser struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
	AvatarURL string
}

// JobDraft carries the fields a user supplies when creating a job. ID,
// status and creation time are assigned by the gateway.
type JobDraft struct {
	Title            string
	Description      string
	DueDate          time.Time
	SalespersonID    string
	SupportHandlerID string
}

// GatewayClient is the boundary to the remote data gateway that owns all
// durable state. Every method is a single request/response exchange; there
// is no retry or queuing behind this interface.
type GatewayClient interface {
	GetInitialData(ctx context.Context) (*domain.Snapshot, error)
	Register(ctx context.Context, user NewUser) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	AddJob(ctx context.Context, draft JobDraft) (*domain.Job, error)
	UpdateJobStatus(ctx context.Context, jobID string, status domain.JobStatus) (*domain.Job, error)
	DeleteJob(ctx context.Context, jobID string) error
}
