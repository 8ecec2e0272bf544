package ports

import (
	"context"
	"time"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
)

// AuthService authenticates against the gateway and manages the local
// session. Login and Register return a signed session token alongside the
// stored profile (password stripped).
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Register(ctx context.Context, user NewUser) (string, *domain.User, error)
	Logout(ctx context.Context, userID string) error
}

// JobService issues job mutations against the gateway, applying optimistic
// local updates that roll back in full when the gateway reports failure.
type JobService interface {
	AddJob(ctx context.Context, actor domain.User, draft JobDraft) (*domain.Job, error)
	UpdateJobStatus(ctx context.Context, jobID string, status domain.JobStatus) (*domain.Job, error)
	DeleteJob(ctx context.Context, jobID string) error
}

// SnapshotReader exposes the latest synchronized snapshot to read-side
// consumers.
type SnapshotReader interface {
	Snapshot() domain.Snapshot
	// Ready returns nil once an initial load has succeeded, otherwise the
	// load failure that currently blocks the dashboard.
	Ready() error
}

// QueueFilter narrows the queue view before partitioning.
type QueueFilter struct {
	// Search is matched case-insensitively against title and description.
	Search string
	// SalespersonID limits the view to one owner; empty or "all" means no limit.
	SalespersonID string
	Now           time.Time
}

// Capabilities is the permitted action set for a role, computed once and
// rendered against unconditionally.
type Capabilities struct {
	CanCreateJob       bool `json:"canCreateJob"`
	CanUpdateStatus    bool `json:"canUpdateStatus"`
	CanDeleteJob       bool `json:"canDeleteJob"`
	SeesAllSalespeople bool `json:"seesAllSalespeople"`
}

// QueueView is the bucketed, filtered queue presented to the dashboard.
type QueueView struct {
	Overdue    []domain.Job `json:"overdue"`
	InProgress []domain.Job `json:"inProgress"`
	Queued     []domain.Job `json:"queued"`
	Completed  []domain.Job `json:"completed"`
}

// PersonStats holds per-salesperson bucket counts.
type PersonStats struct {
	Person     domain.User `json:"person"`
	Overdue    int         `json:"overdue"`
	Queued     int         `json:"queued"`
	InProgress int         `json:"inProgress"`
	Completed  int         `json:"completed"`
}

// QueueService derives display state from the current snapshot. Pure
// read-side computation, recomputed per call.
type QueueService interface {
	BuildQueueView(filter QueueFilter) QueueView
	BuildTeamStats(viewer domain.User, now time.Time) []PersonStats
	CapabilitiesFor(role string) Capabilities
}

// HandoffResult carries the composed completion notification.
type HandoffResult struct {
	MailtoURL string      `json:"mailtoUrl"`
	Job       *domain.Job `json:"job"`
}

// HandoffService composes the completion notification for the owning
// salesperson and marks the job completed. Attachment bytes are never
// transmitted; only file names appear in the message text.
type HandoffService interface {
	CompleteWithHandoff(ctx context.Context, actor domain.User, jobID, notes string, fileNames []string) (*HandoffResult, error)
}
