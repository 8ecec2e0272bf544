package domain

import "time"

// JobStatus represents the lifecycle state of a job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusInProgress JobStatus = "in_progress"
	StatusCompleted  JobStatus = "completed"
)

// ValidStatus reports whether s is one of the three lifecycle states.
func ValidStatus(s JobStatus) bool {
	switch s {
	case StatusQueued, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Job is the core aggregate. The gateway owns the authoritative copy;
// values held locally are reconciled against gateway responses.
//
// Invariant: CompletedAt is non-nil iff Status == StatusCompleted.
// WorkDurationDays and OverdueDays are gateway-computed summaries, only
// meaningful on completed jobs.
type Job struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Status           JobStatus  `json:"status"`
	DueDate          time.Time  `json:"dueDate"`
	CreatedAt        time.Time  `json:"createdAt"`
	SalespersonID    string     `json:"salespersonId"`
	SupportHandlerID string     `json:"supportHandlerId,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	WorkDurationDays *int       `json:"workDurationDays,omitempty"`
	OverdueDays      *int       `json:"overdueDays,omitempty"`
}

// IsCompanyJob reports whether the job is company-wide (no individual owner).
func (j Job) IsCompanyJob() bool {
	return j.SalespersonID == CompanyJobID
}

// Overdue reports whether the job has passed its due date without being
// completed. Completed jobs are never overdue regardless of due date.
func (j Job) Overdue(now time.Time) bool {
	return j.Status != StatusCompleted && j.DueDate.Before(now)
}
