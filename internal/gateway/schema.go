package gateway

import (
	"fmt"
	"time"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
)

// Wire types mirror the gateway's JSON exactly: camelCase keys, dates as
// ISO-ish strings. Parsing into time.Time happens at this boundary so the
// rest of the system only ever sees typed values.

type wireUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type wireJob struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Status           string `json:"status"`
	DueDate          string `json:"dueDate"`
	CreatedAt        string `json:"createdAt"`
	SalespersonID    string `json:"salespersonId"`
	SupportHandlerID string `json:"supportHandlerId,omitempty"`
	CompletedAt      string `json:"completedAt,omitempty"`
	WorkDurationDays *int   `json:"workDurationDays,omitempty"`
	OverdueDays      *int   `json:"overdueDays,omitempty"`
}

type responseEnvelope struct {
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	User    *wireUser `json:"user,omitempty"`
	Job     *wireJob  `json:"job,omitempty"`
}

type initialDataResponse struct {
	Users []wireUser `json:"users"`
	Jobs  []wireJob  `json:"jobs"`
}

func (w wireUser) toDomain() domain.User {
	return domain.User{
		ID:        w.ID,
		Email:     w.Email,
		Password:  w.Password,
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Role:      w.Role,
		AvatarURL: w.AvatarURL,
	}
}

func (w wireJob) toDomain() (domain.Job, error) {
	due, err := parseWireTime(w.DueDate)
	if err != nil {
		return domain.Job{}, fmt.Errorf("job %s dueDate: %w", w.ID, err)
	}
	created, err := parseWireTime(w.CreatedAt)
	if err != nil {
		return domain.Job{}, fmt.Errorf("job %s createdAt: %w", w.ID, err)
	}

	job := domain.Job{
		ID:               w.ID,
		Title:            w.Title,
		Description:      w.Description,
		Status:           domain.JobStatus(w.Status),
		DueDate:          due,
		CreatedAt:        created,
		SalespersonID:    w.SalespersonID,
		SupportHandlerID: w.SupportHandlerID,
		WorkDurationDays: w.WorkDurationDays,
		OverdueDays:      w.OverdueDays,
	}
	if w.CompletedAt != "" {
		completed, err := parseWireTime(w.CompletedAt)
		if err != nil {
			return domain.Job{}, fmt.Errorf("job %s completedAt: %w", w.ID, err)
		}
		job.CompletedAt = &completed
	}
	return job, nil
}

// parseWireTime accepts RFC 3339 with or without fractional seconds, which
// covers every serialization the gateway emits.
func parseWireTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
