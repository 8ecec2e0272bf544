package gatewayserver

import (
	"time"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
)

// Wire types mirror the protocol's JSON: camelCase keys, dates serialized
// as RFC 3339 strings, responses wrapped in a status envelope.

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

type actionRequest struct {
	Action string `json:"action"`

	// register
	User *wireUser `json:"user,omitempty"`

	// login
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`

	// addJob
	Job *wireJob `json:"job,omitempty"`

	// updateJobStatus / deleteJob
	JobID  string `json:"jobId,omitempty"`
	Status string `json:"status,omitempty"`
}

type envelope struct {
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	User    *wireUser `json:"user,omitempty"`
	Job     *wireJob  `json:"job,omitempty"`
}

type initialData struct {
	Users []wireUser `json:"users"`
	Jobs  []wireJob  `json:"jobs"`
}

func success() envelope {
	return envelope{Status: "success"}
}

func failure(message string) envelope {
	return envelope{Status: "error", Message: message}
}

func encodeUser(u domain.User) wireUser {
	return wireUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
	}
}

func encodeJob(j domain.Job) wireJob {
	out := wireJob{
		ID:               j.ID,
		Title:            j.Title,
		Description:      j.Description,
		Status:           string(j.Status),
		DueDate:          j.DueDate.UTC().Format(time.RFC3339Nano),
		CreatedAt:        j.CreatedAt.UTC().Format(time.RFC3339Nano),
		SalespersonID:    j.SalespersonID,
		SupportHandlerID: j.SupportHandlerID,
		WorkDurationDays: j.WorkDurationDays,
		OverdueDays:      j.OverdueDays,
	}
	if j.CompletedAt != nil {
		out.CompletedAt = j.CompletedAt.UTC().Format(time.RFC3339Nano)
	}
	return out
}
