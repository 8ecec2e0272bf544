package handler

import (
	"time"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
	"github.com/jobdesk/dashboard-system/internal/core/ports"
)

// --- Request / Response types ---

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	Role      string `json:"role"      validate:"required,oneof=Sales Support"`
	AvatarURL string `json:"avatarUrl"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token        string             `json:"token"`
	User         *domain.User       `json:"user"`
	Capabilities ports.Capabilities `json:"capabilities"`
	Theme        string             `json:"theme"`
}

type createJobRequest struct {
	Title            string    `json:"title"       validate:"required"`
	Description      string    `json:"description"`
	DueDate          time.Time `json:"dueDate"     validate:"required"`
	SalespersonID    string    `json:"salespersonId"`
	SupportHandlerID string    `json:"supportHandlerId"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=queued in_progress completed"`
}

type handoffRequest struct {
	Notes     string   `json:"notes"`
	FileNames []string `json:"fileNames"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required"`
}

type themeResponse struct {
	Theme string `json:"theme"`
}

// queueResponse bundles the bucketed view with the data the dashboard needs
// to render it: the sales team for the filter selector and the viewer's
// permitted action set.
type queueResponse struct {
	Queue        ports.QueueView    `json:"queue"`
	SalesUsers   []domain.User      `json:"salesUsers"`
	Capabilities ports.Capabilities `json:"capabilities"`
}

type statsResponse struct {
	Team []ports.PersonStats `json:"team"`
}
