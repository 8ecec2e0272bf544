package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
	"github.com/jobdesk/dashboard-system/internal/core/ports"
)

// JobHandler exposes the job mutations: create, status update, delete and
// the detailed completion hand-off.
type JobHandler struct {
	jobs     ports.JobService
	handoff  ports.HandoffService
	sessions ports.SessionStore
	sync     ports.SnapshotReader
}

func NewJobHandler(jobs ports.JobService, handoff ports.HandoffService, sessions ports.SessionStore, sync ports.SnapshotReader) *JobHandler {
	return &JobHandler{jobs: jobs, handoff: handoff, sessions: sessions, sync: sync}
}

// Create validates and creates a job. Validation failures are rejected
// before any gateway request is issued.
func (h *JobHandler) Create(c echo.Context) error {
	if err := h.sync.Ready(); err != nil {
		return err
	}

	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.jobs.AddJob(c.Request().Context(), *actor, ports.JobDraft{
		Title:            req.Title,
		Description:      req.Description,
		DueDate:          req.DueDate,
		SalespersonID:    req.SalespersonID,
		SupportHandlerID: req.SupportHandlerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, job)
}

// UpdateStatus applies a status transition with optimistic local update.
func (h *JobHandler) UpdateStatus(c echo.Context) error {
	if err := h.sync.Ready(); err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.jobs.UpdateJobStatus(c.Request().Context(), c.Param("id"), domain.JobStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Delete removes a job with optimistic local update.
func (h *JobHandler) Delete(c echo.Context) error {
	if err := h.sync.Ready(); err != nil {
		return err
	}

	if err := h.jobs.DeleteJob(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Handoff runs the detailed completion flow: compose the notification to
// the owning salesperson and mark the job completed. The response carries
// the mailto link handed to the user's mail client.
func (h *JobHandler) Handoff(c echo.Context) error {
	if err := h.sync.Ready(); err != nil {
		return err
	}

	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	var req handoffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.handoff.CompleteWithHandoff(c.Request().Context(), *actor, c.Param("id"), req.Notes, req.FileNames)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// actor resolves the full stored profile for the authenticated user; the
// hand-off message needs the display name, not just the token claims.
func (h *JobHandler) actor(c echo.Context) (*domain.User, error) {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return nil, err
	}
	profile, err := h.sessions.LoadProfile(c.Request().Context(), userID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "session expired")
	}
	return profile, nil
}
