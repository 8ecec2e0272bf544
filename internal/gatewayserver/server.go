// Package gatewayserver is a reference implementation of the remote data
// gateway protocol, used for local development and integration tests. The
// production deployment the dashboard talks to is external; this server
// speaks the same action-based protocol against its own storage.
//
// Protocol notes: reads are GET requests with an action query parameter;
// writes are JSON bodies POSTed as text/plain (clients avoid CORS
// preflight that way), so dispatch reads the raw body rather than relying
// on content-type negotiation. Every response is HTTP 200 with a status
// envelope; failures travel inside the envelope.
package gatewayserver

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
	"github.com/jobdesk/dashboard-system/internal/core/ports"
)

// Server handles the gateway protocol against the injected repositories.
type Server struct {
	users ports.UserRepository
	jobs  ports.JobRepository
	log   zerolog.Logger
	now   func() time.Time
}

func NewServer(users ports.UserRepository, jobs ports.JobRepository, log zerolog.Logger) *Server {
	return &Server{users: users, jobs: jobs, log: log, now: time.Now}
}

// Routes registers the protocol endpoints on e.
func (s *Server) Routes(e *echo.Echo) {
	e.GET("/", s.handleRead)
	e.POST("/", s.handleAction)
}

func (s *Server) handleRead(c echo.Context) error {
	if c.QueryParam("action") != "getInitialData" {
		return c.JSON(http.StatusOK, failure("unknown action"))
	}

	ctx := c.Request().Context()
	users, err := s.users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusOK, failure("failed to load users"))
	}
	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return c.JSON(http.StatusOK, failure("failed to load jobs"))
	}

	data := initialData{
		Users: make([]wireUser, 0, len(users)),
		Jobs:  make([]wireJob, 0, len(jobs)),
	}
	for _, u := range users {
		data.Users = append(data.Users, encodeUser(u))
	}
	for _, j := range jobs {
		data.Jobs = append(data.Jobs, encodeJob(j))
	}
	return c.JSON(http.StatusOK, data)
}

func (s *Server) handleAction(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusOK, failure("unreadable request body"))
	}

	var req actionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return c.JSON(http.StatusOK, failure("request body is not valid JSON"))
	}

	ctx := c.Request().Context()
	switch req.Action {
	case "register":
		return c.JSON(http.StatusOK, s.register(ctx, req))
	case "login":
		return c.JSON(http.StatusOK, s.login(ctx, req))
	case "addJob":
		return c.JSON(http.StatusOK, s.addJob(ctx, req))
	case "updateJobStatus":
		return c.JSON(http.StatusOK, s.updateJobStatus(ctx, req))
	case "deleteJob":
		return c.JSON(http.StatusOK, s.deleteJob(ctx, req))
	default:
		return c.JSON(http.StatusOK, failure("unknown action: "+req.Action))
	}
}

func (s *Server) register(ctx context.Context, req actionRequest) envelope {
	if req.User == nil {
		return failure("missing user payload")
	}
	u := req.User
	if strings.TrimSpace(u.Email) == "" || u.Password == "" {
		return failure("email and password are required")
	}
	if strings.TrimSpace(u.FirstName) == "" || strings.TrimSpace(u.LastName) == "" {
		return failure("first and last name are required")
	}
	if !domain.ValidRole(u.Role) {
		return failure("role must be Sales or Support")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return failure("could not process password")
	}

	created, err := s.users.Create(ctx, &domain.User{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
	}, string(hash))
	if err != nil {
		if err == domain.ErrUserExists {
			return failure("this email is already registered")
		}
		s.log.Error().Err(err).Msg("register failed")
		return failure("registration failed")
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	out := success()
	wu := encodeUser(*created)
	out.User = &wu
	return out
}

func (s *Server) login(ctx context.Context, req actionRequest) envelope {
	user, hash, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return failure("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		return failure("invalid email or password")
	}

	out := success()
	wu := encodeUser(*user)
	out.User = &wu
	return out
}

func (s *Server) addJob(ctx context.Context, req actionRequest) envelope {
	if req.Job == nil {
		return failure("missing job payload")
	}
	j := req.Job
	if strings.TrimSpace(j.Title) == "" {
		return failure("title is required")
	}
	due, err := time.Parse(time.RFC3339Nano, j.DueDate)
	if err != nil {
		return failure("dueDate is not a valid timestamp")
	}
	if j.SalespersonID == "" {
		return failure("salespersonId is required")
	}

	created, err := s.jobs.Insert(ctx, &domain.Job{
		Title:            j.Title,
		Description:      j.Description,
		Status:           domain.StatusQueued,
		DueDate:          due.UTC(),
		CreatedAt:        s.now().UTC(),
		SalespersonID:    j.SalespersonID,
		SupportHandlerID: j.SupportHandlerID,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("add job failed")
		return failure("could not create job")
	}

	s.log.Info().Str("job_id", created.ID).Msg("job created")
	out := success()
	wj := encodeJob(*created)
	out.Job = &wj
	return out
}

func (s *Server) updateJobStatus(ctx context.Context, req actionRequest) envelope {
	status := domain.JobStatus(req.Status)
	if !domain.ValidStatus(status) {
		return failure("invalid status: " + req.Status)
	}

	job, err := s.jobs.FindByID(ctx, req.JobID)
	if err != nil {
		return failure("job not found")
	}

	job.Status = status
	if status == domain.StatusCompleted {
		completedAt := s.now().UTC()
		job.CompletedAt = &completedAt
		work := ceilDays(completedAt.Sub(job.CreatedAt))
		if work < 1 {
			work = 1
		}
		overdue := 0
		if completedAt.After(job.DueDate) {
			overdue = ceilDays(completedAt.Sub(job.DueDate))
		}
		job.WorkDurationDays = &work
		job.OverdueDays = &overdue
	} else {
		job.CompletedAt = nil
		job.WorkDurationDays = nil
		job.OverdueDays = nil
	}

	updated, err := s.jobs.Update(ctx, job)
	if err != nil {
		s.log.Error().Err(err).Str("job_id", req.JobID).Msg("status update failed")
		return failure("could not update job")
	}

	s.log.Info().Str("job_id", updated.ID).Str("status", string(status)).Msg("job status updated")
	out := success()
	wj := encodeJob(*updated)
	out.Job = &wj
	return out
}

func (s *Server) deleteJob(ctx context.Context, req actionRequest) envelope {
	if err := s.jobs.Delete(ctx, req.JobID); err != nil {
		if err == domain.ErrJobNotFound {
			return failure("job not found")
		}
		s.log.Error().Err(err).Str("job_id", req.JobID).Msg("delete failed")
		return failure("could not delete job")
	}
	s.log.Info().Str("job_id", req.JobID).Msg("job deleted")
	return success()
}

// ceilDays converts a duration to whole days, rounding partial days up.
func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}
