package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobdesk/dashboard-system/internal/api/metrics"
	"github.com/jobdesk/dashboard-system/internal/core/domain"
	"github.com/jobdesk/dashboard-system/internal/core/ports"
)

// JobService implements the mutation layer for jobs. Status updates and
// deletions are optimistic: the snapshot changes first, the gateway request
// follows, and a gateway failure restores the captured pre-image in full.
// Creation is not optimistic; the job enters the snapshot only once the
// gateway has confirmed it.
type JobService struct {
	gateway ports.GatewayClient
	store   *SnapshotStore
	log     zerolog.Logger
	now     func() time.Time
}

func NewJobService(gateway ports.GatewayClient, store *SnapshotStore, log zerolog.Logger) *JobService {
	return &JobService{
		gateway: gateway,
		store:   store,
		log:     log,
		now:     time.Now,
	}
}

// AddJob validates the draft locally, then asks the gateway to create the
// job. Validation failures produce no network request. On success the
// gateway's job is prepended and the snapshot re-sorted newest-first.
func (s *JobService) AddJob(ctx context.Context, actor domain.User, draft ports.JobDraft) (*domain.Job, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if draft.DueDate.IsZero() {
		return nil, &domain.ValidationError{Field: "dueDate", Reason: "is required"}
	}
	if draft.DueDate.Before(s.now()) {
		return nil, &domain.ValidationError{Field: "dueDate", Reason: "must not be in the past"}
	}
	if draft.SalespersonID == "" {
		if actor.Role == domain.RoleSupport {
			return nil, &domain.ValidationError{Field: "salespersonId", Reason: "select a salesperson or mark the job company-wide"}
		}
		// Sales users own their jobs by default.
		draft.SalespersonID = actor.ID
	}

	job, err := s.gateway.AddJob(ctx, draft)
	if err != nil {
		metrics.MutationsTotal.WithLabelValues("addJob", "error").Inc()
		s.log.Error().Err(err).Str("title", draft.Title).Msg("add job failed")
		return nil, err
	}

	s.store.PrependJob(*job)
	metrics.MutationsTotal.WithLabelValues("addJob", "success").Inc()
	s.log.Info().Str("job_id", job.ID).Str("salesperson_id", job.SalespersonID).Msg("job created")
	return job, nil
}

// UpdateJobStatus applies the new status optimistically, then confirms it
// with the gateway. Success swaps in the authoritative job, which carries
// the gateway-computed completion fields; failure restores the exact
// pre-mutation job list.
func (s *JobService) UpdateJobStatus(ctx context.Context, jobID string, status domain.JobStatus) (*domain.Job, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	before := s.store.Snapshot().Jobs

	// The optimistic copy keeps the completedAt-iff-completed invariant on
	// both directions of the transition; the gateway's authoritative job
	// replaces it on success.
	completedAt := s.now()
	applied := s.store.UpdateJob(jobID, func(j *domain.Job) {
		j.Status = status
		if status == domain.StatusCompleted {
			j.CompletedAt = &completedAt
		} else {
			j.CompletedAt = nil
			j.WorkDurationDays = nil
			j.OverdueDays = nil
		}
	})
	if !applied {
		return nil, domain.ErrJobNotFound
	}

	job, err := s.gateway.UpdateJobStatus(ctx, jobID, status)
	if err != nil {
		s.store.RestoreJobs(before)
		metrics.MutationsTotal.WithLabelValues("updateJobStatus", "error").Inc()
		metrics.RollbacksTotal.WithLabelValues("updateJobStatus").Inc()
		s.log.Error().Err(err).Str("job_id", jobID).Str("status", string(status)).Msg("status update failed, rolled back")
		return nil, err
	}

	s.store.ReplaceJob(*job)
	metrics.MutationsTotal.WithLabelValues("updateJobStatus", "success").Inc()
	s.log.Info().Str("job_id", jobID).Str("status", string(status)).Msg("job status updated")
	return job, nil
}

// DeleteJob removes the job optimistically, then confirms with the gateway.
// Failure restores the full pre-mutation job list, order included.
func (s *JobService) DeleteJob(ctx context.Context, jobID string) error {
	before := s.store.Snapshot().Jobs

	if !s.store.RemoveJob(jobID) {
		return domain.ErrJobNotFound
	}

	if err := s.gateway.DeleteJob(ctx, jobID); err != nil {
		s.store.RestoreJobs(before)
		metrics.MutationsTotal.WithLabelValues("deleteJob", "error").Inc()
		metrics.RollbacksTotal.WithLabelValues("deleteJob").Inc()
		s.log.Error().Err(err).Str("job_id", jobID).Msg("delete failed, rolled back")
		return err
	}

	metrics.MutationsTotal.WithLabelValues("deleteJob", "success").Inc()
	s.log.Info().Str("job_id", jobID).Msg("job deleted")
	return nil
}
