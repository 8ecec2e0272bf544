package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
	"github.com/jobdesk/dashboard-system/internal/core/ports"
)

// HandoffService implements the detailed completion flow: compose a
// notification to the owning salesperson, hand it to the user's mail client
// as a mailto link, and mark the job completed through the mutation layer.
//
// Attachment bytes never pass through the system. Only file names appear in
// the message, together with an instruction to attach the files manually.
type HandoffService struct {
	reader ports.SnapshotReader
	jobs   ports.JobService
	log    zerolog.Logger
}

func NewHandoffService(reader ports.SnapshotReader, jobs ports.JobService, log zerolog.Logger) *HandoffService {
	return &HandoffService{reader: reader, jobs: jobs, log: log}
}

func (s *HandoffService) CompleteWithHandoff(ctx context.Context, actor domain.User, jobID, notes string, fileNames []string) (*ports.HandoffResult, error) {
	snap := s.reader.Snapshot()

	job, ok := snap.JobByID(jobID)
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	if job.IsCompanyJob() {
		// Company-wide jobs have no owner to notify.
		return nil, domain.ErrSalespersonUnknown
	}
	salesperson, ok := snap.UserByID(job.SalespersonID)
	if !ok || salesperson.Role != domain.RoleSales {
		return nil, domain.ErrSalespersonUnknown
	}

	mailto := composeMailto(job, salesperson, actor, notes, fileNames)

	updated, err := s.jobs.UpdateJobStatus(ctx, jobID, domain.StatusCompleted)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("job_id", jobID).Str("salesperson_id", salesperson.ID).Int("attachments", len(fileNames)).Msg("completion hand-off composed")
	return &ports.HandoffResult{MailtoURL: mailto, Job: updated}, nil
}

func composeMailto(job domain.Job, salesperson, actor domain.User, notes string, fileNames []string) string {
	subject := "Job completed: " + job.Title

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", salesperson.FirstName)
	fmt.Fprintf(&b, "Your job '%s' has been completed.\n\n", job.Title)
	fmt.Fprintf(&b, "Job details:\n%s\n\n", job.Description)
	if notes != "" {
		fmt.Fprintf(&b, "Notes from the support team:\n%s\n\n", notes)
	}
	if len(fileNames) > 0 {
		fmt.Fprintf(&b, "%d file(s) attached: %s\n\n", len(fileNames), strings.Join(fileNames, ", "))
		b.WriteString("**Important: please attach these files manually when sending this email**\n\n")
	}
	fmt.Fprintf(&b, "Best regards,\n%s\n(%s)\n", actor.FullName(), actor.Email)

	return "mailto:" + salesperson.Email +
		"?subject=" + escapeMailtoComponent(subject) +
		"&body=" + escapeMailtoComponent(b.String())
}

// escapeMailtoComponent percent-encodes a mailto query component. QueryEscape
// alone encodes spaces as "+", which mail clients render literally.
func escapeMailtoComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
