package service

import (
	"sort"
	"strings"
	"time"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
	"github.com/jobdesk/dashboard-system/internal/core/ports"
)

// QueueService derives the bucketed queue view and per-person statistics
// from the live snapshot. Everything here is recomputed per call; no
// partition state is cached between requests.
type QueueService struct {
	reader ports.SnapshotReader
}

func NewQueueService(reader ports.SnapshotReader) *QueueService {
	return &QueueService{reader: reader}
}

// BuildQueueView filters the snapshot by search text and salesperson, then
// partitions the result into the four mutually exclusive buckets.
func (s *QueueService) BuildQueueView(filter ports.QueueFilter) ports.QueueView {
	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}

	snap := s.reader.Snapshot()
	view := ports.QueueView{
		Overdue:    []domain.Job{},
		InProgress: []domain.Job{},
		Queued:     []domain.Job{},
		Completed:  []domain.Job{},
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, job := range snap.Jobs {
		if !matchesFilter(job, search, filter.SalespersonID) {
			continue
		}
		switch domain.ClassifyJob(job, now) {
		case domain.BucketOverdue:
			view.Overdue = append(view.Overdue, job)
		case domain.BucketInProgress:
			view.InProgress = append(view.InProgress, job)
		case domain.BucketQueued:
			view.Queued = append(view.Queued, job)
		case domain.BucketCompleted:
			view.Completed = append(view.Completed, job)
		}
	}

	sortByDueDate(view.Overdue)
	sortByDueDate(view.InProgress)
	sortByDueDate(view.Queued)
	sortByCompletion(view.Completed)
	return view
}

// BuildTeamStats computes per-salesperson bucket counts. Sales viewers see
// only themselves; Support viewers see the whole sales team. Counts use the
// same overdue predicate as the queue buckets, so they are disjoint and sum
// to the person's job total.
func (s *QueueService) BuildTeamStats(viewer domain.User, now time.Time) []ports.PersonStats {
	if now.IsZero() {
		now = time.Now()
	}

	snap := s.reader.Snapshot()
	team := snap.SalesUsers()
	if viewer.Role == domain.RoleSales {
		scoped := team[:0:0]
		for _, u := range team {
			if u.ID == viewer.ID {
				scoped = append(scoped, u)
			}
		}
		team = scoped
	}

	stats := make([]ports.PersonStats, 0, len(team))
	for _, person := range team {
		ps := ports.PersonStats{Person: person.StripPassword()}
		for _, job := range snap.Jobs {
			if job.SalespersonID != person.ID {
				continue
			}
			switch domain.ClassifyJob(job, now) {
			case domain.BucketOverdue:
				ps.Overdue++
			case domain.BucketQueued:
				ps.Queued++
			case domain.BucketInProgress:
				ps.InProgress++
			case domain.BucketCompleted:
				ps.Completed++
			}
		}
		stats = append(stats, ps)
	}
	return stats
}

// CapabilitiesFor computes the permitted action set for a role once, so the
// view renders against it instead of branching on the role everywhere.
func (s *QueueService) CapabilitiesFor(role string) ports.Capabilities {
	switch role {
	case domain.RoleSupport:
		return ports.Capabilities{
			CanCreateJob:       true,
			CanUpdateStatus:    true,
			CanDeleteJob:       true,
			SeesAllSalespeople: true,
		}
	case domain.RoleSales:
		return ports.Capabilities{CanCreateJob: true}
	default:
		return ports.Capabilities{}
	}
}

func matchesFilter(job domain.Job, search, salespersonID string) bool {
	if salespersonID != "" && salespersonID != "all" && job.SalespersonID != salespersonID {
		return false
	}
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(job.Title), search) ||
		strings.Contains(strings.ToLower(job.Description), search)
}

func sortByDueDate(jobs []domain.Job) {
	sort.SliceStable(jobs, func(i, k int) bool {
		return jobs[i].DueDate.Before(jobs[k].DueDate)
	})
}

// sortByCompletion orders completed jobs newest-first by completion time,
// falling back to creation time for jobs missing completedAt.
func sortByCompletion(jobs []domain.Job) {
	key := func(j domain.Job) time.Time {
		if j.CompletedAt != nil {
			return *j.CompletedAt
		}
		return j.CreatedAt
	}
	sort.SliceStable(jobs, func(i, k int) bool {
		return key(jobs[i]).After(key(jobs[k]))
	})
}
