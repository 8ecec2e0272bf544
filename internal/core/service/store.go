package service

import (
	"sync"

	"github.com/jobdesk/dashboard-system/internal/api/metrics"
	"github.com/jobdesk/dashboard-system/internal/core/domain"
)

// SnapshotStore holds the in-memory copy of all users and jobs. The poller
// replaces it wholesale; the mutation layer patches individual jobs and
// restores full pre-images on rollback.
//
// Writers are serialized by the lock, but there is deliberately no ordering
// guarantee between a poll replacement and an in-flight mutation: whichever
// write lands later wins, matching the accepted race in the source system.
type SnapshotStore struct {
	mu   sync.RWMutex
	snap domain.Snapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Snapshot returns a deep copy of the current snapshot.
func (s *SnapshotStore) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Replace swaps in a freshly fetched snapshot.
func (s *SnapshotStore) Replace(snap domain.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	metrics.SnapshotJobs.Set(float64(len(snap.Jobs)))
	metrics.SnapshotUsers.Set(float64(len(snap.Users)))
}

// PrependJob inserts a gateway-confirmed job and restores createdAt order.
func (s *SnapshotStore) PrependJob(job domain.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Jobs = append([]domain.Job{job}, s.snap.Jobs...)
	domain.SortJobsByCreatedAt(s.snap.Jobs)
}

// UpdateJob applies fn to the job with the given id. Returns false when the
// job is not present.
func (s *SnapshotStore) UpdateJob(id string, fn func(*domain.Job)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.snap.Jobs {
		if s.snap.Jobs[i].ID == id {
			fn(&s.snap.Jobs[i])
			return true
		}
	}
	return false
}

// ReplaceJob swaps in the gateway's authoritative copy of a job and
// restores createdAt order.
func (s *SnapshotStore) ReplaceJob(job domain.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.snap.Jobs {
		if s.snap.Jobs[i].ID == job.ID {
			s.snap.Jobs[i] = job
			break
		}
	}
	domain.SortJobsByCreatedAt(s.snap.Jobs)
}

// RemoveJob deletes a job from the snapshot. Returns false when absent.
func (s *SnapshotStore) RemoveJob(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.snap.Jobs {
		if s.snap.Jobs[i].ID == id {
			s.snap.Jobs = append(s.snap.Jobs[:i], s.snap.Jobs[i+1:]...)
			return true
		}
	}
	return false
}

// RestoreJobs puts back a captured pre-mutation job list, order included.
func (s *SnapshotStore) RestoreJobs(jobs []domain.Job) {
	s.mu.Lock()
	s.snap.Jobs = jobs
	s.mu.Unlock()
}
