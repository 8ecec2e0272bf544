package domain

import (
	"testing"
	"time"
)

func TestClassifyJob_Boundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		job  Job
		want Bucket
	}{
		{
			name: "queued before due date",
			job:  Job{Status: StatusQueued, DueDate: now.Add(time.Hour)},
			want: BucketQueued,
		},
		{
			name: "queued past due date is overdue",
			job:  Job{Status: StatusQueued, DueDate: now.Add(-time.Hour)},
			want: BucketOverdue,
		},
		{
			name: "in progress before due date",
			job:  Job{Status: StatusInProgress, DueDate: now.Add(time.Hour)},
			want: BucketInProgress,
		},
		{
			name: "in progress past due date is overdue",
			job:  Job{Status: StatusInProgress, DueDate: now.Add(-time.Minute)},
			want: BucketOverdue,
		},
		{
			name: "completed is never overdue",
			job:  Job{Status: StatusCompleted, DueDate: now.Add(-24 * time.Hour)},
			want: BucketCompleted,
		},
		{
			name: "due exactly now is not overdue",
			job:  Job{Status: StatusQueued, DueDate: now},
			want: BucketQueued,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyJob(tt.job, now); got != tt.want {
				t.Fatalf("ClassifyJob() = %s, want %s", got, tt.want)
			}
		})
	}
}

// Every combination of status and due-date side must land in exactly one
// bucket: the classification is total and disjoint.
func TestClassifyJob_TotalAndDisjoint(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	statuses := []JobStatus{StatusQueued, StatusInProgress, StatusCompleted}
	dueDates := []time.Time{now.Add(-time.Hour), now, now.Add(time.Hour)}
	buckets := map[Bucket]bool{
		BucketOverdue:    true,
		BucketInProgress: true,
		BucketQueued:     true,
		BucketCompleted:  true,
	}

	for _, status := range statuses {
		for _, due := range dueDates {
			got := ClassifyJob(Job{Status: status, DueDate: due}, now)
			if !buckets[got] {
				t.Fatalf("ClassifyJob(%s, due=%s) returned unknown bucket %q", status, due, got)
			}
		}
	}
}

func TestJob_Overdue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	overdue := Job{Status: StatusInProgress, DueDate: now.Add(-time.Second)}
	if !overdue.Overdue(now) {
		t.Fatalf("expected job past due date to be overdue")
	}

	completed := Job{Status: StatusCompleted, DueDate: now.Add(-time.Second)}
	if completed.Overdue(now) {
		t.Fatalf("completed job must not be overdue")
	}
}

func TestSnapshot_Clone_Independent(t *testing.T) {
	completed := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	days := 3
	snap := Snapshot{
		Users: []User{{ID: "u1", Email: "a@b.c"}},
		Jobs: []Job{{
			ID:               "j1",
			Status:           StatusCompleted,
			CompletedAt:      &completed,
			WorkDurationDays: &days,
		}},
	}

	clone := snap.Clone()
	*clone.Jobs[0].CompletedAt = completed.Add(time.Hour)
	*clone.Jobs[0].WorkDurationDays = 99
	clone.Jobs[0].Title = "changed"
	clone.Users[0].Email = "x@y.z"

	if !snap.Jobs[0].CompletedAt.Equal(completed) {
		t.Fatalf("clone shares completedAt pointer with original")
	}
	if *snap.Jobs[0].WorkDurationDays != 3 {
		t.Fatalf("clone shares workDurationDays pointer with original")
	}
	if snap.Jobs[0].Title == "changed" || snap.Users[0].Email == "x@y.z" {
		t.Fatalf("clone shares slices with original")
	}
}

func TestSortJobsByCreatedAt(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	jobs := []Job{
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "mid", CreatedAt: base.Add(time.Hour)},
	}

	SortJobsByCreatedAt(jobs)

	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if jobs[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, jobs[i].ID, id)
		}
	}
}
