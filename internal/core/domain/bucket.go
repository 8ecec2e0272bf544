package domain

import "time"

// Bucket is one of the four mutually exclusive queue groupings.
type Bucket string

const (
	BucketOverdue    Bucket = "overdue"
	BucketInProgress Bucket = "in_progress"
	BucketQueued     Bucket = "queued"
	BucketCompleted  Bucket = "completed"
)

// ClassifyJob assigns a job to exactly one bucket relative to now.
//
// A job past its due date is always overdue regardless of queued /
// in-progress status; completed jobs are never overdue. The predicates are
// exhaustive and disjoint, so every job lands in exactly one bucket.
func ClassifyJob(j Job, now time.Time) Bucket {
	switch {
	case j.Status == StatusCompleted:
		return BucketCompleted
	case j.DueDate.Before(now):
		return BucketOverdue
	case j.Status == StatusInProgress:
		return BucketInProgress
	default:
		return BucketQueued
	}
}
