package domain

import "sort"

// Snapshot is the client-held copy of all users and jobs, replaced
// wholesale on each successful fetch from the gateway.
type Snapshot struct {
	Users []User
	Jobs  []Job
}

// Clone returns a deep copy. Mutation rollback depends on the copy being
// fully independent of the original slices.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Users: make([]User, len(s.Users)),
		Jobs:  make([]Job, len(s.Jobs)),
	}
	copy(out.Users, s.Users)
	for i, j := range s.Jobs {
		out.Jobs[i] = cloneJob(j)
	}
	return out
}

func cloneJob(j Job) Job {
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		j.CompletedAt = &t
	}
	if j.WorkDurationDays != nil {
		d := *j.WorkDurationDays
		j.WorkDurationDays = &d
	}
	if j.OverdueDays != nil {
		d := *j.OverdueDays
		j.OverdueDays = &d
	}
	return j
}

// SalesUsers returns the users holding the Sales role, in snapshot order.
func (s Snapshot) SalesUsers() []User {
	var out []User
	for _, u := range s.Users {
		if u.Role == RoleSales {
			out = append(out, u)
		}
	}
	return out
}

// UserByID looks a user up by id.
func (s Snapshot) UserByID(id string) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// JobByID looks a job up by id.
func (s Snapshot) JobByID(id string) (Job, bool) {
	for _, j := range s.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}

// SortJobsByCreatedAt orders jobs newest-first, the canonical snapshot order.
func SortJobsByCreatedAt(jobs []Job) {
	sort.SliceStable(jobs, func(i, k int) bool {
		return jobs[i].CreatedAt.After(jobs[k].CreatedAt)
	})
}
