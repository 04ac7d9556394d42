package domain

import (
	"math"
	"time"
)

// TaskStats holds per-status counts of a user's non-archived tasks. Total
// comes from an independent count query, not the sum of the groups; the
// service cross-checks the two.
type TaskStats struct {
	Total      int
	Pending    int
	InProgress int
	Completed  int
}

func (s TaskStats) GroupSum() int {
	return s.Pending + s.InProgress + s.Completed
}

// UserStats is the richer aggregate served by the user-stats endpoint.
type UserStats struct {
	TotalTasks         int
	CompletedTasks     int
	PendingTasks       int
	InProgressTasks    int
	OverdueTasks       int
	TasksThisMonth     int
	CompletedThisMonth int
	CompletionRate     float64
}

// CompletionRate returns completed/total as a percentage rounded to two
// decimals, and 0 when total is zero.
func CompletionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	rate := float64(completed) / float64(total) * 100
	return math.Round(rate*100) / 100
}

// StartOfMonth returns midnight on the first day of now's month, in now's
// location.
func StartOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
