// Package analytics derives productivity statistics from the current
// task and session collections. Compute is pure and cheap at
// personal-productivity scale, so snapshots are recomputed on every
// query rather than cached.
package analytics

import (
	"sort"
	"time"

	"github.com/taskmate-app/taskmate/internal/models"
)

// RecentActivityLimit caps the recent-activity list.
const RecentActivityLimit = 5

// Snapshot is the aggregate view rendered by the analytics page.
type Snapshot struct {
	TotalTasks               int     `json:"total_tasks"`
	CompletedCount           int     `json:"completed_count"`
	PendingCount             int     `json:"pending_count"`
	HighPriorityPendingCount int     `json:"high_priority_pending_count"`
	CompletionRate           float64 `json:"completion_rate"` // percent, 0 with no tasks

	TotalEstimatedMinutes     int `json:"total_estimated_minutes"`
	CompletedEstimatedMinutes int `json:"completed_estimated_minutes"`

	CompletedSessionCount int `json:"completed_session_count"`
	// TotalFocusMinutes sums duration over all sessions regardless of
	// their completed flag.
	TotalFocusMinutes int `json:"total_focus_minutes"`

	// RecentActivity holds up to five most recently completed tasks,
	// newest first.
	RecentActivity []models.Task `json:"recent_activity"`
}

// Compute builds a snapshot from the given collections.
func Compute(tasks []models.Task, sessions []models.PomodoroSession) Snapshot {
	snap := Snapshot{TotalTasks: len(tasks)}

	var completed []models.Task
	for _, t := range tasks {
		snap.TotalEstimatedMinutes += t.EstimatedTime
		if t.Completed {
			completed = append(completed, t)
			snap.CompletedEstimatedMinutes += t.EstimatedTime
			continue
		}
		snap.PendingCount++
		if t.Urgency == models.UrgencyHigh {
			snap.HighPriorityPendingCount++
		}
	}
	snap.CompletedCount = len(completed)

	if snap.TotalTasks > 0 {
		snap.CompletionRate = float64(snap.CompletedCount) / float64(snap.TotalTasks) * 100
	}

	for _, s := range sessions {
		snap.TotalFocusMinutes += s.Duration
		if s.Completed {
			snap.CompletedSessionCount++
		}
	}

	// Newest completion first; a missing CompletedAt sorts as the
	// earliest possible time.
	sort.SliceStable(completed, func(i, j int) bool {
		return completedAt(completed[j]).Before(completedAt(completed[i]))
	})
	if len(completed) > RecentActivityLimit {
		completed = completed[:RecentActivityLimit]
	}
	snap.RecentActivity = completed

	return snap
}

func completedAt(t models.Task) time.Time {
	if t.CompletedAt != nil {
		return *t.CompletedAt
	}
	return time.Time{}
}
