package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmate-app/taskmate/internal/models"
)

func completedTask(id string, at time.Time) models.Task {
	return models.Task{ID: id, Title: id, Completed: true, CompletedAt: &at}
}

func TestComputeEmpty(t *testing.T) {
	snap := Compute(nil, nil)

	assert.Zero(t, snap.TotalTasks)
	assert.Zero(t, snap.CompletedCount)
	assert.Zero(t, snap.PendingCount)
	assert.Zero(t, snap.CompletionRate)
	assert.Zero(t, snap.TotalFocusMinutes)
	assert.Empty(t, snap.RecentActivity)
}

func TestCompletionRate(t *testing.T) {
	now := time.Now()
	var tasks []models.Task
	for i := 0; i < 7; i++ {
		tasks = append(tasks, models.Task{ID: "open", Urgency: models.UrgencyMedium})
	}
	for i := 0; i < 3; i++ {
		tasks = append(tasks, completedTask("done", now))
	}

	snap := Compute(tasks, nil)
	assert.Equal(t, 10, snap.TotalTasks)
	assert.Equal(t, 3, snap.CompletedCount)
	assert.Equal(t, 7, snap.PendingCount)
	assert.InDelta(t, 30.0, snap.CompletionRate, 0.001)
}

func TestHighPriorityPendingCount(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		{ID: "a", Urgency: models.UrgencyHigh},
		{ID: "b", Urgency: models.UrgencyHigh, Completed: true, CompletedAt: &now},
		{ID: "c", Urgency: models.UrgencyLow},
	}

	snap := Compute(tasks, nil)
	assert.Equal(t, 1, snap.HighPriorityPendingCount)
}

func TestEstimatedMinutes(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		{ID: "a", EstimatedTime: 30},
		{ID: "b", EstimatedTime: 45, Completed: true, CompletedAt: &now},
		{ID: "c"}, // no estimate
	}

	snap := Compute(tasks, nil)
	assert.Equal(t, 75, snap.TotalEstimatedMinutes)
	assert.Equal(t, 45, snap.CompletedEstimatedMinutes)
}

func TestFocusMinutesSumAllSessions(t *testing.T) {
	sessions := []models.PomodoroSession{
		{ID: "s1", Duration: 25, Completed: true},
		{ID: "s2", Duration: 5, Completed: true},
		{ID: "s3", Duration: 25, Completed: false},
	}

	snap := Compute(nil, sessions)
	assert.Equal(t, 2, snap.CompletedSessionCount)
	// Focus time counts every recorded session, completed or not
	assert.Equal(t, 55, snap.TotalFocusMinutes)
}

func TestRecentActivityNewestFirstCappedAtFive(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var tasks []models.Task
	for i := 0; i < 8; i++ {
		tasks = append(tasks, completedTask(
			string(rune('a'+i)),
			base.Add(time.Duration(i)*time.Hour),
		))
	}

	snap := Compute(tasks, nil)
	require.Len(t, snap.RecentActivity, RecentActivityLimit)
	assert.Equal(t, "h", snap.RecentActivity[0].ID)
	assert.Equal(t, "g", snap.RecentActivity[1].ID)
	assert.Equal(t, "d", snap.RecentActivity[4].ID)
}

func TestRecentActivityMissingTimestampSortsLast(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		{ID: "untimed", Completed: true},
		completedTask("timed", now),
	}

	snap := Compute(tasks, nil)
	require.Len(t, snap.RecentActivity, 2)
	assert.Equal(t, "timed", snap.RecentActivity[0].ID)
	assert.Equal(t, "untimed", snap.RecentActivity[1].ID)
}
