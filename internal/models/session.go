package models

import (
	"time"
)

// PomodoroSession represents one completed focus or break countdown.
// Sessions are written once at natural countdown expiry and never
// mutated or deleted afterwards.
type PomodoroSession struct {
	ID     string `gorm:"primarykey" json:"id"`
	UserID string `gorm:"index;not null" json:"user_id"`

	TaskID    *string   `json:"task_id,omitempty"` // weak reference, survives task deletion
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Duration  int       `json:"duration"` // minutes, fixed per phase (25 work / 5 break)
	Completed bool      `json:"completed"`
}
