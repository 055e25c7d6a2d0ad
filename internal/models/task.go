package models

import (
	"time"
)

// Urgency is a task's priority tier
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// UrgencyOrder is the fixed display order for task groups
var UrgencyOrder = []Urgency{UrgencyHigh, UrgencyMedium, UrgencyLow}

// Valid reports whether u is one of the known tiers
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyHigh, UrgencyMedium, UrgencyLow:
		return true
	}
	return false
}

// Task represents a todo item
type Task struct {
	ID        string    `gorm:"primarykey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Title         string     `gorm:"not null" json:"title"`
	Description   string     `json:"description,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Urgency       Urgency    `gorm:"default:medium" json:"urgency"`
	EstimatedTime int        `json:"estimated_time,omitempty"` // minutes, 0 = not set
	Completed     bool       `gorm:"default:false" json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
