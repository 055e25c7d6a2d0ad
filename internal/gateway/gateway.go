// Package gateway defines the persistence gateway the rest of the
// application talks to: per-user authentication plus Task and
// PomodoroSession CRUD. Callers never retry; a failed call leaves
// their in-memory state untouched and the error is surfaced as-is.
package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/taskmate-app/taskmate/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken is returned by SignUp for an already registered email.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrInvalidCredentials is returned by SignIn for a bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSessionExpired is returned when the gateway rejects a call as
	// unauthenticated while the caller still holds a local sign-in record.
	ErrSessionExpired = errors.New("your session has expired, please log in again")
)

// TaskDraft holds the user-supplied fields for a new task.
type TaskDraft struct {
	Title         string
	Description   string
	DueDate       *time.Time
	Urgency       models.Urgency
	EstimatedTime int // minutes, 0 = not set
}

// TaskPatch is a partial task update. Nil fields are left unchanged.
// CompletedAt is applied only together with Completed, so the
// completed/completedAt invariant cannot be broken half-way.
type TaskPatch struct {
	Title         *string
	Description   *string
	DueDate       *time.Time
	ClearDueDate  bool
	Urgency       *models.Urgency
	EstimatedTime *int
	Completed     *bool
	CompletedAt   *time.Time
}

// SessionDraft holds the fields of a completed pomodoro session record.
type SessionDraft struct {
	TaskID    *string
	StartTime time.Time
	EndTime   time.Time
	Duration  int // minutes
	Completed bool
}

// Gateway is the persistence contract: authentication and per-user
// document CRUD. Implementations assign record IDs at creation.
type Gateway interface {
	SignUp(ctx context.Context, email, password, name string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)

	CreateTask(ctx context.Context, userID string, draft TaskDraft) (*models.Task, error)
	ListTasks(ctx context.Context, userID string) ([]models.Task, error)
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error

	CreateSession(ctx context.Context, userID string, draft SessionDraft) (*models.PomodoroSession, error)
	ListSessions(ctx context.Context, userID string) ([]models.PomodoroSession, error)
}

// applyPatch merges a patch into a task in place.
func applyPatch(task *models.Task, patch TaskPatch) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	} else if patch.ClearDueDate {
		task.DueDate = nil
	}
	if patch.Urgency != nil {
		task.Urgency = *patch.Urgency
	}
	if patch.EstimatedTime != nil {
		task.EstimatedTime = *patch.EstimatedTime
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
		task.CompletedAt = patch.CompletedAt
	}
}
