// Package store holds the signed-in user's in-memory task and session
// collections, synchronized to the persistence gateway on every
// mutation. Every write persists first and only then updates local
// state, so a failed gateway call never leaves memory ahead of the
// backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/taskmate-app/taskmate/internal/gateway"
	"github.com/taskmate-app/taskmate/internal/models"
)

var (
	// ErrEmptyTitle is reported before any gateway call when a task
	// title is empty or whitespace-only.
	ErrEmptyTitle = errors.New("task title cannot be empty")
	// ErrInvalidEstimate is reported for a negative time estimate.
	ErrInvalidEstimate = errors.New("estimated time must be a positive number of minutes")
	// ErrInvalidUrgency is reported for an unknown urgency tier.
	ErrInvalidUrgency = errors.New("urgency must be one of: high, medium, low")
	// ErrTaskNotFound is reported when the given id is not in the store.
	ErrTaskNotFound = errors.New("task not found")
)

// staleCompletedAge is how long a completed task stays visible before
// the startup purge drops it from the local view.
const staleCompletedAge = 24 * time.Hour

// Group is one urgency bucket of the task list.
type Group struct {
	Urgency models.Urgency
	Tasks   []models.Task
}

// Store is the per-user task store plus its sibling session collection.
type Store struct {
	gw     gateway.Gateway
	userID string
	now    func() time.Time

	tasks    []models.Task
	sessions []models.PomodoroSession
}

// New builds an empty store bound to one user. Call Load to populate
// it from the gateway.
func New(gw gateway.Gateway, userID string) *Store {
	return &Store{
		gw:     gw,
		userID: userID,
		now:    time.Now,
	}
}

// Load fetches the user's tasks and sessions, then purges completed
// tasks older than one day from the local view only. The stale records
// stay in the backend untouched, so completed history is hidden, not
// destroyed.
func (s *Store) Load(ctx context.Context) error {
	tasks, err := s.gw.ListTasks(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	sessions, err := s.gw.ListSessions(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}

	cutoff := s.now().Add(-staleCompletedAge)
	fresh := tasks[:0]
	for _, t := range tasks {
		if t.Completed && t.CompletedAt != nil && !t.CompletedAt.After(cutoff) {
			continue
		}
		fresh = append(fresh, t)
	}

	s.tasks = fresh
	s.sessions = sessions
	return nil
}

// Add validates the draft, persists it, and appends the stored task.
func (s *Store) Add(ctx context.Context, draft gateway.TaskDraft) (*models.Task, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Title == "" {
		return nil, ErrEmptyTitle
	}
	if draft.EstimatedTime < 0 {
		return nil, ErrInvalidEstimate
	}
	if draft.Urgency == "" {
		draft.Urgency = models.UrgencyMedium
	}
	if !draft.Urgency.Valid() {
		return nil, ErrInvalidUrgency
	}

	task, err := s.gw.CreateTask(ctx, s.userID, draft)
	if err != nil {
		return nil, err
	}

	s.tasks = append(s.tasks, *task)
	return task, nil
}

// Toggle flips completion on a task, stamping CompletedAt on the way
// to completed and clearing it on the way back.
func (s *Store) Toggle(ctx context.Context, id string) (*models.Task, error) {
	i := s.index(id)
	if i < 0 {
		return nil, ErrTaskNotFound
	}

	completed := !s.tasks[i].Completed
	var completedAt *time.Time
	if completed {
		now := s.now()
		completedAt = &now
	}

	task, err := s.gw.UpdateTask(ctx, id, gateway.TaskPatch{
		Completed:   &completed,
		CompletedAt: completedAt,
	})
	if err != nil {
		return nil, err
	}

	s.tasks[i] = *task
	return task, nil
}

// Edit applies a partial update. The resulting title must be non-empty.
func (s *Store) Edit(ctx context.Context, id string, patch gateway.TaskPatch) (*models.Task, error) {
	i := s.index(id)
	if i < 0 {
		return nil, ErrTaskNotFound
	}

	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, ErrEmptyTitle
		}
		patch.Title = &trimmed
	}
	if patch.EstimatedTime != nil && *patch.EstimatedTime < 0 {
		return nil, ErrInvalidEstimate
	}
	if patch.Urgency != nil && !patch.Urgency.Valid() {
		return nil, ErrInvalidUrgency
	}
	// Completion is toggled through Toggle so the CompletedAt invariant
	// stays in one place.
	patch.Completed = nil
	patch.CompletedAt = nil

	task, err := s.gw.UpdateTask(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.tasks[i] = *task
	return task, nil
}

// Delete removes a task, backend first.
func (s *Store) Delete(ctx context.Context, id string) error {
	i := s.index(id)
	if i < 0 {
		return ErrTaskNotFound
	}

	if err := s.gw.DeleteTask(ctx, id); err != nil {
		return err
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// Get returns the task with the given id, if present.
func (s *Store) Get(id string) (*models.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return nil, false
	}
	task := s.tasks[i]
	return &task, true
}

// Tasks returns a copy of all currently held tasks.
func (s *Store) Tasks() []models.Task {
	return append([]models.Task(nil), s.tasks...)
}

// Pending returns the tasks not yet completed, for timer binding.
func (s *Store) Pending() []models.Task {
	var pending []models.Task
	for _, t := range s.tasks {
		if !t.Completed {
			pending = append(pending, t)
		}
	}
	return pending
}

// List groups tasks into urgency buckets in fixed display order
// high, medium, low. Within a bucket tasks are ordered by creation
// time ascending. Empty buckets are omitted.
func (s *Store) List() []Group {
	byUrgency := make(map[models.Urgency][]models.Task)
	for _, t := range s.tasks {
		byUrgency[t.Urgency] = append(byUrgency[t.Urgency], t)
	}

	var groups []Group
	for _, u := range models.UrgencyOrder {
		bucket := byUrgency[u]
		if len(bucket) == 0 {
			continue
		}
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].CreatedAt.Before(bucket[j].CreatedAt)
		})
		groups = append(groups, Group{Urgency: u, Tasks: bucket})
	}
	return groups
}

// RecordSession persists a completed pomodoro session and appends it
// to the local history.
func (s *Store) RecordSession(ctx context.Context, draft gateway.SessionDraft) (*models.PomodoroSession, error) {
	session, err := s.gw.CreateSession(ctx, s.userID, draft)
	if err != nil {
		return nil, err
	}

	s.sessions = append(s.sessions, *session)
	return session, nil
}

// Sessions returns a copy of the session history.
func (s *Store) Sessions() []models.PomodoroSession {
	return append([]models.PomodoroSession(nil), s.sessions...)
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
