package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskmate-app/taskmate/internal/models"
)

// FileGateway is a fallback gateway that keeps everything in a single
// JSON snapshot file. It exists for offline use and tests and is not
// wired into the main flow.
type FileGateway struct {
	mu   sync.Mutex
	path string
	data fileData
}

type fileData struct {
	Users    []models.User            `json:"users"`
	Tasks    []models.Task            `json:"tasks"`
	Sessions []models.PomodoroSession `json:"sessions"`
}

// OpenFile loads (or initializes) the snapshot at path.
func OpenFile(path string) (*FileGateway, error) {
	g := &FileGateway{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return g, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if err := json.Unmarshal(raw, &g.data); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}

	return g, nil
}

// save must be called with mu held.
func (g *FileGateway) save() error {
	if err := os.MkdirAll(filepath.Dir(g.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	raw, err := json.MarshalIndent(g.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(g.path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return nil
}

func (g *FileGateway) SignUp(_ context.Context, email, password, name string) (*models.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, u := range g.data.Users {
		if u.Email == email {
			return nil, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	g.data.Users = append(g.data.Users, user)
	if err := g.save(); err != nil {
		g.data.Users = g.data.Users[:len(g.data.Users)-1]
		return nil, err
	}

	return &user, nil
}

func (g *FileGateway) SignIn(_ context.Context, email, password string) (*models.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, u := range g.data.Users {
		if u.Email == email {
			if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
				return nil, ErrInvalidCredentials
			}
			user := u
			return &user, nil
		}
	}
	return nil, ErrInvalidCredentials
}

func (g *FileGateway) CreateTask(_ context.Context, userID string, draft TaskDraft) (*models.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	task := models.Task{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         draft.Title,
		Description:   draft.Description,
		DueDate:       draft.DueDate,
		Urgency:       draft.Urgency,
		EstimatedTime: draft.EstimatedTime,
	}
	task.CreatedAt = time.Now()

	g.data.Tasks = append(g.data.Tasks, task)
	if err := g.save(); err != nil {
		g.data.Tasks = g.data.Tasks[:len(g.data.Tasks)-1]
		return nil, err
	}

	return &task, nil
}

func (g *FileGateway) ListTasks(_ context.Context, userID string) ([]models.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var tasks []models.Task
	for _, t := range g.data.Tasks {
		if t.UserID == userID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (g *FileGateway) UpdateTask(_ context.Context, id string, patch TaskPatch) (*models.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.data.Tasks {
		if g.data.Tasks[i].ID != id {
			continue
		}
		prev := g.data.Tasks[i]
		applyPatch(&g.data.Tasks[i], patch)
		if err := g.save(); err != nil {
			g.data.Tasks[i] = prev
			return nil, err
		}
		task := g.data.Tasks[i]
		return &task, nil
	}
	return nil, ErrNotFound
}

func (g *FileGateway) DeleteTask(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.data.Tasks {
		if g.data.Tasks[i].ID != id {
			continue
		}
		prev := g.data.Tasks
		g.data.Tasks = append(append([]models.Task{}, prev[:i]...), prev[i+1:]...)
		if err := g.save(); err != nil {
			g.data.Tasks = prev
			return err
		}
		return nil
	}
	return ErrNotFound
}

func (g *FileGateway) CreateSession(_ context.Context, userID string, draft SessionDraft) (*models.PomodoroSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	session := models.PomodoroSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		TaskID:    draft.TaskID,
		StartTime: draft.StartTime,
		EndTime:   draft.EndTime,
		Duration:  draft.Duration,
		Completed: draft.Completed,
	}
	g.data.Sessions = append(g.data.Sessions, session)
	if err := g.save(); err != nil {
		g.data.Sessions = g.data.Sessions[:len(g.data.Sessions)-1]
		return nil, err
	}

	return &session, nil
}

func (g *FileGateway) ListSessions(_ context.Context, userID string) ([]models.PomodoroSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var sessions []models.PomodoroSession
	for _, s := range g.data.Sessions {
		if s.UserID == userID {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}
