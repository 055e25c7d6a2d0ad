package gateway

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskmate-app/taskmate/internal/models"
)

// bcryptCost balances hashing time against brute-force resistance.
const bcryptCost = 12

// SQLiteGateway is the primary gateway implementation, backed by a
// local SQLite database.
type SQLiteGateway struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) the database at path and runs
// migrations.
func OpenSQLite(path string) (*SQLiteGateway, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Task{}, &models.PomodoroSession{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteGateway{db: db}, nil
}

// Close closes the underlying database connection.
func (g *SQLiteGateway) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SignUp registers a new account with a bcrypt-hashed password.
func (g *SQLiteGateway) SignUp(ctx context.Context, email, password, name string) (*models.User, error) {
	var existing models.User
	err := g.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
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
	if err := g.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// SignIn verifies credentials and returns the matching account.
func (g *SQLiteGateway) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := g.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// CreateTask stores a new task and assigns its ID and creation time.
func (g *SQLiteGateway) CreateTask(ctx context.Context, userID string, draft TaskDraft) (*models.Task, error) {
	task := models.Task{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         draft.Title,
		Description:   draft.Description,
		DueDate:       draft.DueDate,
		Urgency:       draft.Urgency,
		EstimatedTime: draft.EstimatedTime,
		Completed:     false,
	}
	if err := g.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &task, nil
}

// ListTasks returns the user's tasks in creation order.
func (g *SQLiteGateway) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	var tasks []models.Task
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTask applies a partial update and returns the stored task.
func (g *SQLiteGateway) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*models.Task, error) {
	var task models.Task
	err := g.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	applyPatch(&task, patch)

	// Save writes all fields so cleared ones (completed_at, due_date)
	// are persisted as NULL rather than skipped.
	if err := g.db.WithContext(ctx).Save(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return &task, nil
}

// DeleteTask removes a task by id.
func (g *SQLiteGateway) DeleteTask(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateSession stores a completed pomodoro session record.
func (g *SQLiteGateway) CreateSession(ctx context.Context, userID string, draft SessionDraft) (*models.PomodoroSession, error) {
	session := models.PomodoroSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		TaskID:    draft.TaskID,
		StartTime: draft.StartTime,
		EndTime:   draft.EndTime,
		Duration:  draft.Duration,
		Completed: draft.Completed,
	}
	if err := g.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &session, nil
}

// ListSessions returns the user's session history in start order.
func (g *SQLiteGateway) ListSessions(ctx context.Context, userID string) ([]models.PomodoroSession, error) {
	var sessions []models.PomodoroSession
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}
