package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmate-app/taskmate/internal/gateway"
	"github.com/taskmate-app/taskmate/internal/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gw, err := gateway.OpenFile(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	return New(gw, "test-secret", time.Hour, log.New(io.Discard))
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func signUp(t *testing.T, s *Server, email string) string {
	t.Helper()
	resp := doJSON(t, s, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    email,
		"password": "hunter22",
		"name":     "Ada",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var auth authResponse
	decode(t, resp, &auth)
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func TestSignUpAndLogin(t *testing.T) {
	s := newTestServer(t)
	signUp(t, s, "ada@example.com")

	resp := doJSON(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var auth authResponse
	decode(t, resp, &auth)
	assert.NotEmpty(t, auth.Token)
	require.NotNil(t, auth.User)
	assert.Equal(t, "ada@example.com", auth.User.Email)
	assert.Empty(t, auth.User.PasswordHash)
}

func TestSignUpRejectsBadEmail(t *testing.T) {
	s := newTestServer(t)
	resp := doJSON(t, s, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "not-an-email",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	signUp(t, s, "ada@example.com")

	resp := doJSON(t, s, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "ada@example.com",
		"password": "other",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestServer(t)
	signUp(t, s, "ada@example.com")

	resp := doJSON(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTasksRequireAuth(t *testing.T) {
	s := newTestServer(t)

	resp := doJSON(t, s, http.MethodGet, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, s, http.MethodGet, "/api/tasks", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTaskLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := signUp(t, s, "ada@example.com")

	resp := doJSON(t, s, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":          "write report",
		"urgency":        "high",
		"due_date":       "2026-09-15",
		"estimated_time": 90,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var task models.Task
	decode(t, resp, &task)
	require.NotEmpty(t, task.ID)
	assert.Equal(t, models.UrgencyHigh, task.Urgency)
	require.NotNil(t, task.DueDate)

	// Listed in its urgency group
	resp = doJSON(t, s, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed struct {
		Groups []struct {
			Urgency string        `json:"Urgency"`
			Tasks   []models.Task `json:"Tasks"`
		} `json:"groups"`
	}
	decode(t, resp, &listed)
	require.Len(t, listed.Groups, 1)
	assert.Equal(t, "high", listed.Groups[0].Urgency)
	require.Len(t, listed.Groups[0].Tasks, 1)

	// Edit the title and clear the due date
	resp = doJSON(t, s, http.MethodPatch, "/api/tasks/"+task.ID, token, map[string]any{
		"title":    "write annual report",
		"due_date": "",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &task)
	assert.Equal(t, "write annual report", task.Title)
	assert.Nil(t, task.DueDate)

	// Toggle to completed and back
	resp = doJSON(t, s, http.MethodPost, "/api/tasks/"+task.ID+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &task)
	assert.True(t, task.Completed)
	assert.NotNil(t, task.CompletedAt)

	resp = doJSON(t, s, http.MethodPost, "/api/tasks/"+task.ID+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &task)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)

	// Delete
	resp = doJSON(t, s, http.MethodDelete, "/api/tasks/"+task.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, s, http.MethodDelete, "/api/tasks/"+task.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateTaskValidation(t *testing.T) {
	s := newTestServer(t)
	token := signUp(t, s, "ada@example.com")

	resp := doJSON(t, s, http.MethodPost, "/api/tasks", token, map[string]any{
		"title": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, s, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":   "x",
		"urgency": "critical",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, s, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":    "x",
		"due_date": "15/09/2026",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionsAndAnalytics(t *testing.T) {
	s := newTestServer(t)
	token := signUp(t, s, "ada@example.com")

	// One task completed out of two
	resp := doJSON(t, s, http.MethodPost, "/api/tasks", token, map[string]any{"title": "one"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var task models.Task
	decode(t, resp, &task)

	resp = doJSON(t, s, http.MethodPost, "/api/tasks", token, map[string]any{"title": "two"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, s, http.MethodPost, "/api/tasks/"+task.ID+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	start := time.Now().Add(-25 * time.Minute)
	resp = doJSON(t, s, http.MethodPost, "/api/sessions", token, map[string]any{
		"start_time": start.Format(time.RFC3339),
		"end_time":   time.Now().Format(time.RFC3339),
		"duration":   25,
		"completed":  true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, s, http.MethodGet, "/api/sessions", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sessions struct {
		Sessions []models.PomodoroSession `json:"sessions"`
	}
	decode(t, resp, &sessions)
	require.Len(t, sessions.Sessions, 1)

	resp = doJSON(t, s, http.MethodGet, "/api/analytics", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snap struct {
		TotalTasks        int     `json:"total_tasks"`
		CompletedCount    int     `json:"completed_count"`
		CompletionRate    float64 `json:"completion_rate"`
		TotalFocusMinutes int     `json:"total_focus_minutes"`
	}
	decode(t, resp, &snap)
	assert.Equal(t, 2, snap.TotalTasks)
	assert.Equal(t, 1, snap.CompletedCount)
	assert.InDelta(t, 50.0, snap.CompletionRate, 0.001)
	assert.Equal(t, 25, snap.TotalFocusMinutes)
}

func TestCreateSessionValidation(t *testing.T) {
	s := newTestServer(t)
	token := signUp(t, s, "ada@example.com")

	resp := doJSON(t, s, http.MethodPost, "/api/sessions", token, map[string]any{
		"duration": 25,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// expiredGateway rejects every data call as unauthenticated.
type expiredGateway struct{ gateway.Gateway }

func (expiredGateway) ListTasks(context.Context, string) ([]models.Task, error) {
	return nil, gateway.ErrSessionExpired
}

func (expiredGateway) ListSessions(context.Context, string) ([]models.PomodoroSession, error) {
	return nil, gateway.ErrSessionExpired
}

func (expiredGateway) CreateTask(context.Context, string, gateway.TaskDraft) (*models.Task, error) {
	return nil, gateway.ErrSessionExpired
}

func TestExpiredBackendSessionMapsToUnauthorized(t *testing.T) {
	s := New(expiredGateway{}, "test-secret", time.Hour, log.New(io.Discard))
	token, err := s.tokens.Issue(&models.User{ID: "user-1", Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	// A valid bearer token with a rejected backend session still ends
	// in 401, not a gateway error.
	resp := doJSON(t, s, http.MethodGet, "/api/tasks", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, s, http.MethodPost, "/api/tasks", token, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUsersAreIsolated(t *testing.T) {
	s := newTestServer(t)
	ada := signUp(t, s, "ada@example.com")
	bob := signUp(t, s, "bob@example.com")

	resp := doJSON(t, s, http.MethodPost, "/api/tasks", ada, map[string]any{"title": "ada's task"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var task models.Task
	decode(t, resp, &task)

	resp = doJSON(t, s, http.MethodGet, "/api/tasks", bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed struct {
		Groups []json.RawMessage `json:"groups"`
	}
	decode(t, resp, &listed)
	assert.Empty(t, listed.Groups)

	// A store scoped to bob cannot see ada's task at all
	resp = doJSON(t, s, http.MethodPost, "/api/tasks/"+task.ID+"/toggle", bob, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
