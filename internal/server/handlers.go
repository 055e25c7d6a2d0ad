package server

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taskmate-app/taskmate/internal/analytics"
	"github.com/taskmate-app/taskmate/internal/gateway"
	"github.com/taskmate-app/taskmate/internal/models"
	"github.com/taskmate-app/taskmate/internal/store"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type taskRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	DueDate       *string `json:"due_date"` // yyyy-mm-dd, empty string clears
	Urgency       *string `json:"urgency"`
	EstimatedTime *int    `json:"estimated_time"`
}

type sessionRequest struct {
	TaskID    *string   `json:"task_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  int       `json:"duration"`
	Completed bool      `json:"completed"`
}

func (s *Server) handleSignUp(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Email = strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid email address")
	}
	if strings.TrimSpace(req.Password) == "" {
		return errorJSON(c, fiber.StatusBadRequest, "password is required")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		// Default the display name to the email local part
		name = strings.SplitN(req.Email, "@", 2)[0]
	}

	user, err := s.gw.SignUp(c.UserContext(), req.Email, req.Password, name)
	if err != nil {
		if errors.Is(err, gateway.ErrEmailTaken) {
			return errorJSON(c, fiber.StatusConflict, err.Error())
		}
		return s.gatewayError(c, err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return s.gatewayError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(authResponse{Token: token, User: user})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return errorJSON(c, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := s.gw.SignIn(c.UserContext(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidCredentials) {
			return errorJSON(c, fiber.StatusUnauthorized, err.Error())
		}
		return s.gatewayError(c, err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return s.gatewayError(c, err)
	}

	return c.JSON(authResponse{Token: token, User: user})
}

// userStore builds the per-user store for one request.
func (s *Server) userStore(c *fiber.Ctx) (*store.Store, error) {
	st := store.New(s.gw, c.Locals(userIDKey).(string))
	if err := st.Load(c.UserContext()); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Server) handleListTasks(c *fiber.Ctx) error {
	st, err := s.userStore(c)
	if err != nil {
		return s.gatewayError(c, err)
	}
	return c.JSON(fiber.Map{"groups": st.List()})
}

func (s *Server) handleCreateTask(c *fiber.Ctx) error {
	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}

	draft := gateway.TaskDraft{}
	if req.Title != nil {
		draft.Title = *req.Title
	}
	if req.Description != nil {
		draft.Description = *req.Description
	}
	if req.Urgency != nil {
		draft.Urgency = models.Urgency(*req.Urgency)
	}
	if req.EstimatedTime != nil {
		draft.EstimatedTime = *req.EstimatedTime
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "due_date must be yyyy-mm-dd")
		}
		draft.DueDate = &due
	}

	st := store.New(s.gw, c.Locals(userIDKey).(string))
	task, err := st.Add(c.UserContext(), draft)
	if err != nil {
		return s.storeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

func (s *Server) handleEditTask(c *fiber.Ctx) error {
	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}

	patch := gateway.TaskPatch{
		Title:         req.Title,
		Description:   req.Description,
		EstimatedTime: req.EstimatedTime,
	}
	if req.Urgency != nil {
		urgency := models.Urgency(*req.Urgency)
		patch.Urgency = &urgency
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			patch.ClearDueDate = true
		} else {
			due, err := time.Parse("2006-01-02", *req.DueDate)
			if err != nil {
				return errorJSON(c, fiber.StatusBadRequest, "due_date must be yyyy-mm-dd")
			}
			patch.DueDate = &due
		}
	}

	st, err := s.userStore(c)
	if err != nil {
		return s.gatewayError(c, err)
	}

	task, err := st.Edit(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(task)
}

func (s *Server) handleToggleTask(c *fiber.Ctx) error {
	st, err := s.userStore(c)
	if err != nil {
		return s.gatewayError(c, err)
	}

	task, err := st.Toggle(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(task)
}

func (s *Server) handleDeleteTask(c *fiber.Ctx) error {
	st, err := s.userStore(c)
	if err != nil {
		return s.gatewayError(c, err)
	}

	if err := st.Delete(c.UserContext(), c.Params("id")); err != nil {
		return s.storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleListSessions(c *fiber.Ctx) error {
	st, err := s.userStore(c)
	if err != nil {
		return s.gatewayError(c, err)
	}
	return c.JSON(fiber.Map{"sessions": st.Sessions()})
}

func (s *Server) handleCreateSession(c *fiber.Ctx) error {
	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() || req.Duration <= 0 {
		return errorJSON(c, fiber.StatusBadRequest, "start_time, end_time and duration are required")
	}

	st := store.New(s.gw, c.Locals(userIDKey).(string))
	session, err := st.RecordSession(c.UserContext(), gateway.SessionDraft{
		TaskID:    req.TaskID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Duration:  req.Duration,
		Completed: req.Completed,
	})
	if err != nil {
		return s.gatewayError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

func (s *Server) handleAnalytics(c *fiber.Ctx) error {
	st, err := s.userStore(c)
	if err != nil {
		return s.gatewayError(c, err)
	}
	return c.JSON(analytics.Compute(st.Tasks(), st.Sessions()))
}

// storeError maps validation and lookup failures to client errors.
func (s *Server) storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrEmptyTitle),
		errors.Is(err, store.ErrInvalidEstimate),
		errors.Is(err, store.ErrInvalidUrgency):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrTaskNotFound), errors.Is(err, gateway.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, err.Error())
	default:
		return s.gatewayError(c, err)
	}
}

// gatewayError reports a backend failure without masking its message.
func (s *Server) gatewayError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gateway.ErrSessionExpired) {
		return errorJSON(c, fiber.StatusUnauthorized, err.Error())
	}
	s.log.Error("gateway call failed", "path", c.Path(), "err", err)
	return errorJSON(c, fiber.StatusBadGateway, err.Error())
}
