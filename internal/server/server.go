// Package server exposes the task, session and analytics data over a
// JSON API for the web front end. The API is a thin shell: each
// request builds the same store the CLI uses, so validation and the
// completion invariant live in one place.
package server

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"github.com/taskmate-app/taskmate/internal/gateway"
)

const userIDKey = "userID"

// Server is the HTTP API.
type Server struct {
	app    *fiber.App
	gw     gateway.Gateway
	tokens *tokenManager
	log    *log.Logger
}

// New builds the API around the given gateway.
func New(gw gateway.Gateway, jwtSecret string, jwtTTL time.Duration, logger *log.Logger) *Server {
	s := &Server{
		app:    fiber.New(fiber.Config{DisableStartupMessage: true}),
		gw:     gw,
		tokens: newTokenManager(jwtSecret, jwtTTL),
		log:    logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Use(s.logRequests)

	api := s.app.Group("/api")

	api.Post("/auth/signup", s.handleSignUp)
	api.Post("/auth/login", s.handleLogin)

	authed := api.Use(s.requireAuth)
	authed.Get("/tasks", s.handleListTasks)
	authed.Post("/tasks", s.handleCreateTask)
	authed.Patch("/tasks/:id", s.handleEditTask)
	authed.Post("/tasks/:id/toggle", s.handleToggleTask)
	authed.Delete("/tasks/:id", s.handleDeleteTask)
	authed.Get("/sessions", s.handleListSessions)
	authed.Post("/sessions", s.handleCreateSession)
	authed.Get("/analytics", s.handleAnalytics)
}

// logRequests logs one line per handled request.
func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Info("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start))
	return err
}

// requireAuth validates the bearer token and stashes the user id.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return errorJSON(c, fiber.StatusUnauthorized, "missing bearer token")
	}

	claims, err := s.tokens.Validate(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "invalid or expired token")
	}

	c.Locals(userIDKey, claims.Subject)
	return c.Next()
}

// Listen serves the API on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.log.Info("api listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
