// Package server exposes the session's queries and choice protocol as a
// small local JSON API.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/julianstephens/lectern/internal/logger"
	"github.com/julianstephens/lectern/internal/session"
	"github.com/julianstephens/lectern/internal/validation"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	app      *fiber.App
	sess     *session.Session
	validate *validation.Validator
}

func New(sess *session.Session) *Server {
	s := &Server{
		sess:     sess,
		validate: validation.New(),
	}
	// Immutable: route params end up as keys in the session profile and must
	// not alias pooled request buffers.
	s.app = fiber.New(fiber.Config{
		AppName:               "lectern",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
		Immutable:             true,
	})
	s.app.Use(recover.New())
	s.app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	s.app.Use(requestLogger)
	s.routes()
	return s
}

// App returns the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) routes() {
	api := s.app.Group("/api")

	api.Get("/status", s.handleStatus(false))
	api.Get("/next", s.handleStatus(true))
	api.Get("/schedule", s.handleSchedule)
	api.Get("/divisions", s.handleDivisions)

	api.Get("/rooms/empty", s.handleEmptyRooms)
	api.Get("/rooms/:id", s.handleRoomStatus)

	api.Get("/teachers", s.handleTeachers)
	api.Get("/teachers/:id", s.handleTeacherLocation)

	api.Get("/choices/:group", s.handleGetChoice)
	api.Put("/choices/:group", s.handlePutChoice)
	api.Delete("/choices/:group", s.handleDeleteChoice)

	api.Get("/profile", s.handleGetProfile)
	api.Put("/profile", s.handlePutProfile)
	api.Delete("/profile", s.handleDeleteProfile)
}

// Listen serves on addr until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", addr)
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down API")
		return s.app.ShutdownWithTimeout(shutdownTimeout)
	}
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	logger.Debug("API request",
		"id", c.Locals(requestid.ConfigDefault.ContextKey),
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"latency", time.Since(start),
	)
	return err
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	logger.Error("API handler failed", "path", c.Path(), "error", err)
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
