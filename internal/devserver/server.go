// Package devserver is a development stand-in for the wellness backend. It
// serves the same REST surface the client speaks, from memory, so the CLI and
// TUI can be exercised without the real service.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deepak75500/welledapp-freelance/internal/api"
)

const (
	SeedAdminEmail    = "admin@welled.local"
	SeedAdminPassword = "admin123"
)

type Options struct {
	Secret   string
	TokenTTL time.Duration
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

type Server struct {
	Echo   *echo.Echo
	store  *Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    *slog.Logger
}

// New builds the server with the seed admin account registered.
func New(opts Options) (*Server, error) {
	if opts.Secret == "" {
		return nil, errors.New("devserver: secret is required")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 7 * 24 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		Echo:   echo.New(),
		store:  NewStore(opts.BcryptCost),
		secret: []byte(opts.Secret),
		ttl:    opts.TokenTTL,
		now:    opts.Now,
		log:    opts.Logger,
	}
	if _, err := s.store.Register(SeedAdminEmail, SeedAdminPassword, "admin", api.RoleAdmin); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.HTTPErrorHandler = s.errorHandler
	s.Echo.Use(s.requestLogger())
	s.registerRoutes()
	return s, nil
}

func (s *Server) Store() *Store { return s.store }

func (s *Server) registerRoutes() {
	g := s.Echo.Group("/api")

	g.POST("/auth/login", s.login)
	g.POST("/auth/register", s.register)

	authed := g.Group("", s.requireAuth)
	authed.GET("/auth/me", s.me)
	authed.GET("/tasks/daily", s.dailyTasks)
	authed.PUT("/tasks/daily/:id", s.updateTask)
	authed.POST("/tasks/complete", s.completeAll)
	authed.GET("/tasks/history", s.history)
	authed.GET("/tasks/admin/teachers", s.teachers, s.requireAdmin)
}

// Run serves on addr until ctx is cancelled, then drains for up to 10s.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dev server listening", slog.String("addr", addr))
		errCh <- s.Echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down dev server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type envelope map[string]any

func success(c echo.Context, fields envelope) error {
	body := envelope{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}

// errorHandler renders every failure as {success:false, error}.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var rej *Rejection
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &rej):
		code = rej.Status
		message = rej.Message
	case errors.As(err, &echoErr):
		code = echoErr.Code
		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	default:
		s.log.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
		)
	}

	if err := c.JSON(code, envelope{"success": false, "error": message}); err != nil {
		s.log.Error("write error response", slog.Any("error", err))
	}
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			level := slog.LevelInfo
			if status >= 500 {
				level = slog.LevelError
			} else if status >= 400 {
				level = slog.LevelWarn
			}
			s.log.LogAttrs(req.Context(), level, "request",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", status),
				slog.Duration("latency", time.Since(start)),
			)
			return nil
		}
	}
}
