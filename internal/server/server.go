// ABOUTME: HTTP server for the run and mood API, built on gin.
// ABOUTME: Owns routing, middleware order, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/harperreed/moodrun/internal/tracker"
)

// Defaults applied by New when Config leaves them zero.
const (
	DefaultAddr          = ":5000"
	DefaultAllowedOrigin = "http://localhost:3000"
	DefaultReadTimeout   = 15 * time.Second
	DefaultWriteTimeout  = 15 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Config holds dependencies and settings for the HTTP server.
type Config struct {
	Service *tracker.Service
	Logger  *zap.Logger

	Addr          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	AllowedOrigin string
	Version       string
}

// Server is the moodrun HTTP server.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	logger     *zap.Logger
}

var registerTagNames sync.Once

// New creates a server with all routes configured.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = DefaultAllowedOrigin
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}

	gin.SetMode(gin.ReleaseMode)
	registerTagNames.Do(useJSONFieldNames)

	engine := gin.New()
	engine.Use(
		requestIDMiddleware(),
		tracingMiddleware(),
		loggingMiddleware(cfg.Logger),
		recoveryMiddleware(cfg.Logger),
		corsMiddleware(cfg.AllowedOrigin),
	)

	h := &handlers{svc: cfg.Service, logger: cfg.Logger}
	engine.GET("/", h.hello)
	engine.GET("/health", h.health)

	api := engine.Group("/api")
	{
		api.GET("/recents", h.recents)

		api.GET("/runs", h.listRuns)
		api.POST("/runs", h.createRun)
		api.GET("/runs/:id", h.getRun)
		api.DELETE("/runs/:id", h.deleteRun)

		api.GET("/mood", h.listMoods)
		api.POST("/mood", h.createMood)
		api.GET("/mood/:id", h.getMood)
		api.DELETE("/mood/:id", h.deleteMood)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{Error: "Not found"})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      engine,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		engine: engine,
		logger: cfg.Logger,
	}
}

// Handler returns the root HTTP handler for use in tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.logger.Info("http server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// useJSONFieldNames makes validator report json field names, so
// "Missing required field" messages match the request payload.
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}
