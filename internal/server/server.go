package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/my2a/courseselect/internal/bootstrap"
)

const (
	shutdownTimeout = 10 * time.Second
	healthTimeout   = 2 * time.Second
)

// database is the part of the connection pool the server owns
type database interface {
	Ping(ctx context.Context) error
	Close()
}

// Server runs the HTTP listener and owns the database pool until shutdown
type Server struct {
	db     database
	logger zerolog.Logger
	http   *http.Server
}

// NewServer loads the configuration, migrates the database and builds the router
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	pool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, bootstrap.BuildDependencies(cfg, pool, lgr), lgr)
	s := &Server{db: pool, logger: lgr}
	s.registerHealthRoutes(router)

	s.http = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return s, nil
}

// registerHealthRoutes adds /ping, which only proves the process answers, and
// /health, which also reaches the database
func (s *Server) registerHealthRoutes(router gin.IRoutes) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
	router.GET("/health", s.health)
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status, dbState, code := "ok", "up", http.StatusOK
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Health check could not reach the database")
		status, dbState, code = "degraded", "down", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "database": dbState, "time": time.Now().UTC()})
}

// Run serves until SIGINT or SIGTERM, then shuts down
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serveErr <- s.http.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			s.db.Close()
			return fmt.Errorf("error starting server: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown signal received")
	}
	return s.Shutdown(context.Background())
}

// Shutdown drains in-flight requests, then closes the pool
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var err error
	if s.http != nil {
		if shutdownErr := s.http.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("http shutdown: %w", shutdownErr)
		}
	}
	if s.db != nil {
		s.db.Close()
	}

	if err != nil {
		s.logger.Error().Err(err).Msg("Server stopped with errors")
		return err
	}
	s.logger.Info().Msg("Server stopped")
	return nil
}
