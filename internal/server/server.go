// Package server implements the mazeroute HTTP API.
//
// The API exposes the solve pipeline over HTTP for clients that prefer a
// service to a binary: POST a maze, get the optimal route back. Routing is
// handled by chi; every request carries a request ID, panics become 500
// responses, and each request is logged with its status and duration.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/mazeroute/mazeroute/pkg/pipeline"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// server is told to stop.
const shutdownTimeout = 10 * time.Second

// Server serves the solve API over HTTP.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	http   *http.Server
}

// New creates a server listening on addr, backed by runner.
// If logger is nil, the default logger is used.
func New(runner *pipeline.Runner, logger *log.Logger, addr string) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger,
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the chi router with the full middleware stack.
// It is exposed separately so tests can drive handlers without a listener.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.recoverer)
	r.Use(s.requestLogger)

	r.Post("/v1/solve", s.handleSolve)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/version", s.handleVersion)
	return r
}

// Start runs the server until ctx is canceled, then shuts down gracefully.
// It returns nil after a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
