// Package host exposes the instruction pipeline over HTTP: instruction
// submission, object listing, a websocket stream of canvas changes, and
// Prometheus metrics.
package host

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sketchflow/sketchflow/internal/agent"
	"github.com/sketchflow/sketchflow/internal/canvas"
	"github.com/sketchflow/sketchflow/internal/config"
)

// Server is the HTTP host.
type Server struct {
	agent  *agent.Agent
	svc    *canvas.Service
	cfg    config.HostConfig
	logger *slog.Logger
	http   *http.Server
}

// NewServer wires the routes over an agent and its canvas service.
func NewServer(a *agent.Agent, svc *canvas.Service, cfg config.HostConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		agent:  a,
		svc:    svc,
		cfg:    cfg,
		logger: logger.With("component", "host"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/instruction", s.handleInstruction)
	mux.HandleFunc("GET /api/objects", s.handleObjects)
	mux.HandleFunc("GET /api/stream", s.handleStream)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the route tree, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// canvasID picks the canvas named in the request, falling back to the
// configured default.
func (s *Server) canvasID(value string) string {
	if value != "" {
		return value
	}
	return s.cfg.DefaultCanvas
}
