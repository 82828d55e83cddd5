package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/slok/nudge/internal/conventions"
	"github.com/slok/nudge/internal/log"
)

// ServerConfig is the configuration of the HTTP server.
type ServerConfig struct {
	Handler       http.Handler
	ListenAddress string
	// ShutdownTimeout is the time in-flight requests have to finish on stop.
	ShutdownTimeout time.Duration
	Logger          log.Logger
}

func (c *ServerConfig) defaults() error {
	if c.Handler == nil {
		return fmt.Errorf("handler is required")
	}

	if c.ListenAddress == "" {
		c.ListenAddress = conventions.DefaultListenAddress
	}

	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "api.Server"})

	return nil
}

// Server serves the API until its context is cancelled.
type Server struct {
	server          *http.Server
	shutdownTimeout time.Duration
	logger          log.Logger
}

// NewServer returns a new HTTP server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Server{
		server: &http.Server{
			Addr:              cfg.ListenAddress,
			Handler:           cfg.Handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          cfg.Logger,
	}, nil
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", s.server.Addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then waits for in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errC := make(chan error, 1)
	go func() {
		s.logger.Infof("HTTP API listening on %s", ln.Addr())
		errC <- s.server.Serve(ln)
	}()

	select {
	case err := <-errC:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not shutdown http server: %w", err)
	}
	s.logger.Infof("HTTP API stopped")

	return nil
}
