// Package server exposes the bot's liveness, readiness and link table over HTTP.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/whitelink/internal/server/handlers"
	"github.com/agentstation/whitelink/pkg/constants"
	"github.com/agentstation/whitelink/pkg/errors"
	"github.com/agentstation/whitelink/pkg/logging"
)

// Server serves the health endpoints for one engine.
type Server struct {
	source    handlers.Source
	logger    *zerolog.Logger
	config    Config
	startTime time.Time
}

// New returns a server reporting on source.
func New(source handlers.Source, cfg Config, logger *zerolog.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = DefaultConfig().PathPrefix
	}
	return &Server{
		source:    source,
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Run listens on the configured address until ctx is done, then shuts down
// within constants.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return errors.WrapResource("listen", "health server", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("Health server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.WrapResource("serve", "health server", s.config.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	s.logger.Info().Msg("Shutting down health server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.WrapResource("shutdown", "health server", s.config.Addr, err)
	}
	return nil
}
