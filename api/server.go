package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/siherrmann/ranker/config"
)

// Server is the HTTP server of the ranker API
type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

// NewServer creates a Server listening on the configured address
func NewServer(cfg config.HTTPConfig, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		log: logger,
	}
}

// Start blocks serving requests until the server is shut down
func (s *Server) Start() error {
	s.log.Info("Starting API server", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for active requests until ctx is done
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
