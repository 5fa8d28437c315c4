// Package server exposes the rule engine as a JSON HTTP API with Prometheus
// metrics, hardened response headers and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmorneau/fizzlab/internal/logging"
)

// Server wires the HTTP API: routing, the shared middleware chain, metrics
// and the security policy.
type Server struct {
	config   Config
	security SecurityConfig
	metrics  *Metrics
	logger   logging.Logger
	httpSrv  *http.Server
}

// New builds a server for the given configuration.
func New(cfg Config, logger logging.Logger) *Server {
	s := &Server{
		config:   cfg,
		security: cfg.SecurityConfig(),
		metrics:  NewMetrics(),
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/sequence", s.wrap(s.handleSequence))
	mux.HandleFunc("/api/v1/defaults", s.wrap(s.handleDefaults))
	mux.HandleFunc("/healthz", s.wrap(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrap(s.handleMetrics))

	s.httpSrv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// wrap applies the shared middleware chain to one handler.
func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.metricsMiddleware(s.loggingMiddleware(h)))
}

// loggingMiddleware records one line per served request.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		next(w, r)
		s.logger.Info("request served",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("duration", time.Since(started).String()),
		)
	}
}

// Run serves until ctx is canceled, then drains open connections within the
// shutdown timeout. A closed listener is not reported as an error.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("http server listening", logging.String("addr", s.config.Addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down http server")
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
