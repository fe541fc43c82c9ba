// Package server exposes the validation HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/WSG23/optimal-build-sub004/pkg/config"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/catalog"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/engine"
	"github.com/WSG23/optimal-build-sub004/pkg/telemetry/metrics"
)

// Server is the validation HTTP API: model documents are posted against
// catalogued rule packs and evaluated on the fly.
type Server struct {
	config    config.ServerConfig
	store     catalog.Store
	evaluator *engine.Evaluator
	collector *metrics.Collector
	logger    *slog.Logger

	http *http.Server
}

// New creates the API server. The metrics collector may be nil, in which
// case the /metrics endpoint is not mounted.
func New(cfg config.ServerConfig, store catalog.Store, evaluator *engine.Evaluator, collector *metrics.Collector, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:    cfg,
		store:     store,
		evaluator: evaluator,
		collector: collector,
		logger:    logger.With("component", "server"),
	}

	s.http = &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// routes builds the chi router.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	if s.collector != nil {
		r.Method(http.MethodGet, "/metrics", s.collector.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/rulepacks", s.handleListPacks)
		r.Get("/rulepacks/{slug}", s.handleGetPack)
		r.Post("/validate/{slug}", s.handleValidate)
	})

	return r
}

// logRequests logs one line per request in the structured log.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.config.ListenAddress)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	s.logger.Info("server shutting down")
	return s.http.Shutdown(shutdownCtx)
}

// Handler returns the server's HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}
