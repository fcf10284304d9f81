// Package server exposes stored charts over an HTTP API.
//
// Routes:
//
//	POST   /api/charts                        create a chart record
//	GET    /api/charts                        list records, newest first
//	GET    /api/charts/{id}                   fetch a record
//	GET    /api/charts/{id}/render.{format}   render svg, png, pdf, json or dot
//	GET    /api/charts/{id}/tooltip?x=&y=     tooltip items under a point
//	DELETE /api/charts/{id}                   delete a record
//	GET    /healthz                           liveness probe
//
// Errors are JSON objects {"error": ..., "code": ...}; INVALID_* codes map
// to 400 and NOT_FOUND codes to 404.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stackchart/pkg/observability"
	"github.com/matzehuels/stackchart/pkg/pipeline"
	"github.com/matzehuels/stackchart/pkg/store"
)

// Server serves the chart API. It builds one chart per request.
type Server struct {
	cfg    Config
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server. A nil runner renders without caching; a nil logger
// discards output.
func New(cfg Config, st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 8 << 20
	}
	return &Server{cfg: cfg, store: st, runner: runner, logger: logger}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/charts", func(r chi.Router) {
		r.Post("/", s.createChart)
		r.Get("/", s.listCharts)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getChart)
			r.Delete("/", s.deleteChart)
			r.Get("/render.{format}", s.renderChart)
			r.Get("/tooltip", s.tooltip)
		})
	})
	return r
}

// observe logs each request and reports it to the server hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		ctx := r.Context()
		hooks.OnRequest(ctx, r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(ctx); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(ctx, r.Method, route, status, dur)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", dur,
			"request_id", middleware.GetReqID(ctx))
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != http.ErrServerClosed {
		return err
	}
	return nil
}
