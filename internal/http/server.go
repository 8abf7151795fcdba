// Package http exposes the record store and the reporting engine as a
// JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"finsight/internal/middleware/ratelimit"
	"finsight/internal/middleware/security"
	"finsight/internal/middleware/trace"
	"finsight/internal/services"
	"finsight/internal/storage"
)

// Server wires the report service and repository into an HTTP server with
// the shared middleware chain.
type Server struct {
	reports *services.ReportService
	repo    storage.Repository
	httpSrv *http.Server
}

func NewServer(addr string, reports *services.ReportService, repo storage.Repository) *Server {
	s := &Server{
		reports: reports,
		repo:    repo,
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(trace.Middleware)
	r.Use(security.Headers)
	r.Use(ratelimit.Middleware(ratelimit.DefaultConfig()))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", s.handleSummary)
			r.Get("/breakdown", s.handleBreakdown)
			r.Get("/comparison", s.handleComparison)
		})
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", s.handleListExpenses)
			r.Post("/", s.handleCreateExpense)
			r.Delete("/{id}", s.handleDeleteExpense)
		})
		r.Route("/revenues", func(r chi.Router) {
			r.Get("/", s.handleListRevenues)
			r.Post("/", s.handleCreateRevenue)
			r.Delete("/{id}", s.handleDeleteRevenue)
		})
	})

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Start blocks serving requests until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	slog.Info("Starting HTTP server", "addr", s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.repo.SnapshotVersion(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
