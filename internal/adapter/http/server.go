// Package http exposes the service's operational endpoints and the read-only
// JSON views of the latest pipeline run.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RSangDev/weather-analytics-dashboard/internal/domain"
	"github.com/RSangDev/weather-analytics-dashboard/internal/pipeline"
)

// RunSource provides the latest completed run and the service's readiness.
type RunSource interface {
	Latest() *pipeline.RunResult
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and latest-run result routes.
type Server struct {
	httpServer *http.Server
	runs       RunSource
	logger     *slog.Logger
}

// NewServer creates an HTTP server with ops routes (/healthz, /readyz,
// /metrics) and result routes (/api/summary, /api/alerts, /api/rankings,
// /api/patterns).
func NewServer(addr string, runs RunSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		runs:   runs,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/alerts", s.handleAlerts)
	mux.HandleFunc("GET /api/rankings", s.handleRankings)
	mux.HandleFunc("GET /api/patterns", s.handlePatterns)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.runs.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	run, ok := s.latestRun(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		RunID       string                    `json:"run_id"`
		CompletedAt time.Time                 `json:"completed_at"`
		Summary     domain.Summary            `json:"summary"`
		Regional    map[string]domain.Summary `json:"regional"`
	}{run.ID(), run.CompletedAt, run.Summary, run.Regional})
}

// handleAlerts serves the consolidated per-city-per-day view; the raw alert
// list stays available to the persistence and notification collaborators.
func (s *Server) handleAlerts(w http.ResponseWriter, _ *http.Request) {
	run, ok := s.latestRun(w)
	if !ok {
		return
	}
	consolidated := domain.Consolidate(run.Alerts)
	writeJSON(w, http.StatusOK, struct {
		RunID  string                     `json:"run_id"`
		Alerts []domain.ConsolidatedAlert `json:"alerts"`
	}{run.ID(), consolidated})
}

func (s *Server) handleRankings(w http.ResponseWriter, _ *http.Request) {
	run, ok := s.latestRun(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		RunID    string          `json:"run_id"`
		Rankings domain.Rankings `json:"rankings"`
	}{run.ID(), run.Rankings})
}

func (s *Server) handlePatterns(w http.ResponseWriter, _ *http.Request) {
	run, ok := s.latestRun(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		RunID    string          `json:"run_id"`
		Patterns domain.Patterns `json:"patterns"`
	}{run.ID(), run.Patterns})
}

func (s *Server) latestRun(w http.ResponseWriter) (*pipeline.RunResult, bool) {
	run := s.runs.Latest()
	if run == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "no completed run yet",
		})
		return nil, false
	}
	return run, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
