// Package http exposes the planning engine over a small JSON API:
// solve a named scenario, fetch stored reports, and scrape metrics.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/gantry"
	"github.com/aretw0/gantry/internal/logging"
	"github.com/aretw0/gantry/pkg/domain"
)

// ErrUnknownScenario is returned by a SolveRunner for a scenario name
// it does not know.
var ErrUnknownScenario = errors.New("unknown scenario")

// SolveRunner is the planning surface the server exposes. The CLI wires
// a fresh world per solve behind this interface.
type SolveRunner interface {
	Solve(ctx context.Context, scenario string, opts gantry.RunOptions) (*gantry.Result, error)
	Report(ctx context.Context, id string) (*domain.Report, error)
	Reports(ctx context.Context) ([]string, error)
}

// Server handles the JSON API.
type Server struct {
	runner    SolveRunner
	scenarios func() []string
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler builds the HTTP handler around a solve runner.
func NewHandler(runner SolveRunner, scenarios func() []string, opts ...Option) http.Handler {
	s := &Server{runner: runner, scenarios: scenarios, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Get("/scenarios", s.getScenarios)
	r.Post("/solve", s.postSolve)
	r.Get("/reports", s.getReports)
	r.Get("/reports/{id}", s.getReport)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// SolveRequest is the POST /solve body.
type SolveRequest struct {
	Scenario  string `json:"scenario"`
	MaxTimeMS int    `json:"max_time_ms,omitempty"`
	Strategy  string `json:"strategy,omitempty"`
	Visualize bool   `json:"visualize,omitempty"`
}

// SolveResponse is the POST /solve reply.
type SolveResponse struct {
	Report   domain.Report `json:"report"`
	Commands []string      `json:"commands,omitempty"`
}

func (s *Server) postSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("solve: invalid request body", "err", err)
		return
	}
	if req.Scenario == "" {
		http.Error(w, "Missing scenario", http.StatusBadRequest)
		return
	}

	res, err := s.runner.Solve(r.Context(), req.Scenario, gantry.RunOptions{
		MaxTime:   time.Duration(req.MaxTimeMS) * time.Millisecond,
		Strategy:  req.Strategy,
		Visualize: req.Visualize,
	})
	if err != nil {
		if errors.Is(err, ErrUnknownScenario) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Solve error: %v", err), http.StatusInternalServerError)
		s.logger.Error("solve failed", "scenario", req.Scenario, "err", err)
		return
	}

	resp := SolveResponse{Report: res.Report}
	for _, cmd := range res.Commands {
		resp.Commands = append(resp.Commands, cmd.String())
	}
	writeJSON(w, s.logger, resp)
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	report, err := s.runner.Report(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			http.Error(w, "Report not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("load report failed", "id", id, "err", err)
		return
	}
	writeJSON(w, s.logger, report)
}

func (s *Server) getReports(w http.ResponseWriter, r *http.Request) {
	ids, err := s.runner.Reports(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("list reports failed", "err", err)
		return
	}
	writeJSON(w, s.logger, map[string][]string{"reports": ids})
}

func (s *Server) getScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string][]string{"scenarios": s.scenarios()})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{
		"app":     "gantry-http",
		"version": gantry.Version,
	})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
