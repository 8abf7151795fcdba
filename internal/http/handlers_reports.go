package http

import (
	"log/slog"
	"net/http"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	rng, ok := parseRange(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "from and to must both be YYYY-MM-DD with from <= to")
		return
	}

	report, err := s.reports.Summary(r.Context(), rng)
	if err != nil {
		slog.ErrorContext(r.Context(), "Building summary report", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseYearMonth(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "year and month must be positive integers, month in 1..12")
		return
	}

	breakdown, err := s.reports.Breakdown(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Building breakdown report", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build breakdown")
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseYearMonth(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "year and month must be positive integers, month in 1..12")
		return
	}

	report, err := s.reports.Comparison(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Building comparison report", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build comparison")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
