package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"finsight/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// parseYearMonth extracts year and month query parameters. Both default
// to zero, which downstream resolves to the current month. A month
// outside 1..12 is rejected.
func parseYearMonth(r *http.Request) (year, month int, ok bool) {
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 {
			return 0, 0, false
		}
		year = y
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, false
		}
		month = m
	}
	return year, month, true
}

// parseRange reads the from/to query parameters as an inclusive date
// range. Omitting both means all time; a lone or malformed bound is an
// error.
func parseRange(r *http.Request) (core.DateRange, bool) {
	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" && to == "" {
		return core.DateRange{}, true
	}
	if from == "" || to == "" {
		return core.DateRange{}, false
	}

	start, err := parseDate(from)
	if err != nil {
		return core.DateRange{}, false
	}
	end, err := parseDate(to)
	if err != nil {
		return core.DateRange{}, false
	}

	rng := core.NewDateRange(start, end)
	if rng.Validate() != nil {
		return core.DateRange{}, false
	}
	return rng, true
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return core.Date{}, err
	}
	return core.DateOf(t), nil
}
