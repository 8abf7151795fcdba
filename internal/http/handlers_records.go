package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"finsight/internal/normalize"
	"finsight/internal/storage"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.repo.ListExpenses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Listing expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"expenses": expenses,
		"count":    len(expenses),
	})
}

// handleCreateExpense accepts the raw export shape, including the
// Vietnamese field aliases, and stores the canonical record.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodeBody(w, r)
	if !ok {
		return
	}

	exp := normalize.Expense(raw)
	if err := exp.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.repo.InsertExpense(r.Context(), exp)
	if err != nil {
		slog.ErrorContext(r.Context(), "Inserting expense", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store expense")
		return
	}
	exp.ID = id
	writeJSON(w, http.StatusCreated, exp)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.repo.DeleteExpense(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		slog.ErrorContext(r.Context(), "Deleting expense", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListRevenues(w http.ResponseWriter, r *http.Request) {
	revenues, err := s.repo.ListRevenues(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Listing revenues", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list revenues")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"revenues": revenues,
		"count":    len(revenues),
	})
}

func (s *Server) handleCreateRevenue(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodeBody(w, r)
	if !ok {
		return
	}

	rev := normalize.Revenue(raw)
	if err := rev.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.repo.InsertRevenue(r.Context(), rev)
	if err != nil {
		slog.ErrorContext(r.Context(), "Inserting revenue", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store revenue")
		return
	}
	rev.ID = id
	writeJSON(w, http.StatusCreated, rev)
}

func (s *Server) handleDeleteRevenue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.repo.DeleteRevenue(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "revenue not found")
			return
		}
		slog.ErrorContext(r.Context(), "Deleting revenue", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete revenue")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return nil, false
	}
	return raw, true
}
