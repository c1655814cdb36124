package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/nambse/gelirgider/internal/core"
	"github.com/nambse/gelirgider/internal/storage"
	"github.com/nambse/gelirgider/internal/store"
)

// categoryResponse decorates a category with its display metadata.
type categoryResponse struct {
	core.Category
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

type projectionResponse struct {
	Transactions []core.Transaction `json:"transactions"`
	Categories   []categoryResponse `json:"categories"`
	MonthlyStats core.MonthlyStats  `json:"monthlyStats"`
}

type weeklyResponse struct {
	core.WeeklyAggregate
	Days   [7]float64 `json:"days"`
	Labels [7]string  `json:"labels"`
}

func toProjectionResponse(p store.Projection) projectionResponse {
	resp := projectionResponse{
		Transactions: p.Transactions,
		Categories:   make([]categoryResponse, len(p.Categories)),
		MonthlyStats: p.MonthlyStats,
	}
	for i, c := range p.Categories {
		resp.Categories[i] = categoryResponse{Category: c, Color: c.Color(), Emoji: c.Emoji()}
	}
	return resp
}

// handleHealth performs a basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodPost:
		s.handleAddTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleListTransactions refreshes and returns the projection. A failed
// refresh degrades to the last good snapshot; the client keeps rendering
// stale-but-consistent data.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	if err := s.store.FetchAll(r.Context()); err != nil {
		s.logger.WarnContext(r.Context(), "Serving stale projection after fetch failure", "error", err)
	}
	respondJSON(w, http.StatusOK, toProjectionResponse(s.store.Snapshot()))
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var in core.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.Description = sanitizeInput(in.Description)

	if err := in.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if !s.categoryMatchesType(r, in.CategoryID, in.Type) {
		respondError(w, http.StatusUnprocessableEntity, "category does not exist or does not match transaction type")
		return
	}

	created, err := s.store.Add(r.Context(), in)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to add transaction", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDFromPath(r.URL.Path, "/api/transactions/")
	if !ok {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.handleEditTransaction(w, r, id)
	case http.MethodDelete:
		s.handleDeleteTransaction(w, r, id)
	default:
		w.Header().Set("Allow", "PUT, DELETE")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleEditTransaction(w http.ResponseWriter, r *http.Request, id int64) {
	var tx core.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tx.ID = id
	tx.Description = sanitizeInput(tx.Description)

	if err := tx.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if !s.categoryMatchesType(r, tx.CategoryID, tx.Type) {
		respondError(w, http.StatusUnprocessableEntity, "category does not exist or does not match transaction type")
		return
	}

	if err := s.store.Edit(r.Context(), tx); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		s.logger.ErrorContext(r.Context(), "Failed to edit transaction", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to update transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request, id int64) {
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to delete transaction", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleWeeklySummary serves the weekly bar-chart aggregate. Missing range
// parameters default to the current Sunday-start week; the type parameter
// accepts canonical and Turkish labels and defaults to Income.
func (s *Server) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	start, end := core.WeekRange(time.Now())
	if v := query.Get("start"); v != "" {
		start = v
	}
	if v := query.Get("end"); v != "" {
		end = v
	}
	if core.ValidateDate(start) != nil || core.ValidateDate(end) != nil {
		respondError(w, http.StatusBadRequest, "start and end must be YYYY-MM-DD dates")
		return
	}
	if end < start {
		respondError(w, http.StatusBadRequest, "end must not precede start")
		return
	}

	typ := core.TypeIncome
	if v := query.Get("type"); v != "" {
		parsed, ok := parseTransactionType(v)
		if !ok {
			respondError(w, http.StatusBadRequest, "type must be Income/Gelir or Expense/Gider")
			return
		}
		typ = parsed
	}

	if err := s.store.FetchWeekly(r.Context(), start, end, typ); err != nil {
		s.logger.WarnContext(r.Context(), "Serving stale weekly aggregate after fetch failure", "error", err)
	}

	weekly := s.store.Weekly()
	respondJSON(w, http.StatusOK, weeklyResponse{
		WeeklyAggregate: weekly,
		Days:            weekly.FillDays(),
		Labels:          core.TurkishDayLabels,
	})
}

// categoryMatchesType enforces the creation-time invariant the original UI
// enforced: the referenced category must exist and carry the same type.
// Storage itself never checks this.
func (s *Server) categoryMatchesType(r *http.Request, categoryID int64, typ core.TransactionType) bool {
	cat, ok := s.store.CategoryByID(categoryID)
	if !ok {
		// Projection may be empty before the first successful fetch.
		if err := s.store.FetchAll(r.Context()); err != nil {
			return false
		}
		if cat, ok = s.store.CategoryByID(categoryID); !ok {
			return false
		}
	}
	return cat.Type == typ
}
