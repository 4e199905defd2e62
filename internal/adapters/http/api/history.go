// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/rolecall/internal/domain/model"
)

// Default and maximum history page sizes.
const defaultHistoryLimit = 10

// HistoryDependencies defines the interface for history operations.
type HistoryDependencies interface {
	History(ctx context.Context, participantID string, limit int) ([]model.HistoryEntry, error)
}

// HistoryHandler handles participant history requests.
type HistoryHandler struct {
	deps     HistoryDependencies
	maxLimit int
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(deps HistoryDependencies, maxLimit int) *HistoryHandler {
	return &HistoryHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetHistory handles GET /history/{participant_id}?limit=N requests.
func (h *HistoryHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_history"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	participantID := strings.TrimPrefix(r.URL.Path, "/history/")
	if participantID == "" || strings.Contains(participantID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	limit := defaultHistoryLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	entries, err := h.deps.History(r.Context(), participantID, limit)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
