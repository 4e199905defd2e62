// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/rolecall/internal/domain/model"
)

// AssignmentDependencies defines the interface for assignment operations.
type AssignmentDependencies interface {
	RequestRecompute(ctx context.Context, meetingID string) (queued, duplicate bool, err error)
	Assignments(ctx context.Context, meetingID string) ([]model.Assignment, error)
}

// AssignmentsHandler handles assignment requests.
type AssignmentsHandler struct {
	deps AssignmentDependencies
}

// NewAssignmentsHandler creates a new assignments handler.
func NewAssignmentsHandler(deps AssignmentDependencies) *AssignmentsHandler {
	return &AssignmentsHandler{deps: deps}
}

// recomputeRequest mirrors the request schema for POST /assignments.
type recomputeRequest struct {
	MeetingID string `json:"meeting_id"`
}

type recomputeResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// HandlePostRecompute handles POST /assignments requests by queuing an
// asynchronous recompute for the meeting. Requests for a meeting that
// already has a queued recompute are acknowledged as duplicates.
func (h *AssignmentsHandler) HandlePostRecompute(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_recompute"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.MeetingID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing meeting_id")))
		return
	}

	queued, duplicate, err := h.deps.RequestRecompute(r.Context(), req.MeetingID)
	switch {
	case err != nil:
		writeDomainError(w, op, err)
	case duplicate:
		writeJSON(w, http.StatusOK, recomputeResponse{Status: "duplicate", Duplicate: true})
	case !queued:
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
	default:
		writeJSON(w, http.StatusAccepted, recomputeResponse{Status: "accepted", Duplicate: false})
	}
}

// HandleGetAssignments handles GET /assignments/{meeting_id} requests.
func (h *AssignmentsHandler) HandleGetAssignments(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_assignments"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	meetingID := strings.TrimPrefix(r.URL.Path, "/assignments/")
	if meetingID == "" || strings.Contains(meetingID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	assignments, err := h.deps.Assignments(r.Context(), meetingID)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}
