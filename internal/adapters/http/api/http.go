// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/rolecall/internal/adapters/repository"
	"github.com/okian/rolecall/internal/domain/catalog"
	"github.com/okian/rolecall/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Participant management.
	CreateParticipant(ctx context.Context, p model.Participant) (model.Participant, error)
	ListParticipants(ctx context.Context) ([]model.Participant, error)

	// Meeting management.
	CreateMeeting(ctx context.Context, m model.Meeting) (model.Meeting, error)
	GetMeeting(ctx context.Context, id string) (model.Meeting, error)

	// Assignment operations.
	RequestRecompute(ctx context.Context, meetingID string) (queued, duplicate bool, err error)
	Assignments(ctx context.Context, meetingID string) ([]model.Assignment, error)
	History(ctx context.Context, participantID string, limit int) ([]model.HistoryEntry, error)

	// Read-only configuration tables.
	RoleRequirements() catalog.Requirements
	MeetingMultipliers() catalog.Multipliers
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	participantsHandler *ParticipantsHandler
	meetingsHandler     *MeetingsHandler
	assignmentsHandler  *AssignmentsHandler
	historyHandler      *HistoryHandler
	settingsHandler     *SettingsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxHistoryLimit int) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		participantsHandler: NewParticipantsHandler(deps),
		meetingsHandler:     NewMeetingsHandler(deps),
		assignmentsHandler:  NewAssignmentsHandler(deps),
		historyHandler:      NewHistoryHandler(deps, maxHistoryLimit),
		settingsHandler:     NewSettingsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/participants", MetricsMiddleware(s.participantsHandler.HandleParticipants, "participants"))
	mux.HandleFunc("/meetings", MetricsMiddleware(s.meetingsHandler.HandlePostMeeting, "meetings"))
	mux.HandleFunc("/meetings/", MetricsMiddleware(s.meetingsHandler.HandleGetMeeting, "meetings"))
	mux.HandleFunc("/assignments", MetricsMiddleware(s.assignmentsHandler.HandlePostRecompute, "assignments"))
	mux.HandleFunc("/assignments/", MetricsMiddleware(s.assignmentsHandler.HandleGetAssignments, "assignments"))
	mux.HandleFunc("/history/", MetricsMiddleware(s.historyHandler.HandleGetHistory, "history"))
	mux.HandleFunc("/settings/role-requirements", MetricsMiddleware(s.settingsHandler.HandleRoleRequirements, "settings"))
	mux.HandleFunc("/settings/meeting-multipliers", MetricsMiddleware(s.settingsHandler.HandleMeetingMultipliers, "settings"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates domain error kinds to HTTP statuses.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrMeetingNotFound),
		errors.Is(err, repository.ErrParticipantNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, model.ErrInvalidParticipant),
		errors.Is(err, repository.ErrDuplicateID):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
