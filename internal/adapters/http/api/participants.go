// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/rolecall/internal/domain/model"
)

// ParticipantDependencies defines the interface for participant operations.
type ParticipantDependencies interface {
	CreateParticipant(ctx context.Context, p model.Participant) (model.Participant, error)
	ListParticipants(ctx context.Context) ([]model.Participant, error)
}

// ParticipantsHandler handles participant requests.
type ParticipantsHandler struct {
	deps ParticipantDependencies
}

// NewParticipantsHandler creates a new participants handler.
func NewParticipantsHandler(deps ParticipantDependencies) *ParticipantsHandler {
	return &ParticipantsHandler{deps: deps}
}

// participantRequest mirrors the request schema for POST /participants.
type participantRequest struct {
	Name                  string `json:"name"`
	EmotionalIntelligence int    `json:"emotional_intelligence"`
	SocialIntelligence    int    `json:"social_intelligence"`
	Chronotype            string `json:"chronotype"`
	PeakHoursStart        int    `json:"peak_hours_start"`
	PeakHoursEnd          int    `json:"peak_hours_end"`
}

// HandleParticipants handles POST and GET /participants requests.
func (h *ParticipantsHandler) HandleParticipants(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ParticipantsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_participant"
	var req participantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	p := model.Participant{
		Name:                  req.Name,
		EmotionalIntelligence: req.EmotionalIntelligence,
		SocialIntelligence:    req.SocialIntelligence,
		Chronotype:            model.Chronotype(req.Chronotype),
		PeakHoursStart:        req.PeakHoursStart,
		PeakHoursEnd:          req.PeakHoursEnd,
	}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	created, err := h.deps.CreateParticipant(r.Context(), p)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ParticipantsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_participants"
	participants, err := h.deps.ListParticipants(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, participants)
}
