// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/rolecall/internal/domain/model"
)

// MeetingDependencies defines the interface for meeting operations.
type MeetingDependencies interface {
	CreateMeeting(ctx context.Context, m model.Meeting) (model.Meeting, error)
	GetMeeting(ctx context.Context, id string) (model.Meeting, error)
}

// MeetingsHandler handles meeting requests.
type MeetingsHandler struct {
	deps MeetingDependencies
}

// NewMeetingsHandler creates a new meetings handler.
func NewMeetingsHandler(deps MeetingDependencies) *MeetingsHandler {
	return &MeetingsHandler{deps: deps}
}

// meetingRequest mirrors the request schema for POST /meetings.
type meetingRequest struct {
	Title          string   `json:"title"`
	MeetingType    string   `json:"meeting_type"`
	ScheduledTime  string   `json:"scheduled_time"`
	ParticipantIDs []string `json:"participant_ids"`
}

func (m meetingRequest) validate() error {
	switch {
	case strings.TrimSpace(m.Title) == "":
		return errors.New("missing title")
	case strings.TrimSpace(m.MeetingType) == "":
		return errors.New("missing meeting_type")
	case strings.TrimSpace(m.ScheduledTime) == "":
		return errors.New("missing scheduled_time")
	}
	if !model.MeetingType(m.MeetingType).Valid() {
		return errors.New("unknown meeting_type")
	}
	if _, err := time.Parse(time.RFC3339, m.ScheduledTime); err != nil {
		return errors.New("invalid scheduled_time; must be RFC3339")
	}
	return nil
}

// HandlePostMeeting handles POST /meetings requests.
func (h *MeetingsHandler) HandlePostMeeting(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_meeting"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req meetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	scheduledAt, _ := time.Parse(time.RFC3339, req.ScheduledTime)
	meeting := model.Meeting{
		Title:          req.Title,
		Type:           model.MeetingType(req.MeetingType),
		ScheduledAt:    scheduledAt,
		ParticipantIDs: req.ParticipantIDs,
	}

	created, err := h.deps.CreateMeeting(r.Context(), meeting)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleGetMeeting handles GET /meetings/{id} requests.
func (h *MeetingsHandler) HandleGetMeeting(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_meeting"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/meetings/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	meeting, err := h.deps.GetMeeting(r.Context(), id)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, meeting)
}
