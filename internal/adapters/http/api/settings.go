// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/rolecall/internal/domain/catalog"
)

// SettingsDependencies exposes the engine's read-only configuration tables.
type SettingsDependencies interface {
	RoleRequirements() catalog.Requirements
	MeetingMultipliers() catalog.Multipliers
}

// SettingsHandler serves the algorithm configuration tables.
type SettingsHandler struct {
	deps SettingsDependencies
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(deps SettingsDependencies) *SettingsHandler {
	return &SettingsHandler{deps: deps}
}

// HandleRoleRequirements handles GET /settings/role-requirements requests.
func (h *SettingsHandler) HandleRoleRequirements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.RoleRequirements())
}

// HandleMeetingMultipliers handles GET /settings/meeting-multipliers requests.
func (h *SettingsHandler) HandleMeetingMultipliers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.MeetingMultipliers())
}
