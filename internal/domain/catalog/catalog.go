// Package catalog holds the static role requirement and meeting multiplier
// tables. The tables are immutable value types injected into the engine so
// instances remain independently testable with custom tables.
package catalog

import (
	"github.com/okian/rolecall/internal/domain/model"
)

// Default multiplier applied when a meeting type or role is absent from the
// multiplier table.
const defaultMultiplier = 1.0

// Requirement defines the acceptable EI/SI/energy ranges for one role.
// All values are on the 0-100 scale.
type Requirement struct {
	EIMin     int `json:"ei_min"`
	EIMax     int `json:"ei_max"`
	SIMin     int `json:"si_min"`
	SIMax     int `json:"si_max"`
	EnergyMin int `json:"energy_min"`
	EnergyMax int `json:"energy_max"`
}

// Requirements maps each role to its requirement ranges.
type Requirements map[model.Role]Requirement

// Multipliers maps meeting types to per-role context weights.
type Multipliers map[model.MeetingType]map[model.Role]float64

// Roles returns the fixed role catalogue in its canonical order. The order
// matters for deterministic candidate generation, not for output semantics.
func Roles() []model.Role {
	return []model.Role{
		model.RoleModerator,
		model.RoleSpeaker,
		model.RoleTimeManager,
		model.RoleCritic,
		model.RoleIdeologue,
		model.RoleMediator,
		model.RoleHarmonizer,
	}
}

// DefaultRequirements returns the role requirement matrix.
func DefaultRequirements() Requirements {
	return Requirements{
		model.RoleModerator:   {EIMin: 75, EIMax: 100, SIMin: 75, SIMax: 100, EnergyMin: 70, EnergyMax: 100},
		model.RoleSpeaker:     {EIMin: 60, EIMax: 85, SIMin: 75, SIMax: 100, EnergyMin: 80, EnergyMax: 100},
		model.RoleTimeManager: {EIMin: 50, EIMax: 75, SIMin: 30, SIMax: 60, EnergyMin: 60, EnergyMax: 90},
		model.RoleCritic:      {EIMin: 60, EIMax: 85, SIMin: 50, SIMax: 75, EnergyMin: 40, EnergyMax: 70},
		model.RoleIdeologue:   {EIMin: 50, EIMax: 75, SIMin: 60, SIMax: 85, EnergyMin: 75, EnergyMax: 100},
		model.RoleMediator:    {EIMin: 80, EIMax: 100, SIMin: 70, SIMax: 95, EnergyMin: 65, EnergyMax: 90},
		model.RoleHarmonizer:  {EIMin: 70, EIMax: 95, SIMin: 75, SIMax: 100, EnergyMin: 60, EnergyMax: 85},
	}
}

// DefaultMultipliers returns the meeting-type multiplier table. Values stay
// within [0.5, 1.5]; brainstorms favor generative roles, reviews favor
// critical ones, status updates favor pace-keeping ones.
func DefaultMultipliers() Multipliers {
	return Multipliers{
		model.MeetingBrainstorm: {
			model.RoleModerator:   1.5,
			model.RoleIdeologue:   1.5,
			model.RoleHarmonizer:  1.3,
			model.RoleCritic:      0.5,
			model.RoleTimeManager: 0.7,
			model.RoleSpeaker:     1.0,
			model.RoleMediator:    1.0,
		},
		model.MeetingReview: {
			model.RoleModerator:   1.4,
			model.RoleCritic:      1.5,
			model.RoleMediator:    1.3,
			model.RoleIdeologue:   0.6,
			model.RoleSpeaker:     0.8,
			model.RoleTimeManager: 1.0,
			model.RoleHarmonizer:  1.0,
		},
		model.MeetingPlanning: {
			model.RoleModerator:   1.3,
			model.RoleTimeManager: 1.4,
			model.RoleCritic:      1.2,
			model.RoleHarmonizer:  0.8,
			model.RoleSpeaker:     1.0,
			model.RoleIdeologue:   1.0,
			model.RoleMediator:    1.0,
		},
		model.MeetingStatusUpdate: {
			model.RoleSpeaker:     1.4,
			model.RoleTimeManager: 1.5,
			model.RoleModerator:   1.2,
			model.RoleIdeologue:   0.5,
			model.RoleMediator:    0.6,
			model.RoleCritic:      1.0,
			model.RoleHarmonizer:  1.0,
		},
	}
}

// For returns the context multiplier for a meeting type and role, defaulting
// to 1.0 when either is absent from the table.
func (m Multipliers) For(meetingType model.MeetingType, role model.Role) float64 {
	byRole, ok := m[meetingType]
	if !ok {
		return defaultMultiplier
	}
	mult, ok := byRole[role]
	if !ok {
		return defaultMultiplier
	}
	return mult
}

// WithOverrides returns a copy of the table with the given overrides layered
// on top. Keys are plain strings so overrides can come straight from
// configuration. Unknown meeting types or roles are carried as-is; the
// engine simply never consults them.
func (m Multipliers) WithOverrides(overrides map[string]map[string]float64) Multipliers {
	out := make(Multipliers, len(m))
	for mt, byRole := range m {
		cp := make(map[model.Role]float64, len(byRole))
		for r, v := range byRole {
			cp[r] = v
		}
		out[mt] = cp
	}
	for mt, byRole := range overrides {
		dst, ok := out[model.MeetingType(mt)]
		if !ok {
			dst = make(map[model.Role]float64, len(byRole))
			out[model.MeetingType(mt)] = dst
		}
		for r, v := range byRole {
			dst[model.Role(r)] = v
		}
	}
	return out
}
