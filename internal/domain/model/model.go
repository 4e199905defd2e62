// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"time"
)

// Role identifies one of the fixed meeting roles.
type Role string

// The fixed role catalogue.
const (
	RoleModerator   Role = "moderator"
	RoleSpeaker     Role = "speaker"
	RoleTimeManager Role = "time_manager"
	RoleCritic      Role = "critic"
	RoleIdeologue   Role = "ideologue"
	RoleMediator    Role = "mediator"
	RoleHarmonizer  Role = "harmonizer"
)

// MeetingType classifies a meeting for role prioritization.
type MeetingType string

// Recognized meeting types.
const (
	MeetingBrainstorm   MeetingType = "brainstorm"
	MeetingReview       MeetingType = "review"
	MeetingPlanning     MeetingType = "planning"
	MeetingStatusUpdate MeetingType = "status_update"
)

// Chronotype captures a participant's circadian disposition. It is
// informational; only the peak-hours window feeds the energy model.
type Chronotype string

// Recognized chronotypes.
const (
	ChronotypeMorning      Chronotype = "morning"
	ChronotypeEvening      Chronotype = "evening"
	ChronotypeIntermediate Chronotype = "intermediate"
)

// Attribute bounds.
const (
	minScore = 0
	maxScore = 100
	minHour  = 0
	maxHour  = 23
)

// ErrInvalidParticipant reports participant attributes outside their
// documented ranges.
var ErrInvalidParticipant = errors.New("invalid participant")

// Participant is a team member eligible for role assignment.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Intelligence scores, 0-100.
	EmotionalIntelligence int `json:"emotional_intelligence"`
	SocialIntelligence    int `json:"social_intelligence"`

	// Biorhythm data. The peak window may wrap past midnight
	// (PeakHoursStart > PeakHoursEnd).
	Chronotype     Chronotype `json:"chronotype"`
	PeakHoursStart int        `json:"peak_hours_start"`
	PeakHoursEnd   int        `json:"peak_hours_end"`
}

// Validate checks attribute ranges. The engine rejects invalid participants
// rather than trusting callers blindly.
func (p Participant) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: missing name", ErrInvalidParticipant)
	case p.EmotionalIntelligence < minScore || p.EmotionalIntelligence > maxScore:
		return fmt.Errorf("%w: emotional_intelligence %d out of [%d,%d]", ErrInvalidParticipant, p.EmotionalIntelligence, minScore, maxScore)
	case p.SocialIntelligence < minScore || p.SocialIntelligence > maxScore:
		return fmt.Errorf("%w: social_intelligence %d out of [%d,%d]", ErrInvalidParticipant, p.SocialIntelligence, minScore, maxScore)
	case p.PeakHoursStart < minHour || p.PeakHoursStart > maxHour:
		return fmt.Errorf("%w: peak_hours_start %d out of [%d,%d]", ErrInvalidParticipant, p.PeakHoursStart, minHour, maxHour)
	case p.PeakHoursEnd < minHour || p.PeakHoursEnd > maxHour:
		return fmt.Errorf("%w: peak_hours_end %d out of [%d,%d]", ErrInvalidParticipant, p.PeakHoursEnd, minHour, maxHour)
	}
	switch p.Chronotype {
	case ChronotypeMorning, ChronotypeEvening, ChronotypeIntermediate:
	default:
		return fmt.Errorf("%w: unknown chronotype %q", ErrInvalidParticipant, p.Chronotype)
	}
	return nil
}

// Meeting describes a scheduled meeting and its invited participants.
type Meeting struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Type           MeetingType `json:"meeting_type"`
	ScheduledAt    time.Time   `json:"scheduled_time"`
	ParticipantIDs []string    `json:"participant_ids"`
}

// Valid reports whether the meeting type is one of the recognized types.
func (t MeetingType) Valid() bool {
	switch t {
	case MeetingBrainstorm, MeetingReview, MeetingPlanning, MeetingStatusUpdate:
		return true
	default:
		return false
	}
}

// Assignment is the engine's output: one participant holding one role for
// one meeting, with the final fitness score kept for transparency.
type Assignment struct {
	MeetingID     string    `json:"meeting_id"`
	ParticipantID string    `json:"participant_id"`
	Role          Role      `json:"role"`
	FitnessScore  float64   `json:"fitness_score"`
	CreatedAt     time.Time `json:"created_at"`
}

// HistoryEntry is one element of a participant's recent-assignment history,
// supplied to the engine most-recent-first.
type HistoryEntry struct {
	ParticipantID string    `json:"participant_id"`
	Role          Role      `json:"role"`
	AssignedAt    time.Time `json:"assigned_at"`
}
