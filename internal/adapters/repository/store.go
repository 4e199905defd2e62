// Package repository defines the assignment store interface and errors.
package repository

import (
	"context"

	"github.com/okian/rolecall/internal/domain/model"
)

// Store provides read/write access to participants, meetings and the
// assignments produced for them. Implementations must make
// ReplaceAssignments atomic: readers never observe a partially replaced
// assignment set.
type Store interface {
	// CreateParticipant stores a participant, assigning an ID when absent.
	CreateParticipant(ctx context.Context, p model.Participant) (model.Participant, error)

	// GetParticipant returns a participant by ID.
	// Returns ErrParticipantNotFound if unknown.
	GetParticipant(ctx context.Context, id string) (model.Participant, error)

	// ListParticipants returns all participants ordered by name.
	ListParticipants(ctx context.Context) ([]model.Participant, error)

	// Participants resolves a set of IDs.
	// Returns ErrParticipantNotFound if any ID is unknown.
	Participants(ctx context.Context, ids []string) ([]model.Participant, error)

	// CreateMeeting stores a meeting, assigning an ID when absent.
	CreateMeeting(ctx context.Context, m model.Meeting) (model.Meeting, error)

	// GetMeeting returns a meeting by ID.
	// Returns ErrMeetingNotFound if unknown.
	GetMeeting(ctx context.Context, id string) (model.Meeting, error)

	// Assignments returns the stored assignments for a meeting.
	// Returns ErrMeetingNotFound if the meeting is unknown.
	Assignments(ctx context.Context, meetingID string) ([]model.Assignment, error)

	// ReplaceAssignments atomically swaps the meeting's assignment set for
	// the given one. On error the previously stored set is unchanged.
	ReplaceAssignments(ctx context.Context, meetingID string, assignments []model.Assignment) error

	// RecentAssignments returns a participant's assignment history ordered
	// most-recent-first, capped at limit entries.
	RecentAssignments(ctx context.Context, participantID string, limit int) ([]model.HistoryEntry, error)

	// Counts returns the number of stored participants, meetings and
	// assignments.
	Counts(ctx context.Context) (participants, meetings, assignments int)
}
