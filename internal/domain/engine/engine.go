// Package engine orchestrates scoring and greedy matching into a
// conflict-free role assignment.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/rolecall/internal/domain/catalog"
	"github.com/okian/rolecall/internal/domain/energy"
	"github.com/okian/rolecall/internal/domain/fitness"
	"github.com/okian/rolecall/internal/domain/history"
	"github.com/okian/rolecall/internal/domain/model"
	"github.com/okian/rolecall/pkg/logger"
	"github.com/okian/rolecall/pkg/metrics"
)

// HistoryLookup supplies a participant's recent assignments, ordered
// most-recent-first and capped at limit entries. Implementations may be
// I/O-bound; the lookup must complete before the participant is scored.
type HistoryLookup interface {
	RecentAssignments(ctx context.Context, participantID string, limit int) ([]model.HistoryEntry, error)
}

// Engine computes role assignments. It carries no mutable state across
// runs: given identical participants, meeting context and history
// snapshots, Assign produces identical output.
type Engine struct {
	requirements catalog.Requirements
	multipliers  catalog.Multipliers
	roles        []model.Role
	matcher      *fitness.Matcher
	history      HistoryLookup
	historyDepth int
	logger       logger.Logger
}

// New creates an Engine over the given history lookup with the default
// tables. Options may inject custom tables for testing.
func New(lookup HistoryLookup, opts ...Option) *Engine {
	e := &Engine{
		requirements: catalog.DefaultRequirements(),
		multipliers:  catalog.DefaultMultipliers(),
		roles:        catalog.Roles(),
		history:      lookup,
		historyDepth: history.MaxEntries,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.matcher = fitness.NewMatcher(e.requirements)
	return e
}

// Requirements exposes the engine's requirement table for read-only use.
func (e *Engine) Requirements() catalog.Requirements { return e.requirements }

// Multipliers exposes the engine's multiplier table for read-only use.
func (e *Engine) Multipliers() catalog.Multipliers { return e.multipliers }

// Assign computes the assignment for one meeting. Energy is computed once
// per participant; every (participant, role) pair is scored as
// base * (1 - penalty) * multiplier, pairs excluded by history are dropped,
// and the greedy solver picks a conflict-free subset.
//
// Output order follows solver commit order; only the set of (participant,
// role, score) triples is semantically meaningful.
func (e *Engine) Assign(ctx context.Context, meetingID string, participants []model.Participant, meetingType model.MeetingType, scheduledAt time.Time) ([]model.Assignment, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("meeting %s: %w", meetingID, ErrNoParticipants)
	}

	start := time.Now()
	meetingHour := scheduledAt.Hour()

	candidates := make([]candidate, 0, len(participants)*len(e.roles))
	excluded := 0

	for _, p := range participants {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("meeting %s: %w", meetingID, err)
		}

		level := energy.Level(p.PeakHoursStart, p.PeakHoursEnd, meetingHour)

		recent, err := e.history.RecentAssignments(ctx, p.ID, e.historyDepth)
		if err != nil {
			return nil, fmt.Errorf("%w: participant %s: %v", ErrHistoryLookup, p.ID, err)
		}

		for _, role := range e.roles {
			base, err := e.matcher.Base(p, role, level)
			if err != nil {
				return nil, fmt.Errorf("meeting %s: %w", meetingID, err)
			}

			penalty, exclude := history.Penalty(recent, role)
			if exclude {
				excluded++
				continue
			}

			candidates = append(candidates, candidate{
				participantID: p.ID,
				name:          p.Name,
				role:          role,
				score:         base * (1 - penalty) * e.multipliers.For(meetingType, role),
			})
		}
	}

	picked := solve(candidates, len(e.roles))

	now := time.Now()
	assignments := make([]model.Assignment, len(picked))
	for i, c := range picked {
		assignments[i] = model.Assignment{
			MeetingID:     meetingID,
			ParticipantID: c.participantID,
			Role:          c.role,
			FitnessScore:  c.score,
			CreatedAt:     now,
		}
	}

	metrics.RecordCandidatesScored(len(candidates))
	metrics.RecordCandidatesExcluded(excluded)
	metrics.RecordAssignmentsComputed(len(assignments))
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))

	if e.logger != nil {
		e.logger.Debug(ctx, "assignment computed",
			logger.String("meetingID", meetingID),
			logger.Int("participants", len(participants)),
			logger.Int("candidates", len(candidates)),
			logger.Int("excluded", excluded),
			logger.Int("assigned", len(assignments)),
		)
	}

	return assignments, nil
}
