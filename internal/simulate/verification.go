package simulate

import (
	"context"
	"reflect"

	"github.com/okian/rolecall/pkg/logger"
)

// maxRoles is the number of distinct roles a single meeting can fill.
const maxRoles = 7

// verifyAssignments fetches the stored assignments for every meeting and
// checks the structural invariants: at most one role per participant, no
// role filled twice, every assignee was invited, and a repeated fetch
// returns the same result.
func verifyAssignments(ctx context.Context, client *HTTPClient, config *Config, meetings []Meeting, stats *Stats) error {
	logger.Get().Info(ctx, "verifying assignments", logger.Int("meetings", len(meetings)))

	for _, m := range meetings {
		assignments, err := fetchAssignments(ctx, client, config, m.ID)
		if err != nil {
			return err
		}

		stats.Violations += checkMeeting(ctx, m, assignments)

		// Fetching again must yield the same assignment set.
		again, err := fetchAssignments(ctx, client, config, m.ID)
		if err != nil {
			return err
		}
		if !reflect.DeepEqual(assignments, again) {
			stats.Violations++
			logger.Get().Error(ctx, "assignments changed between fetches",
				logger.String("meetingID", m.ID))
		}

		stats.MeetingsVerified++
	}

	logger.Get().Info(ctx, "verification finished",
		logger.Int("meetingsVerified", stats.MeetingsVerified),
		logger.Int("violations", stats.Violations))
	return nil
}

// checkMeeting validates one meeting's assignments and returns the number
// of violations found.
func checkMeeting(ctx context.Context, m Meeting, assignments []Assignment) int {
	violations := 0

	invited := make(map[string]bool, len(m.ParticipantIDs))
	for _, id := range m.ParticipantIDs {
		invited[id] = true
	}

	seenParticipant := make(map[string]bool, len(assignments))
	seenRole := make(map[string]bool, len(assignments))

	for _, a := range assignments {
		if a.MeetingID != m.ID {
			violations++
			logger.Get().Error(ctx, "assignment belongs to a different meeting",
				logger.String("meetingID", m.ID),
				logger.String("assignmentMeetingID", a.MeetingID))
		}
		if !invited[a.ParticipantID] {
			violations++
			logger.Get().Error(ctx, "assignee was not invited",
				logger.String("meetingID", m.ID),
				logger.String("participantID", a.ParticipantID))
		}
		if seenParticipant[a.ParticipantID] {
			violations++
			logger.Get().Error(ctx, "participant holds more than one role",
				logger.String("meetingID", m.ID),
				logger.String("participantID", a.ParticipantID))
		}
		seenParticipant[a.ParticipantID] = true

		if seenRole[a.Role] {
			violations++
			logger.Get().Error(ctx, "role filled more than once",
				logger.String("meetingID", m.ID),
				logger.String("role", a.Role))
		}
		seenRole[a.Role] = true

		if a.FitnessScore < 0 {
			violations++
			logger.Get().Error(ctx, "negative fitness score",
				logger.String("meetingID", m.ID),
				logger.String("participantID", a.ParticipantID),
				logger.Any("score", a.FitnessScore))
		}
	}

	if len(assignments) > maxRoles {
		violations++
		logger.Get().Error(ctx, "more assignments than roles",
			logger.String("meetingID", m.ID),
			logger.Int("count", len(assignments)))
	}
	if len(assignments) > len(m.ParticipantIDs) {
		violations++
		logger.Get().Error(ctx, "more assignments than invited participants",
			logger.String("meetingID", m.ID),
			logger.Int("count", len(assignments)),
			logger.Int("invited", len(m.ParticipantIDs)))
	}

	return violations
}
