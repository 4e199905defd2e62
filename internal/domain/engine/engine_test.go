package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/rolecall/internal/domain/catalog"
	engine "github.com/okian/rolecall/internal/domain/engine"
	"github.com/okian/rolecall/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// stubHistory serves canned history per participant.
type stubHistory struct {
	entries map[string][]model.HistoryEntry
	err     error
}

func (s *stubHistory) RecentAssignments(_ context.Context, participantID string, limit int) ([]model.HistoryEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	recent := s.entries[participantID]
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}

func repeatedRole(role model.Role, count int) []model.HistoryEntry {
	out := make([]model.HistoryEntry, count)
	for i := range out {
		out[i] = model.HistoryEntry{Role: role}
	}
	return out
}

func participant(id, name string, ei, si, peakStart, peakEnd int) model.Participant {
	return model.Participant{
		ID:                    id,
		Name:                  name,
		EmotionalIntelligence: ei,
		SocialIntelligence:    si,
		Chronotype:            model.ChronotypeIntermediate,
		PeakHoursStart:        peakStart,
		PeakHoursEnd:          peakEnd,
	}
}

// meetingAt schedules a meeting at the given hour so the energy model sees
// a known meeting time.
func meetingAt(hour int) time.Time {
	return time.Date(2026, time.March, 2, hour, 0, 0, 0, time.UTC)
}

func TestEngine_Assign(t *testing.T) {
	ctx := context.Background()

	Convey("Given an engine over a full roster of strong candidates", t, func() {
		lookup := &stubHistory{entries: map[string][]model.HistoryEntry{}}
		eng := engine.New(lookup)

		// Seven participants peaking around 10:00, all valid for most roles.
		roster := []model.Participant{
			participant("p-1", "Alice", 85, 85, 9, 12),
			participant("p-2", "Boris", 70, 90, 8, 11),
			participant("p-3", "Carmen", 60, 45, 9, 12),
			participant("p-4", "Dmitri", 72, 60, 9, 12),
			participant("p-5", "Elena", 65, 75, 9, 12),
			participant("p-6", "Farid", 90, 80, 8, 11),
			participant("p-7", "Greta", 80, 88, 9, 12),
		}

		Convey("When assigning a brainstorm at 10:00", func() {
			got, err := eng.Assign(ctx, "m-1", roster, model.MeetingBrainstorm, meetingAt(10))

			Convey("Then every role is filled exactly once", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 7)

				roles := map[model.Role]bool{}
				people := map[string]bool{}
				for _, a := range got {
					So(roles[a.Role], ShouldBeFalse)
					So(people[a.ParticipantID], ShouldBeFalse)
					roles[a.Role] = true
					people[a.ParticipantID] = true
					So(a.MeetingID, ShouldEqual, "m-1")
					So(a.FitnessScore, ShouldBeGreaterThan, 0)
				}
			})

			Convey("Then a second run over the same inputs is identical", func() {
				So(err, ShouldBeNil)
				again, err := eng.Assign(ctx, "m-1", roster, model.MeetingBrainstorm, meetingAt(10))
				So(err, ShouldBeNil)
				So(again, ShouldHaveLength, len(got))
				for i := range got {
					So(again[i].ParticipantID, ShouldEqual, got[i].ParticipantID)
					So(again[i].Role, ShouldEqual, got[i].Role)
					So(again[i].FitnessScore, ShouldEqual, got[i].FitnessScore)
				}
			})
		})

		Convey("When more participants than roles are invited", func() {
			extended := append(roster,
				participant("p-8", "Hugo", 75, 75, 9, 12),
				participant("p-9", "Irina", 75, 75, 9, 12),
			)
			got, err := eng.Assign(ctx, "m-2", extended, model.MeetingPlanning, meetingAt(10))

			Convey("Then exactly seven assignments come back", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 7)
			})
		})

		Convey("When fewer participants than roles are invited", func() {
			got, err := eng.Assign(ctx, "m-3", roster[:3], model.MeetingReview, meetingAt(10))

			Convey("Then every participant gets exactly one role", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 3)
			})
		})
	})

	Convey("Given identically-scored participants", t, func() {
		lookup := &stubHistory{}
		eng := engine.New(lookup, engine.WithRoles([]model.Role{model.RoleModerator}))

		roster := []model.Participant{
			participant("p-b", "Boris", 85, 85, 9, 12),
			participant("p-a", "Alice", 85, 85, 9, 12),
		}

		Convey("When only one role is available", func() {
			got, err := eng.Assign(ctx, "m-4", roster, model.MeetingBrainstorm, meetingAt(10))

			Convey("Then the tie breaks by ascending name", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].ParticipantID, ShouldEqual, "p-a")
			})
		})
	})

	Convey("Given a participant with repetition history", t, func() {
		clean := participant("p-1", "Alice", 70, 60, 9, 12)

		score := func(lookup *stubHistory, mt model.MeetingType) float64 {
			eng := engine.New(lookup, engine.WithRoles([]model.Role{model.RoleCritic}))
			got, err := eng.Assign(ctx, "m-5", []model.Participant{clean}, mt, meetingAt(14))
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			return got[0].FitnessScore
		}

		Convey("When the role was held twice in a row", func() {
			cleanScore := score(&stubHistory{}, model.MeetingPlanning)
			penalized := score(&stubHistory{entries: map[string][]model.HistoryEntry{
				"p-1": repeatedRole(model.RoleCritic, 2),
			}}, model.MeetingPlanning)

			Convey("Then the final score carries the 0.4 discount", func() {
				So(penalized, ShouldAlmostEqual, cleanScore*0.6, 1e-9)
			})
		})

		Convey("When the role was held three times in a row", func() {
			cleanScore := score(&stubHistory{}, model.MeetingPlanning)
			penalized := score(&stubHistory{entries: map[string][]model.HistoryEntry{
				"p-1": repeatedRole(model.RoleCritic, 3),
			}}, model.MeetingPlanning)

			Convey("Then the final score carries the 0.7 discount", func() {
				So(penalized, ShouldAlmostEqual, cleanScore*0.3, 1e-9)
			})
		})

		Convey("When the role was held four times in a row", func() {
			lookup := &stubHistory{entries: map[string][]model.HistoryEntry{
				"p-1": repeatedRole(model.RoleCritic, 4),
			}}
			eng := engine.New(lookup, engine.WithRoles([]model.Role{model.RoleCritic}))
			got, err := eng.Assign(ctx, "m-6", []model.Participant{clean}, model.MeetingPlanning, meetingAt(14))

			Convey("Then the participant is excluded and the role stays open", func() {
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})

			Convey("And another participant picks up the role instead", func() {
				other := participant("p-2", "Boris", 68, 58, 10, 13)
				got, err := eng.Assign(ctx, "m-7", []model.Participant{clean, other}, model.MeetingPlanning, meetingAt(14))
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].ParticipantID, ShouldEqual, "p-2")
			})
		})

		Convey("When the meeting type changes", func() {
			brainstorm := score(&stubHistory{}, model.MeetingBrainstorm)
			review := score(&stubHistory{}, model.MeetingReview)

			Convey("Then context multipliers scale the same base score", func() {
				// Critic carries 0.5 in brainstorms and 1.5 in reviews.
				So(review, ShouldAlmostEqual, brainstorm*3, 1e-9)
			})
		})
	})

	Convey("Given degenerate inputs", t, func() {
		lookup := &stubHistory{}

		Convey("When the participant list is empty", func() {
			eng := engine.New(lookup)
			_, err := eng.Assign(ctx, "m-8", nil, model.MeetingReview, meetingAt(10))
			So(err, ShouldWrap, engine.ErrNoParticipants)
		})

		Convey("When a participant fails validation", func() {
			eng := engine.New(lookup)
			bad := participant("p-1", "Alice", 120, 60, 9, 12)
			_, err := eng.Assign(ctx, "m-9", []model.Participant{bad}, model.MeetingReview, meetingAt(10))
			So(err, ShouldWrap, model.ErrInvalidParticipant)
		})

		Convey("When the history lookup fails", func() {
			eng := engine.New(&stubHistory{err: errors.New("store offline")})
			p := participant("p-1", "Alice", 80, 80, 9, 12)
			_, err := eng.Assign(ctx, "m-10", []model.Participant{p}, model.MeetingReview, meetingAt(10))
			So(err, ShouldWrap, engine.ErrHistoryLookup)
		})

		Convey("When the role catalogue names a role absent from the requirements", func() {
			eng := engine.New(lookup,
				engine.WithRoles([]model.Role{model.Role("scribe")}),
			)
			p := participant("p-1", "Alice", 80, 80, 9, 12)
			_, err := eng.Assign(ctx, "m-11", []model.Participant{p}, model.MeetingReview, meetingAt(10))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given custom tables injected through options", t, func() {
		lookup := &stubHistory{}
		reqs := catalog.Requirements{
			model.RoleSpeaker: {EIMin: 0, EIMax: 100, SIMin: 0, SIMax: 100, EnergyMin: 0, EnergyMax: 100},
		}
		mults := catalog.Multipliers{
			model.MeetingStatusUpdate: {model.RoleSpeaker: 1.25},
		}
		eng := engine.New(lookup,
			engine.WithRequirements(reqs),
			engine.WithMultipliers(mults),
			engine.WithRoles([]model.Role{model.RoleSpeaker}),
		)

		Convey("Then the engine scores against the injected tables", func() {
			p := participant("p-1", "Alice", 50, 50, 9, 12)
			got, err := eng.Assign(ctx, "m-12", []model.Participant{p}, model.MeetingStatusUpdate, meetingAt(10))
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			// All three values sit at their range centers for a base of
			// 100... except energy: window 9-12 at 10:00 gives level 95,
			// fit 1 - (45/50)*0.2 = 0.82.
			So(got[0].FitnessScore, ShouldAlmostEqual, (1.0+1.0+0.82)/3*100*1.25, 1e-9)
		})

		Convey("And the accessors expose the injected tables", func() {
			So(eng.Requirements(), ShouldResemble, reqs)
			So(eng.Multipliers(), ShouldResemble, mults)
		})
	})
}
