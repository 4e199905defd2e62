package repository_test

import (
	"context"
	"testing"
	"time"

	repository "github.com/okian/rolecall/internal/adapters/repository"
	"github.com/okian/rolecall/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func newParticipant(name string) model.Participant {
	return model.Participant{
		Name:                  name,
		EmotionalIntelligence: 80,
		SocialIntelligence:    75,
		Chronotype:            model.ChronotypeMorning,
		PeakHoursStart:        8,
		PeakHoursEnd:          11,
	}
}

func TestMemStore_Participants(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store := repository.NewMemStore(ctx)

		Convey("When a participant is created without an ID", func() {
			stored, err := store.CreateParticipant(ctx, newParticipant("Alice"))

			Convey("Then an ID is assigned and the participant is retrievable", func() {
				So(err, ShouldBeNil)
				So(stored.ID, ShouldNotBeEmpty)

				got, err := store.GetParticipant(ctx, stored.ID)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, stored)
			})
		})

		Convey("When a participant is created with an explicit ID", func() {
			p := newParticipant("Boris")
			p.ID = "p-boris"
			_, err := store.CreateParticipant(ctx, p)
			So(err, ShouldBeNil)

			Convey("Then reusing the ID is rejected", func() {
				_, err := store.CreateParticipant(ctx, p)
				So(err, ShouldWrap, repository.ErrDuplicateID)
			})
		})

		Convey("When looking up an unknown participant", func() {
			_, err := store.GetParticipant(ctx, "nope")
			So(err, ShouldWrap, repository.ErrParticipantNotFound)
		})

		Convey("When listing participants", func() {
			for _, name := range []string{"Carmen", "Alice", "Boris"} {
				_, err := store.CreateParticipant(ctx, newParticipant(name))
				So(err, ShouldBeNil)
			}

			Convey("Then they come back ordered by name", func() {
				got, err := store.ListParticipants(ctx)
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 3)
				So(got[0].Name, ShouldEqual, "Alice")
				So(got[1].Name, ShouldEqual, "Boris")
				So(got[2].Name, ShouldEqual, "Carmen")
			})
		})

		Convey("When resolving a set of IDs", func() {
			a, _ := store.CreateParticipant(ctx, newParticipant("Alice"))
			b, _ := store.CreateParticipant(ctx, newParticipant("Boris"))

			Convey("Then known IDs resolve in request order", func() {
				got, err := store.Participants(ctx, []string{b.ID, a.ID})
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 2)
				So(got[0].ID, ShouldEqual, b.ID)
				So(got[1].ID, ShouldEqual, a.ID)
			})

			Convey("Then one unknown ID fails the whole lookup", func() {
				_, err := store.Participants(ctx, []string{a.ID, "nope"})
				So(err, ShouldWrap, repository.ErrParticipantNotFound)
			})
		})
	})
}

func TestMemStore_Meetings(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store with one participant", t, func() {
		store := repository.NewMemStore(ctx)
		p, err := store.CreateParticipant(ctx, newParticipant("Alice"))
		So(err, ShouldBeNil)

		Convey("When a meeting invites that participant", func() {
			m := model.Meeting{
				Title:          "Planning sync",
				Type:           model.MeetingPlanning,
				ScheduledAt:    time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
				ParticipantIDs: []string{p.ID},
			}
			stored, err := store.CreateMeeting(ctx, m)

			Convey("Then an ID is assigned and the meeting is retrievable", func() {
				So(err, ShouldBeNil)
				So(stored.ID, ShouldNotBeEmpty)

				got, err := store.GetMeeting(ctx, stored.ID)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, stored)
			})
		})

		Convey("When a meeting invites an unknown participant", func() {
			m := model.Meeting{
				Title:          "Ghost meeting",
				Type:           model.MeetingReview,
				ParticipantIDs: []string{"nope"},
			}
			_, err := store.CreateMeeting(ctx, m)
			So(err, ShouldWrap, repository.ErrParticipantNotFound)
		})

		Convey("When looking up an unknown meeting", func() {
			_, err := store.GetMeeting(ctx, "nope")
			So(err, ShouldWrap, repository.ErrMeetingNotFound)
		})
	})
}

func TestMemStore_ReplaceAssignments(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store with a meeting and two participants", t, func() {
		store := repository.NewMemStore(ctx)
		alice, _ := store.CreateParticipant(ctx, newParticipant("Alice"))
		boris, _ := store.CreateParticipant(ctx, newParticipant("Boris"))
		meeting, err := store.CreateMeeting(ctx, model.Meeting{
			Title:          "Review session",
			Type:           model.MeetingReview,
			ParticipantIDs: []string{alice.ID, boris.ID},
		})
		So(err, ShouldBeNil)

		Convey("When no assignments were ever stored", func() {
			got, err := store.Assignments(ctx, meeting.ID)

			Convey("Then the set is empty, not an error", func() {
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When an assignment set is stored", func() {
			err := store.ReplaceAssignments(ctx, meeting.ID, []model.Assignment{
				{ParticipantID: alice.ID, Role: model.RoleModerator, FitnessScore: 95},
				{ParticipantID: boris.ID, Role: model.RoleCritic, FitnessScore: 88},
			})
			So(err, ShouldBeNil)

			Convey("Then it is read back with the meeting ID and a timestamp", func() {
				got, err := store.Assignments(ctx, meeting.ID)
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 2)
				for _, a := range got {
					So(a.MeetingID, ShouldEqual, meeting.ID)
					So(a.CreatedAt.IsZero(), ShouldBeFalse)
				}
			})

			Convey("And replacing it swaps the whole set", func() {
				err := store.ReplaceAssignments(ctx, meeting.ID, []model.Assignment{
					{ParticipantID: boris.ID, Role: model.RoleModerator, FitnessScore: 91},
				})
				So(err, ShouldBeNil)

				got, err := store.Assignments(ctx, meeting.ID)
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].ParticipantID, ShouldEqual, boris.ID)
				So(got[0].Role, ShouldEqual, model.RoleModerator)

				Convey("And the displaced participant's history entry is gone", func() {
					recent, err := store.RecentAssignments(ctx, alice.ID, 10)
					So(err, ShouldBeNil)
					So(recent, ShouldBeEmpty)
				})
			})
		})

		Convey("When replacing assignments for an unknown meeting", func() {
			err := store.ReplaceAssignments(ctx, "nope", nil)
			So(err, ShouldWrap, repository.ErrMeetingNotFound)
		})
	})
}

func TestMemStore_RecentAssignments(t *testing.T) {
	ctx := context.Background()

	Convey("Given a participant assigned across several meetings", t, func() {
		store := repository.NewMemStore(ctx)
		alice, _ := store.CreateParticipant(ctx, newParticipant("Alice"))

		roles := []model.Role{model.RoleSpeaker, model.RoleCritic, model.RoleCritic}
		meetingIDs := make([]string, len(roles))
		for i, role := range roles {
			m, err := store.CreateMeeting(ctx, model.Meeting{
				Title:          "Meeting",
				Type:           model.MeetingReview,
				ParticipantIDs: []string{alice.ID},
			})
			So(err, ShouldBeNil)
			meetingIDs[i] = m.ID

			err = store.ReplaceAssignments(ctx, m.ID, []model.Assignment{
				{ParticipantID: alice.ID, Role: role},
			})
			So(err, ShouldBeNil)
		}

		Convey("When fetching the history", func() {
			recent, err := store.RecentAssignments(ctx, alice.ID, 10)

			Convey("Then entries come back most-recent-first", func() {
				So(err, ShouldBeNil)
				So(recent, ShouldHaveLength, 3)
				So(recent[0].Role, ShouldEqual, model.RoleCritic)
				So(recent[1].Role, ShouldEqual, model.RoleCritic)
				So(recent[2].Role, ShouldEqual, model.RoleSpeaker)
			})
		})

		Convey("When fetching with a smaller limit", func() {
			recent, err := store.RecentAssignments(ctx, alice.ID, 2)

			Convey("Then only the newest entries are returned", func() {
				So(err, ShouldBeNil)
				So(recent, ShouldHaveLength, 2)
			})
		})

		Convey("When a middle meeting is reassigned", func() {
			err := store.ReplaceAssignments(ctx, meetingIDs[1], []model.Assignment{
				{ParticipantID: alice.ID, Role: model.RoleMediator},
			})
			So(err, ShouldBeNil)

			Convey("Then the fresh entry becomes the most recent", func() {
				recent, err := store.RecentAssignments(ctx, alice.ID, 10)
				So(err, ShouldBeNil)
				So(recent, ShouldHaveLength, 3)
				So(recent[0].Role, ShouldEqual, model.RoleMediator)
			})
		})

		Convey("When fetching history for an unknown participant", func() {
			recent, err := store.RecentAssignments(ctx, "nope", 10)

			Convey("Then the history is simply empty", func() {
				So(err, ShouldBeNil)
				So(recent, ShouldBeEmpty)
			})
		})
	})

	Convey("Given counts over a populated store", t, func() {
		store := repository.NewMemStore(ctx)
		alice, _ := store.CreateParticipant(ctx, newParticipant("Alice"))
		m, err := store.CreateMeeting(ctx, model.Meeting{
			Title:          "Standup",
			Type:           model.MeetingStatusUpdate,
			ParticipantIDs: []string{alice.ID},
		})
		So(err, ShouldBeNil)
		So(store.ReplaceAssignments(ctx, m.ID, []model.Assignment{
			{ParticipantID: alice.ID, Role: model.RoleSpeaker},
		}), ShouldBeNil)

		Convey("Then Counts reflects the stored entities", func() {
			participants, meetings, assignments := store.Counts(ctx)
			So(participants, ShouldEqual, 1)
			So(meetings, ShouldEqual, 1)
			So(assignments, ShouldEqual, 1)
		})
	})
}
