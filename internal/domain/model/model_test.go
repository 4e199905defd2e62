package model_test

import (
	"testing"

	model "github.com/okian/rolecall/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func validParticipant() model.Participant {
	return model.Participant{
		ID:                    "p-1",
		Name:                  "Alice Adler",
		EmotionalIntelligence: 80,
		SocialIntelligence:    75,
		Chronotype:            model.ChronotypeMorning,
		PeakHoursStart:        8,
		PeakHoursEnd:          11,
	}
}

func TestParticipant_Validate(t *testing.T) {
	Convey("Given a participant with valid attributes", t, func() {
		p := validParticipant()

		Convey("Then validation passes", func() {
			So(p.Validate(), ShouldBeNil)
		})

		Convey("And a peak window wrapping past midnight is allowed", func() {
			p.Chronotype = model.ChronotypeEvening
			p.PeakHoursStart = 22
			p.PeakHoursEnd = 2
			So(p.Validate(), ShouldBeNil)
		})
	})

	Convey("Given a participant with invalid attributes", t, func() {
		Convey("When the name is empty", func() {
			p := validParticipant()
			p.Name = ""
			So(p.Validate(), ShouldWrap, model.ErrInvalidParticipant)
		})

		Convey("When an intelligence score is out of range", func() {
			p := validParticipant()
			p.EmotionalIntelligence = 101
			So(p.Validate(), ShouldWrap, model.ErrInvalidParticipant)

			p = validParticipant()
			p.SocialIntelligence = -1
			So(p.Validate(), ShouldWrap, model.ErrInvalidParticipant)
		})

		Convey("When a peak hour is out of range", func() {
			p := validParticipant()
			p.PeakHoursStart = 24
			So(p.Validate(), ShouldWrap, model.ErrInvalidParticipant)

			p = validParticipant()
			p.PeakHoursEnd = -1
			So(p.Validate(), ShouldWrap, model.ErrInvalidParticipant)
		})

		Convey("When the chronotype is unknown", func() {
			p := validParticipant()
			p.Chronotype = "nocturnal"
			So(p.Validate(), ShouldWrap, model.ErrInvalidParticipant)
		})
	})
}

func TestMeetingType_Valid(t *testing.T) {
	Convey("Given the recognized meeting types", t, func() {
		Convey("Then all four validate", func() {
			So(model.MeetingBrainstorm.Valid(), ShouldBeTrue)
			So(model.MeetingReview.Valid(), ShouldBeTrue)
			So(model.MeetingPlanning.Valid(), ShouldBeTrue)
			So(model.MeetingStatusUpdate.Valid(), ShouldBeTrue)
		})
	})

	Convey("Given an unknown meeting type", t, func() {
		Convey("Then it does not validate", func() {
			So(model.MeetingType("retrospective").Valid(), ShouldBeFalse)
			So(model.MeetingType("").Valid(), ShouldBeFalse)
		})
	})
}
