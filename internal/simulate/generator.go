package simulate

import (
	"fmt"
	"math/rand"
	"time"
)

// Attribute bounds for generated participants.
const (
	minIntelligence = 20
	maxIntelligence = 100
	peakWindowSpan  = 3
	hoursPerDay     = 24
)

// The meeting types recognized by the service.
var meetingTypes = []string{"brainstorm", "review", "planning", "status_update"}

var firstNames = []string{
	"Alice", "Boris", "Carmen", "Dmitri", "Elena", "Farid", "Greta", "Hugo",
	"Irina", "Jonas", "Katya", "Lars", "Marta", "Nikolai", "Olga", "Pavel",
	"Quinn", "Rosa", "Stefan", "Tamara", "Ulrich", "Vera", "Wanda", "Xenia",
	"Yuri", "Zoya",
}

var lastNames = []string{
	"Adler", "Bergmann", "Castro", "Dvorak", "Eriksen", "Fischer", "Gruber",
	"Hansen", "Ivanov", "Jensen", "Keller", "Larsen", "Meier", "Novak",
	"Olsen", "Petrov", "Quist", "Richter", "Sokolov", "Toth", "Ullman",
	"Vogel", "Weber", "Ziegler",
}

// generator produces deterministic synthetic scenarios from a seed.
type generator struct {
	rng *rand.Rand
}

func newGenerator(seed int64) *generator {
	return &generator{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // deterministic seed for reproducible scenarios
}

// participants generates count synthetic participants. Peak windows follow
// the chronotype: morning people peak before noon, evening people late,
// sometimes wrapping past midnight.
func (g *generator) participants(count int) []Participant {
	out := make([]Participant, count)
	for i := range out {
		chronotype, start := g.chronotypeAndPeak()
		end := (start + peakWindowSpan) % hoursPerDay

		out[i] = Participant{
			Name:                  fmt.Sprintf("%s %s %03d", g.pick(firstNames), g.pick(lastNames), i),
			EmotionalIntelligence: g.score(),
			SocialIntelligence:    g.score(),
			Chronotype:            chronotype,
			PeakHoursStart:        start,
			PeakHoursEnd:          end,
		}
	}
	return out
}

// meetings generates count synthetic meetings over the given participant
// IDs, each inviting a random subset of at least one participant.
func (g *generator) meetings(count int, participantIDs []string) []Meeting {
	out := make([]Meeting, count)
	base := time.Now().Truncate(time.Hour)
	for i := range out {
		invited := g.subset(participantIDs)
		hour := g.rng.Intn(hoursPerDay)
		scheduled := base.Add(time.Duration(i+1) * 24 * time.Hour)
		scheduled = time.Date(scheduled.Year(), scheduled.Month(), scheduled.Day(), hour, 0, 0, 0, scheduled.Location())

		out[i] = Meeting{
			Title:          fmt.Sprintf("Simulated meeting %03d", i),
			MeetingType:    g.pick(meetingTypes),
			ScheduledTime:  scheduled.Format(time.RFC3339),
			ParticipantIDs: invited,
		}
	}
	return out
}

func (g *generator) chronotypeAndPeak() (chronotype string, peakStart int) {
	switch g.rng.Intn(3) {
	case 0:
		return "morning", 7 + g.rng.Intn(3) // peaks 7-9 .. 10-12
	case 1:
		return "evening", 19 + g.rng.Intn(4) // peaks 19-22 .. 22-1, may wrap
	default:
		return "intermediate", 11 + g.rng.Intn(4)
	}
}

func (g *generator) score() int {
	return minIntelligence + g.rng.Intn(maxIntelligence-minIntelligence+1)
}

func (g *generator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

// subset picks a random non-empty subset, biased toward larger groups so
// most meetings can fill several roles.
func (g *generator) subset(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	size := 1 + g.rng.Intn(len(ids))
	perm := g.rng.Perm(len(ids))
	out := make([]string, 0, size)
	for _, idx := range perm[:size] {
		out = append(out, ids[idx])
	}
	return out
}
