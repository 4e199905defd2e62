// Package history evaluates repetition penalties from a participant's
// recent-assignment history.
package history

import (
	"github.com/okian/rolecall/internal/domain/model"
)

// Run-length thresholds and their penalties. A penalty is a multiplicative
// discount applied as score * (1 - penalty).
const (
	excludeRunLength = 4
	heavyRunLength   = 3
	lightRunLength   = 2

	heavyPenalty = 0.7
	lightPenalty = 0.4
)

// MaxEntries is the depth of history the evaluator expects; callers cap
// their lookups at the most recent MaxEntries per participant.
const MaxEntries = 10

// Penalty evaluates the trailing run of role in a participant's history,
// which must be ordered most-recent-first. Only the contiguous run starting
// at the most recent entry counts; the first entry with a different role
// stops the scan even if matching entries exist further back. It returns the
// penalty and whether the participant is excluded from the role outright.
func Penalty(recent []model.HistoryEntry, role model.Role) (penalty float64, exclude bool) {
	run := 0
	for _, entry := range recent {
		if entry.Role != role {
			break
		}
		run++
	}

	switch {
	case run >= excludeRunLength:
		return 0, true
	case run == heavyRunLength:
		return heavyPenalty, false
	case run == lightRunLength:
		return lightPenalty, false
	default:
		return 0, false
	}
}
