// Package energy computes a participant's energy level at meeting time from
// their daily peak-hours window.
package energy

// Hours in a day; circular distances are folded through this.
const hoursPerDay = 24

// Schedule breakpoints mapping hour distances to energy levels.
const (
	nearDistance   = 2.0
	mediumDistance = 4.0
	farDistance    = 6.0

	nearBase   = 100.0
	mediumBase = 80.0
	farBase    = 55.0
	remoteBase = 35.0

	nearSlope   = 10.0
	mediumSlope = 15.0
	farSlope    = 10.0
	remoteSlope = 5.0
)

// Level returns the energy level in [0,100] for a meeting at meetingHour
// given a peak window [peakStart, peakEnd]. The window may wrap past
// midnight (peakStart > peakEnd). Fractional schedule values are truncated
// toward zero, not rounded; downstream fitness scores depend on the exact
// integer outputs.
func Level(peakStart, peakEnd, meetingHour int) int {
	var center float64
	if peakStart <= peakEnd {
		center = float64(peakStart+peakEnd) / 2
	} else {
		// Window crosses midnight, e.g. 22-2 has its center at 0.
		center = float64(peakStart+peakEnd+hoursPerDay) / 2
		for center >= hoursPerDay {
			center -= hoursPerDay
		}
	}

	direct := float64(meetingHour) - center
	if direct < 0 {
		direct = -direct
	}
	distance := direct
	if wrap := hoursPerDay - direct; wrap < distance {
		distance = wrap
	}

	switch {
	case distance <= nearDistance:
		return int(nearBase - distance*nearSlope)
	case distance <= mediumDistance:
		return int(mediumBase - (distance-nearDistance)*mediumSlope)
	case distance <= farDistance:
		return int(farBase - (distance-mediumDistance)*farSlope)
	default:
		level := int(remoteBase - (distance-farDistance)*remoteSlope)
		if level < 0 {
			return 0
		}
		return level
	}
}
