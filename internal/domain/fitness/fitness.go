// Package fitness scores how well a participant's attributes match a role's
// requirement ranges.
package fitness

import (
	"fmt"

	"github.com/okian/rolecall/internal/domain/catalog"
	"github.com/okian/rolecall/internal/domain/model"
)

// Scoring constants. Deficits are penalized more steeply than excess;
// being "too much" of a trait is less disruptive than a shortfall.
const (
	inRangeFloor   = 0.8
	inRangeSpread  = 0.2
	deficitPenalty = 0.05
	excessPenalty  = 0.033

	dimensionCount = 3
	scoreScale     = 100.0
)

// Matcher computes base fitness scores against an injected requirement table.
type Matcher struct {
	requirements catalog.Requirements
}

// NewMatcher creates a Matcher over the given requirement table.
func NewMatcher(requirements catalog.Requirements) *Matcher {
	return &Matcher{requirements: requirements}
}

// Base returns the base fitness score in [0,100] for a participant holding
// role at the given energy level. It averages the per-parameter fits of EI,
// SI and energy. Returns ErrUnknownRole for roles outside the catalogue.
func (m *Matcher) Base(p model.Participant, role model.Role, energyLevel int) (float64, error) {
	req, ok := m.requirements[role]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	eiFit := parameterFit(float64(p.EmotionalIntelligence), float64(req.EIMin), float64(req.EIMax))
	siFit := parameterFit(float64(p.SocialIntelligence), float64(req.SIMin), float64(req.SIMax))
	energyFit := parameterFit(float64(energyLevel), float64(req.EnergyMin), float64(req.EnergyMax))

	return (eiFit + siFit + energyFit) / dimensionCount * scoreScale, nil
}

// parameterFit maps a value against a [min,max] requirement to [0,1]:
// 1.0 at the range center falling to 0.8 at either edge, with steeper decay
// below the minimum than above the maximum. A degenerate range (min == max)
// always fits perfectly.
func parameterFit(value, minThreshold, maxThreshold float64) float64 {
	switch {
	case minThreshold <= value && value <= maxThreshold:
		width := maxThreshold - minThreshold
		if width == 0 {
			return 1.0
		}
		center := (minThreshold + maxThreshold) / 2
		offset := value - center
		if offset < 0 {
			offset = -offset
		}
		fit := 1.0 - offset/(width/2)*inRangeSpread
		if fit < inRangeFloor {
			return inRangeFloor
		}
		return fit
	case value < minThreshold:
		fit := 1.0 - (minThreshold-value)*deficitPenalty
		if fit < 0 {
			return 0
		}
		return fit
	default:
		fit := 1.0 - (value-maxThreshold)*excessPenalty
		if fit < 0 {
			return 0
		}
		return fit
	}
}
