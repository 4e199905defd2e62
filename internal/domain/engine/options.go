package engine

import (
	"github.com/okian/rolecall/internal/domain/catalog"
	"github.com/okian/rolecall/internal/domain/model"
	"github.com/okian/rolecall/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRequirements replaces the role requirement table.
func WithRequirements(requirements catalog.Requirements) Option {
	return func(e *Engine) {
		if len(requirements) > 0 {
			e.requirements = requirements
		}
	}
}

// WithMultipliers replaces the meeting-type multiplier table.
func WithMultipliers(multipliers catalog.Multipliers) Option {
	return func(e *Engine) {
		if len(multipliers) > 0 {
			e.multipliers = multipliers
		}
	}
}

// WithRoles replaces the role catalogue. Intended for tests that exercise
// the solver with a reduced set of roles.
func WithRoles(roles []model.Role) Option {
	return func(e *Engine) {
		if len(roles) > 0 {
			e.roles = roles
		}
	}
}

// WithHistoryDepth caps how many history entries are requested per
// participant.
func WithHistoryDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.historyDepth = depth
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.logger = log
		}
	}
}
