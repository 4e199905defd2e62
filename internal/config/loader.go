package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ROLECALL_CONFIG is set
//  3. env (prefix ROLECALL_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ROLECALL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: ROLECALL_ADDR, ROLECALL_QUEUE_SIZE, ...
	// Map env keys like ROLECALL_QUEUE_SIZE -> queue_size (flat keys);
	// underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("ROLECALL_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rolecall_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case cfg.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case cfg.HistoryDepth < 1:
		return fmt.Errorf("%w: history_depth must be positive", ErrInvalidConfig)
	case cfg.MaxHistoryLimit < 1:
		return fmt.Errorf("%w: max_history_limit must be positive", ErrInvalidConfig)
	}
	for meetingType, byRole := range cfg.MeetingMultipliers {
		for role, mult := range byRole {
			if mult < 0 {
				return fmt.Errorf("%w: meeting_multipliers.%s.%s must not be negative", ErrInvalidConfig, meetingType, role)
			}
		}
	}
	return nil
}
