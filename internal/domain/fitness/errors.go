package fitness

import "errors"

// Sentinel kinds for fitness errors.
var (
	ErrUnknownRole = errors.New("unknown role")
)
