package engine

import "errors"

// Sentinel kinds for assignment errors.
var (
	ErrNoParticipants = errors.New("meeting has no participants")
	ErrHistoryLookup  = errors.New("history lookup failed")
)
