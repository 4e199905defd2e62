package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrMeetingNotFound     = errors.New("meeting not found")
	ErrDuplicateID         = errors.New("duplicate id")
)
