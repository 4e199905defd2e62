package simulate

import "time"

// Config holds configuration for the assignment simulation.
type Config struct {
	BaseURL      string        // Base URL of the service
	Participants int           // Number of participants to create
	Meetings     int           // Number of meetings to schedule
	Workers      int           // Number of concurrent workers
	Timeout      time.Duration // HTTP request timeout
	LogFile      string        // Log file for simulation output
	Verbose      bool          // Enable verbose logging
	Seed         int64         // Random seed for reproducible scenarios
}

// Participant mirrors the API schema for POST /participants.
type Participant struct {
	ID                    string `json:"id,omitempty"`
	Name                  string `json:"name"`
	EmotionalIntelligence int    `json:"emotional_intelligence"`
	SocialIntelligence    int    `json:"social_intelligence"`
	Chronotype            string `json:"chronotype"`
	PeakHoursStart        int    `json:"peak_hours_start"`
	PeakHoursEnd          int    `json:"peak_hours_end"`
}

// Meeting mirrors the API schema for POST /meetings.
type Meeting struct {
	ID             string   `json:"id,omitempty"`
	Title          string   `json:"title"`
	MeetingType    string   `json:"meeting_type"`
	ScheduledTime  string   `json:"scheduled_time"`
	ParticipantIDs []string `json:"participant_ids"`
}

// Assignment mirrors the API schema for GET /assignments/{meeting_id}.
type Assignment struct {
	MeetingID     string  `json:"meeting_id"`
	ParticipantID string  `json:"participant_id"`
	Role          string  `json:"role"`
	FitnessScore  float64 `json:"fitness_score"`
}

// AckResponse mirrors the response of POST /assignments.
type AckResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds simulation statistics.
type Stats struct {
	ParticipantsCreated int
	MeetingsCreated     int
	RecomputesQueued    int
	RecomputesDuplicate int
	RecomputesFailed    int
	MeetingsVerified    int
	Violations          int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
