package models

import "github.com/google/uuid"

// Leaderboard windows. Month and year are rolling windows anchored at the
// query time; the empty window means all time.
const (
	WindowAllTime = ""
	WindowMonth   = "month"
	WindowYear    = "year"
)

// LeaderboardFilter narrows which results feed the aggregation.
type LeaderboardFilter struct {
	Category ResultCategory
	Window   string
}

// LeaderboardEntry is computed on read from results, never stored.
type LeaderboardEntry struct {
	ParticipantID      uuid.UUID `json:"participant_id"`
	Name               string    `json:"name,omitempty"`
	Department         string    `json:"department,omitempty"`
	TotalPoints        int       `json:"total_points"`
	EventsParticipated int       `json:"events_participated"`
	Wins               int       `json:"wins"`
}
