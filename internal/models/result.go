package models

import (
	"time"

	"github.com/google/uuid"
)

type ResultCategory string

const (
	CategoryWinner      ResultCategory = "winner"
	CategoryRunnerUp    ResultCategory = "runner_up"
	CategoryParticipant ResultCategory = "participant"
)

func (c ResultCategory) Valid() bool {
	switch c {
	case CategoryWinner, CategoryRunnerUp, CategoryParticipant:
		return true
	}
	return false
}

// RequiresPrize reports whether a prize must accompany the result.
func (c ResultCategory) RequiresPrize() bool {
	return c == CategoryWinner || c == CategoryRunnerUp
}

// BasePoints is the score credited before the position penalty.
func BasePoints(c ResultCategory) int {
	switch c {
	case CategoryWinner:
		return 100
	case CategoryRunnerUp:
		return 75
	default:
		return 25
	}
}

// PointsFor computes the points a placement earns. The value is deliberately
// not floored at zero: a low enough position yields a negative score.
func PointsFor(c ResultCategory, position int) int {
	return BasePoints(c) - (position-1)*5
}

// Result records one participant's outcome in one event. Position and
// category are immutable once points are computed; only prize and remarks
// may be corrected afterwards.
type Result struct {
	ID            uuid.UUID      `bson:"_id" json:"id"`
	EventID       uuid.UUID      `bson:"event_id" json:"event_id"`
	ParticipantID uuid.UUID      `bson:"participant_id" json:"participant_id"`
	Position      int            `bson:"position" json:"position"`
	Category      ResultCategory `bson:"category" json:"category"`
	PointsEarned  int            `bson:"points_earned" json:"points_earned"`
	Prize         string         `bson:"prize,omitempty" json:"prize,omitempty"`
	Remarks       string         `bson:"remarks,omitempty" json:"remarks,omitempty"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
}

// RecordResultRequest is the payload for declaring a participant's result.
type RecordResultRequest struct {
	ParticipantID uuid.UUID      `json:"participant_id" binding:"required"`
	Position      int            `json:"position" binding:"required"`
	Category      ResultCategory `json:"category" binding:"required"`
	Prize         string         `json:"prize"`
	Remarks       string         `json:"remarks"`
}

// AmendResultRequest corrects the mutable fields of an existing result.
type AmendResultRequest struct {
	Prize   *string `json:"prize"`
	Remarks *string `json:"remarks"`
}
