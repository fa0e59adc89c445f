package models

import (
	"time"
)

// Roll represents the outcome of one roll request
type Roll struct {
	// ID is the unique identifier for the roll
	ID string

	// PlayerID is the ID of the player who made the roll
	PlayerID string

	// PlayerName is the display name of the player who made the roll
	PlayerName string

	// Count is how many dice were rolled
	Count uint

	// Sides is the number of faces on each die
	Sides uint

	// Mode is how the dice were resolved
	Mode RollMode

	// Total is the result of the roll
	Total uint

	// Min is the lowest result the roll could have produced
	Min uint

	// Max is the highest result the roll could have produced
	Max uint

	// Timestamp is when the roll was made
	Timestamp time.Time

	// IsCriticalSuccess indicates every die landed on its top face
	IsCriticalSuccess bool

	// IsCriticalFail indicates every die landed on a 1
	IsCriticalFail bool
}

// IsEmpty reports whether the roll had nothing to roll (no dice or no sides)
func (r *Roll) IsEmpty() bool {
	return r.Count == 0 || r.Sides == 0
}
