package roll

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/KirkDiggler/dicebag/internal/common/clock"
	"github.com/KirkDiggler/dicebag/internal/common/uuid"
	"github.com/KirkDiggler/dicebag/internal/dice"
	"github.com/KirkDiggler/dicebag/internal/models"
)

const (
	// DefaultMaxCount is used when Config.MaxCount is zero
	DefaultMaxCount uint = 100

	// DefaultMaxSides is used when Config.MaxSides is zero
	DefaultMaxSides uint = 1000
)

// Config holds configuration for the roll service
type Config struct {
	// Maximum number of dice in one roll
	MaxCount uint

	// Maximum number of sides on a die
	MaxSides uint

	// Service dependencies
	Source        dice.Source
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Optional, the global meter provider is used when nil
	MeterProvider metric.MeterProvider
}

// RollInput contains parameters for rolling dice
type RollInput struct {
	// PlayerID is the Discord user ID of the player rolling
	PlayerID string

	// PlayerName is the display name of the player rolling
	PlayerName string

	// Count is how many dice to roll, zero rolls nothing and totals 0
	Count uint

	// Sides is the number of faces on each die, zero totals 0
	Sides uint

	// Mode is how to resolve the dice, empty means sum
	Mode models.RollMode
}

// RollOutput contains the result of rolling dice
type RollOutput struct {
	Roll *models.Roll
}
