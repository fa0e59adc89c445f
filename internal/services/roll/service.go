package roll

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dicebag/internal/common/clock"
	"github.com/KirkDiggler/dicebag/internal/common/uuid"
	"github.com/KirkDiggler/dicebag/internal/dice"
	"github.com/KirkDiggler/dicebag/internal/logger"
	"github.com/KirkDiggler/dicebag/internal/models"
)

const meterName = "github.com/KirkDiggler/dicebag/internal/services/roll"

// service implements the Service interface
type service struct {
	maxCount      uint
	maxSides      uint
	source        dice.Source
	clock         clock.Clock
	uuidGenerator uuid.UUID
	rollCount     metric.Int64Counter
}

// New creates a new roll service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Source == nil {
		return nil, ErrNilSource
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	maxCount := cfg.MaxCount
	if maxCount == 0 {
		maxCount = DefaultMaxCount
	}

	maxSides := cfg.MaxSides
	if maxSides == 0 {
		maxSides = DefaultMaxSides
	}

	meterProvider := cfg.MeterProvider
	if meterProvider == nil {
		meterProvider = otel.GetMeterProvider()
	}

	rollCount, err := meterProvider.Meter(meterName).Int64Counter("dice.rolls",
		metric.WithDescription("The number of rolls resolved"),
		metric.WithUnit("{roll}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create roll counter: %w", err)
	}

	return &service{
		maxCount:      maxCount,
		maxSides:      maxSides,
		source:        cfg.Source,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		rollCount:     rollCount,
	}, nil
}

// Roll resolves a set of dice for a player
func (s *service) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	mode := input.Mode
	if mode == "" {
		mode = models.RollModeSum
	}

	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	if input.Count > s.maxCount {
		return nil, fmt.Errorf("%w: %d is more than %d", ErrTooManyDice, input.Count, s.maxCount)
	}

	if input.Sides > s.maxSides {
		return nil, fmt.Errorf("%w: %d is more than %d", ErrTooManySides, input.Sides, s.maxSides)
	}

	roll := dice.NewWithSource(input.Count, s.source)
	total := resolve(roll, input.Sides, mode)
	lo, hi := roll.Bounds(input.Sides)

	// Nothing was rolled when either bound is zero
	rolled := lo > 0

	result := &models.Roll{
		ID:                s.uuidGenerator.NewUUID(),
		PlayerID:          input.PlayerID,
		PlayerName:        input.PlayerName,
		Count:             input.Count,
		Sides:             input.Sides,
		Mode:              mode,
		Total:             total,
		Min:               lo,
		Max:               hi,
		Timestamp:         s.clock.Now(),
		IsCriticalSuccess: rolled && total == hi,
		IsCriticalFail:    rolled && total == lo,
	}

	s.rollCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", string(mode)),
		attribute.String("sides", sidesLabel(input.Sides)),
	))

	logger.FromCtx(ctx).Debug("rolled dice",
		zap.String("roll_id", result.ID),
		zap.String("player_id", result.PlayerID),
		zap.Uint("count", result.Count),
		zap.Uint("sides", result.Sides),
		zap.String("mode", string(result.Mode)),
		zap.Uint("total", result.Total),
	)

	return &RollOutput{
		Roll: result,
	}, nil
}

// shortcuts maps each of models.StandardDice to its dedicated roll
var shortcuts = map[uint]func(dice.Roll) uint{
	4:  dice.Roll.D4,
	6:  dice.Roll.D6,
	8:  dice.Roll.D8,
	10: dice.Roll.D10,
	12: dice.Roll.D12,
	20: dice.Roll.D20,
}

// resolve dispatches a mode to the matching dice operation
func resolve(roll dice.Roll, sides uint, mode models.RollMode) uint {
	switch mode {
	case models.RollModeCritSuccess:
		return roll.CritSuccess(sides)
	case models.RollModeCritFail:
		return roll.CritFail(sides)
	case models.RollModeAdvantage:
		return roll.Advantage(sides)
	case models.RollModeDisadvantage:
		return roll.Disadvantage(sides)
	}

	if models.IsStandardDie(sides) {
		return shortcuts[sides](roll)
	}

	return roll.Sum(sides)
}

// sidesLabel keeps the metric attribute to the standard dice plus "other"
func sidesLabel(sides uint) string {
	if !models.IsStandardDie(sides) {
		return "other"
	}

	return "d" + strconv.FormatUint(uint64(sides), 10)
}
