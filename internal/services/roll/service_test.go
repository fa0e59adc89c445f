package roll

import (
	"context"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/dicebag/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/dicebag/internal/common/uuid/mocks"
	diceMocks "github.com/KirkDiggler/dicebag/internal/dice/mocks"
	"github.com/KirkDiggler/dicebag/internal/logger"
	"github.com/KirkDiggler/dicebag/internal/models"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type RollServiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockSource *diceMocks.MockSource
	mockClock  *clockMocks.MockClock
	mockUUID   *uuidMocks.MockUUID
	service    Service
	ctx        context.Context

	// Test data
	testTime       time.Time
	testRollID     string
	testPlayerID   string
	testPlayerName string
}

func (s *RollServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSource = diceMocks.NewMockSource(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = logger.WithCtx(context.Background(), zap.NewNop())

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testRollID = "test-roll-id"
	s.testPlayerID = "test-player-id"
	s.testPlayerName = "Test Player"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return(s.testRollID).AnyTimes()

	svc, err := New(&Config{
		MaxCount:      10,
		MaxSides:      100,
		Source:        s.mockSource,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *RollServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRollServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RollServiceTestSuite))
}

func (s *RollServiceTestSuite) rollInput(count, sides uint, mode models.RollMode) *RollInput {
	return &RollInput{
		PlayerID:   s.testPlayerID,
		PlayerName: s.testPlayerName,
		Count:      count,
		Sides:      sides,
		Mode:       mode,
	}
}

func (s *RollServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.ErrorIs(err, ErrNilSource)

	_, err = New(&Config{Source: s.mockSource, UUIDGenerator: s.mockUUID})
	s.ErrorIs(err, ErrNilClock)

	_, err = New(&Config{Source: s.mockSource, Clock: s.mockClock})
	s.ErrorIs(err, ErrNilUUIDGenerator)
}

func (s *RollServiceTestSuite) TestNewAppliesDefaultLimits() {
	svc, err := New(&Config{
		Source:        s.mockSource,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.Equal(DefaultMaxCount, svc.maxCount)
	s.Equal(DefaultMaxSides, svc.maxSides)
}

func (s *RollServiceTestSuite) TestRollSum() {
	gomock.InOrder(
		s.mockSource.EXPECT().UintN(uint(6)).Return(uint(1)),
		s.mockSource.EXPECT().UintN(uint(6)).Return(uint(4)),
		s.mockSource.EXPECT().UintN(uint(6)).Return(uint(2)),
	)

	output, err := s.service.Roll(s.ctx, s.rollInput(3, 6, models.RollModeSum))
	s.Require().NoError(err)
	s.Require().NotNil(output.Roll)

	s.Equal(&models.Roll{
		ID:         s.testRollID,
		PlayerID:   s.testPlayerID,
		PlayerName: s.testPlayerName,
		Count:      3,
		Sides:      6,
		Mode:       models.RollModeSum,
		Total:      10,
		Min:        3,
		Max:        18,
		Timestamp:  s.testTime,
	}, output.Roll)
}

func (s *RollServiceTestSuite) TestRollDefaultsToSum() {
	s.mockSource.EXPECT().UintN(uint(20)).Return(uint(9))

	output, err := s.service.Roll(s.ctx, s.rollInput(1, 20, ""))
	s.Require().NoError(err)
	s.Equal(models.RollModeSum, output.Roll.Mode)
	s.Equal(uint(10), output.Roll.Total)
}

func (s *RollServiceTestSuite) TestRollNonStandardDie() {
	s.mockSource.EXPECT().UintN(uint(7)).Return(uint(6))

	output, err := s.service.Roll(s.ctx, s.rollInput(1, 7, models.RollModeSum))
	s.Require().NoError(err)
	s.Equal(uint(7), output.Roll.Total)
	s.True(output.Roll.IsCriticalSuccess)
}

func (s *RollServiceTestSuite) TestRollNaturalTwenty() {
	s.mockSource.EXPECT().UintN(uint(20)).Return(uint(19))

	output, err := s.service.Roll(s.ctx, s.rollInput(1, 20, models.RollModeSum))
	s.Require().NoError(err)
	s.Equal(uint(20), output.Roll.Total)
	s.True(output.Roll.IsCriticalSuccess)
	s.False(output.Roll.IsCriticalFail)
}

func (s *RollServiceTestSuite) TestRollNaturalOne() {
	s.mockSource.EXPECT().UintN(uint(20)).Return(uint(0))

	output, err := s.service.Roll(s.ctx, s.rollInput(1, 20, models.RollModeSum))
	s.Require().NoError(err)
	s.Equal(uint(1), output.Roll.Total)
	s.False(output.Roll.IsCriticalSuccess)
	s.True(output.Roll.IsCriticalFail)
}

func (s *RollServiceTestSuite) TestRollAdvantage() {
	gomock.InOrder(
		s.mockSource.EXPECT().UintN(uint(20)).Return(uint(3)),
		s.mockSource.EXPECT().UintN(uint(20)).Return(uint(11)),
	)

	output, err := s.service.Roll(s.ctx, s.rollInput(1, 20, models.RollModeAdvantage))
	s.Require().NoError(err)
	s.Equal(uint(12), output.Roll.Total)
	s.Equal(models.RollModeAdvantage, output.Roll.Mode)
}

func (s *RollServiceTestSuite) TestRollDisadvantage() {
	gomock.InOrder(
		s.mockSource.EXPECT().UintN(uint(20)).Return(uint(3)),
		s.mockSource.EXPECT().UintN(uint(20)).Return(uint(11)),
	)

	output, err := s.service.Roll(s.ctx, s.rollInput(1, 20, models.RollModeDisadvantage))
	s.Require().NoError(err)
	s.Equal(uint(4), output.Roll.Total)
}

func (s *RollServiceTestSuite) TestRollCritSuccessDoesNotDraw() {
	output, err := s.service.Roll(s.ctx, s.rollInput(3, 6, models.RollModeCritSuccess))
	s.Require().NoError(err)
	s.Equal(uint(18), output.Roll.Total)
	s.True(output.Roll.IsCriticalSuccess)
	s.False(output.Roll.IsCriticalFail)
}

func (s *RollServiceTestSuite) TestRollCritFailDoesNotDraw() {
	output, err := s.service.Roll(s.ctx, s.rollInput(3, 6, models.RollModeCritFail))
	s.Require().NoError(err)
	s.Equal(uint(3), output.Roll.Total)
	s.False(output.Roll.IsCriticalSuccess)
	s.True(output.Roll.IsCriticalFail)
}

func (s *RollServiceTestSuite) TestRollSingleSidedDieIsBothCriticals() {
	s.mockSource.EXPECT().UintN(uint(1)).Return(uint(0)).Times(2)

	output, err := s.service.Roll(s.ctx, s.rollInput(2, 1, models.RollModeSum))
	s.Require().NoError(err)
	s.Equal(uint(2), output.Roll.Total)
	s.True(output.Roll.IsCriticalSuccess)
	s.True(output.Roll.IsCriticalFail)
}

func (s *RollServiceTestSuite) TestRollNothingIsZero() {
	for _, mode := range models.RollModes {
		output, err := s.service.Roll(s.ctx, s.rollInput(0, 6, mode))
		s.Require().NoError(err, mode)
		s.Equal(uint(0), output.Roll.Total, mode)
		s.False(output.Roll.IsCriticalSuccess, mode)
		s.False(output.Roll.IsCriticalFail, mode)

		output, err = s.service.Roll(s.ctx, s.rollInput(10, 0, mode))
		s.Require().NoError(err, mode)
		s.Equal(uint(0), output.Roll.Total, mode)
		s.Equal(uint(0), output.Roll.Min, mode)
		s.Equal(uint(0), output.Roll.Max, mode)
	}
}

func (s *RollServiceTestSuite) TestRollRejectsNilInput() {
	_, err := s.service.Roll(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)
}

func (s *RollServiceTestSuite) TestRollRejectsInvalidMode() {
	_, err := s.service.Roll(s.ctx, s.rollInput(1, 20, "exploding"))
	s.ErrorIs(err, ErrInvalidMode)
}

func (s *RollServiceTestSuite) TestRollRejectsTooManyDice() {
	_, err := s.service.Roll(s.ctx, s.rollInput(11, 6, models.RollModeSum))
	s.ErrorIs(err, ErrTooManyDice)
}

func (s *RollServiceTestSuite) TestRollRejectsTooManySides() {
	_, err := s.service.Roll(s.ctx, s.rollInput(1, 101, models.RollModeSum))
	s.ErrorIs(err, ErrTooManySides)
}

func (s *RollServiceTestSuite) TestRollAtLimits() {
	s.mockSource.EXPECT().UintN(uint(100)).Return(uint(0)).Times(10)

	output, err := s.service.Roll(s.ctx, s.rollInput(10, 100, models.RollModeSum))
	s.Require().NoError(err)
	s.Equal(uint(10), output.Roll.Total)
}

func (s *RollServiceTestSuite) TestShortcutsCoverStandardDice() {
	s.Len(shortcuts, len(models.StandardDice))
	for _, sides := range models.StandardDice {
		s.NotNil(shortcuts[sides], sides)
	}
}

func (s *RollServiceTestSuite) TestSidesLabel() {
	s.Equal("d4", sidesLabel(4))
	s.Equal("d20", sidesLabel(20))
	s.Equal("other", sidesLabel(0))
	s.Equal("other", sidesLabel(7))
	s.Equal("other", sidesLabel(1000))
}

func (s *RollServiceTestSuite) TestRollCountsBySidesLabel() {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() {
		s.NoError(provider.Shutdown(context.Background()))
	}()

	svc, err := New(&Config{
		Source:        s.mockSource,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		MeterProvider: provider,
	})
	s.Require().NoError(err)

	s.mockSource.EXPECT().UintN(uint(20)).Return(uint(0))
	s.mockSource.EXPECT().UintN(uint(7)).Return(uint(0))
	s.mockSource.EXPECT().UintN(uint(999)).Return(uint(0))

	for _, sides := range []uint{20, 7, 999} {
		_, err = svc.Roll(s.ctx, s.rollInput(1, sides, models.RollModeSum))
		s.Require().NoError(err)
	}

	var rm metricdata.ResourceMetrics
	s.Require().NoError(reader.Collect(context.Background(), &rm))
	s.Require().Len(rm.ScopeMetrics, 1)
	s.Require().Len(rm.ScopeMetrics[0].Metrics, 1)
	s.Equal("dice.rolls", rm.ScopeMetrics[0].Metrics[0].Name)

	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	s.Require().True(ok)

	counts := make(map[string]int64)
	for _, point := range sum.DataPoints {
		value, found := point.Attributes.Value(attribute.Key("sides"))
		s.Require().True(found)
		counts[value.AsString()] += point.Value
	}

	s.Equal(map[string]int64{"d20": 1, "other": 2}, counts)
}
