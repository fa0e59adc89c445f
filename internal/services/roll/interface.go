package roll

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/dicebag/internal/services/roll Service

// Service defines the interface for roll operations
type Service interface {
	// Roll resolves a set of dice for a player
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)
}
