package dice

import (
	"math/rand/v2"
	"sync"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_source.go github.com/KirkDiggler/dicebag/internal/dice Source

// Source is the randomness provider for dice rolls.
//
// Implementations must be safe for concurrent use.
type Source interface {
	// UintN returns a uniformly distributed value in [0, n). n is always > 0.
	UintN(n uint) uint
}

// Config for a dice source
type Config struct {
	// Optional seed for testing and local debugging
	Seed uint64
}

// NewSource returns the process-wide source, or a seeded one when cfg.Seed is set
func NewSource(cfg *Config) Source {
	if cfg == nil || cfg.Seed == 0 {
		return globalSource{}
	}

	return &seededSource{
		random: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)),
	}
}

// globalSource draws from the math/rand/v2 top-level generator, which the
// runtime seeds and synchronizes.
type globalSource struct{}

func (globalSource) UintN(n uint) uint {
	return rand.UintN(n)
}

// seededSource guards a private generator so it can be shared between goroutines
type seededSource struct {
	mu     sync.Mutex
	random *rand.Rand
}

func (s *seededSource) UintN(n uint) uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.random.UintN(n)
}
