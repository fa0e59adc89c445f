package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/dicebag/internal/common/uuid UUID

// UUID generates the IDs stamped on each roll
type UUID interface {
	NewUUID() string
}

// DefaultUUID implements UUID with random (v4) UUIDs
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new random (v4) UUID string
func (d *DefaultUUID) NewUUID() string {
	return uuid.NewString()
}
