package roll

// RollError is a custom error type for roll-related errors
type RollError string

// Error implements the error interface
func (e RollError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilInput         RollError = "input cannot be nil"
	ErrInvalidMode      RollError = "invalid roll mode"
	ErrTooManyDice      RollError = "too many dice"
	ErrTooManySides     RollError = "too many sides"
	ErrNilConfig        RollError = "config cannot be nil"
	ErrNilSource        RollError = "dice source cannot be nil"
	ErrNilClock         RollError = "clock cannot be nil"
	ErrNilUUIDGenerator RollError = "UUID generator cannot be nil"
)
