package messaging

import (
	"github.com/KirkDiggler/dicebag/internal/dice"
	"github.com/KirkDiggler/dicebag/internal/models"
)

// ErrorType categorizes user facing errors
type ErrorType string

const (
	ErrorTypeTooManyDice  ErrorType = "too_many_dice"
	ErrorTypeTooManySides ErrorType = "too_many_sides"
	ErrorTypeInvalidMode  ErrorType = "invalid_mode"
	ErrorTypeUnknown      ErrorType = "unknown"
)

// GetRollResultMessageInput contains the input for GetRollResultMessage
type GetRollResultMessageInput struct {
	// Roll is the resolved roll to describe
	Roll *models.Roll
}

// GetRollResultMessageOutput contains the output for GetRollResultMessage
type GetRollResultMessageOutput struct {
	Title   string
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// ErrorType is the type of error
	ErrorType ErrorType

	// Detail is appended to the message when set
	Detail string
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Title   string
	Message string
}

// Config contains configuration for the messaging service
type Config struct {
	// Source picks between the available lines
	Source dice.Source
}
