package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/dicebag/internal/dice"
	"github.com/KirkDiggler/dicebag/internal/models"
)

// service implements the Service interface
type service struct {
	// source for selecting random messages
	source dice.Source
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	source := cfg.Source
	if source == nil {
		source = dice.NewSource(nil)
	}

	return &service{
		source: source,
	}, nil
}

// pick returns one of lines at random
func (s *service) pick(lines []string) string {
	return lines[s.source.UintN(uint(len(lines)))]
}

// GetRollResultMessage returns a message for a player's roll result
func (s *service) GetRollResultMessage(ctx context.Context, input *GetRollResultMessageInput) (*GetRollResultMessageOutput, error) {
	if input == nil || input.Roll == nil {
		return nil, errors.New("input cannot be nil")
	}

	roll := input.Roll
	name := roll.PlayerName
	if name == "" {
		name = "Someone"
	}

	var titles, messages []string

	switch {
	case roll.IsEmpty():
		titles = []string{
			"Nothing to Roll",
			"Air Ball!",
			"Zero!",
		}
		messages = []string{
			fmt.Sprintf("%s rolled %s. That's a zero, obviously.", name, notation(roll)),
			fmt.Sprintf("%s shook an empty cup. Still counts as a 0!", name),
			fmt.Sprintf("No dice, no glory. %s gets a 0.", name),
		}

	case !roll.Mode.IsRandom():
		// Fixed results skip the flavor and state the bound
		titles = []string{roll.Mode.Label()}
		if roll.Mode == models.RollModeCritSuccess {
			messages = []string{fmt.Sprintf("Every die on %s shows its top face: %d.", notation(roll), roll.Total)}
		} else {
			messages = []string{fmt.Sprintf("Every die on %s shows a 1: %d.", notation(roll), roll.Total)}
		}

	case roll.IsCriticalSuccess:
		titles = []string{
			"CRIT!",
			"BOOM! Critical Success!",
			fmt.Sprintf("Nat %d!", roll.Max),
			"Perfect Roll!",
			"MAXIMUM DAMAGE!",
			"DANGER ZONE!",
		}
		messages = []string{
			fmt.Sprintf("%s rolled a perfect %d!", name, roll.Total),
			fmt.Sprintf("The dice gods favor %s today! %d is as high as it goes!", name, roll.Total),
			fmt.Sprintf("%s is on fire! Every die came up max for %d!", name, roll.Total),
			fmt.Sprintf("Holy shitsnacks! %s rolled %d! Can't do better than that!", name, roll.Total),
			fmt.Sprintf("Look at %s showing off with a %d!", name, roll.Total),
		}

	case roll.IsCriticalFail:
		titles = []string{
			"CRITICAL FAIL!",
			"Ouch!",
			"Nat 1!",
			"Snake Eyes!",
		}
		messages = []string{
			fmt.Sprintf("%s rolled %d. Every single die came up 1.", name, roll.Total),
			fmt.Sprintf("The dice gods have forsaken %s. %d.", name, roll.Total),
			fmt.Sprintf("%s: 'I swear I had something for this...' *rolls a %d*", name, roll.Total),
			fmt.Sprintf("Do you want a critical fail? Because that's how %s gets a critical fail. %d.", name, roll.Total),
		}

	case roll.Mode == models.RollModeAdvantage:
		titles = []string{"Rolled with Advantage"}
		messages = []string{
			fmt.Sprintf("%s rolled twice and kept the better one: %d.", name, roll.Total),
			fmt.Sprintf("Best of two for %s: %d.", name, roll.Total),
		}

	case roll.Mode == models.RollModeDisadvantage:
		titles = []string{"Rolled with Disadvantage"}
		messages = []string{
			fmt.Sprintf("%s rolled twice and got stuck with the worse one: %d.", name, roll.Total),
			fmt.Sprintf("Worst of two for %s: %d. Rough.", name, roll.Total),
		}

	default:
		titles = []string{
			fmt.Sprintf("You Rolled %d", roll.Total),
			fmt.Sprintf("%s: %d", notation(roll), roll.Total),
		}
		messages = []string{
			fmt.Sprintf("%s rolled %s for %d.", name, notation(roll), roll.Total),
			fmt.Sprintf("The dice have spoken: %s gets %d.", name, roll.Total),
			fmt.Sprintf("%s rolled a %d. Not bad, not great.", name, roll.Total),
		}
	}

	return &GetRollResultMessageOutput{
		Title:   s.pick(titles),
		Message: s.pick(messages),
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var title string
	var messages []string

	switch input.ErrorType {
	case ErrorTypeTooManyDice:
		title = "Too Many Dice"
		messages = []string{
			"Whoa there, that's more dice than the bag holds.",
			"You can't fit that many dice in one hand. Try fewer.",
		}
	case ErrorTypeTooManySides:
		title = "Too Many Sides"
		messages = []string{
			"That die is basically a marble. Try fewer sides.",
			"Nobody makes a die with that many sides.",
		}
	case ErrorTypeInvalidMode:
		title = "Unknown Roll Mode"
		messages = []string{
			"I don't know how to roll like that.",
			"That's not a way to roll dice. Pick one of the listed modes.",
		}
	default:
		title = "Something Went Wrong"
		messages = []string{
			"The dice rolled off the table. Try again.",
			"Something went wrong. Shake the dice and try again?",
		}
	}

	message := s.pick(messages)
	if input.Detail != "" {
		message = fmt.Sprintf("%s (%s)", message, input.Detail)
	}

	return &GetErrorMessageOutput{
		Title:   title,
		Message: message,
	}, nil
}

// notation formats a roll like 3d6
func notation(roll *models.Roll) string {
	return fmt.Sprintf("%dd%d", roll.Count, roll.Sides)
}
