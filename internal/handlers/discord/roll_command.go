package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/KirkDiggler/dicebag/internal/logger"
	"github.com/KirkDiggler/dicebag/internal/models"
	"github.com/KirkDiggler/dicebag/internal/services/messaging"
	"github.com/KirkDiggler/dicebag/internal/services/roll"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Option names for the roll command
const (
	OptionCount = "count"
	OptionSides = "sides"
	OptionMode  = "mode"
)

// Defaults used when an option is left out
const (
	DefaultCount uint = 1
	DefaultSides uint = 20
)

// RollCommandConfig holds the dependencies of the roll command
type RollCommandConfig struct {
	RollService      roll.Service
	MessagingService messaging.Service

	// Upper bounds offered to Discord for the count and sides options
	MaxCount uint
	MaxSides uint
}

// RollCommand handles the /roll command and the roll again button
type RollCommand struct {
	BaseCommand
	rollService      roll.Service
	messagingService messaging.Service
}

// NewRollCommand creates a new roll command handler
func NewRollCommand(cfg *RollCommandConfig) (*RollCommand, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RollService == nil {
		return nil, errors.New("roll service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	maxCount := cfg.MaxCount
	if maxCount == 0 {
		maxCount = roll.DefaultMaxCount
	}

	maxSides := cfg.MaxSides
	if maxSides == 0 {
		maxSides = roll.DefaultMaxSides
	}

	zero := float64(0)

	modeChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.RollModes))
	for _, mode := range models.RollModes {
		modeChoices = append(modeChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  mode.Label(),
			Value: string(mode),
		})
	}

	return &RollCommand{
		BaseCommand: BaseCommand{
			Name:        "roll",
			Description: "Roll some dice",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        OptionCount,
					Description: fmt.Sprintf("How many dice to roll (default %d)", DefaultCount),
					MinValue:    &zero,
					MaxValue:    float64(maxCount),
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        OptionSides,
					Description: fmt.Sprintf("Sides on each die (default %d)", DefaultSides),
					MinValue:    &zero,
					MaxValue:    float64(maxSides),
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        OptionMode,
					Description: "How to resolve the dice (default Roll)",
					Choices:     modeChoices,
				},
			},
		},
		rollService:      cfg.RollService,
		messagingService: cfg.MessagingService,
	}, nil
}

// Handle processes a Discord interaction for the roll command
func (c *RollCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	input, err := rollInputFromOptions(data.Options)
	if err != nil {
		return RespondWithError(s, i, "Invalid Roll", err.Error())
	}

	return c.respond(s, i, input, newMessageResponse)
}

// HandleRollAgain repeats the roll encoded in a roll again button for whoever pressed it
// and updates the message in place
func (c *RollCommand) HandleRollAgain(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	input, err := parseRollAgainCustomID(i.MessageComponentData().CustomID)
	if err != nil {
		return RespondWithError(s, i, "Invalid Roll", err.Error())
	}

	return c.respond(s, i, input, rollAgainResponse)
}

func (c *RollCommand) respond(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	input *roll.RollInput,
	build func(*discordgo.InteractionResponseData) *discordgo.InteractionResponse,
) error {
	input.PlayerID, input.PlayerName = interactionUser(i)

	ctx := interactionContext(i, input.PlayerID)

	return s.InteractionRespond(i.Interaction, build(c.Execute(ctx, input)))
}

// Execute rolls input and renders the response, including user facing errors
func (c *RollCommand) Execute(ctx context.Context, input *roll.RollInput) *discordgo.InteractionResponseData {
	log := logger.FromCtx(ctx)

	output, err := c.rollService.Roll(ctx, input)
	if err != nil {
		log.Info("roll rejected", zap.Error(err))
		return c.renderRollError(ctx, err)
	}

	message, err := c.messagingService.GetRollResultMessage(ctx, &messaging.GetRollResultMessageInput{
		Roll: output.Roll,
	})
	if err != nil {
		log.Warn("failed to get roll message", zap.Error(err))
		message = &messaging.GetRollResultMessageOutput{
			Title:   output.Roll.Mode.Label(),
			Message: strconv.FormatUint(uint64(output.Roll.Total), 10),
		}
	}

	return renderRoll(output.Roll, message)
}

func (c *RollCommand) renderRollError(ctx context.Context, rollErr error) *discordgo.InteractionResponseData {
	input := &messaging.GetErrorMessageInput{
		ErrorType: messaging.ErrorTypeUnknown,
	}

	switch {
	case errors.Is(rollErr, roll.ErrTooManyDice):
		input.ErrorType = messaging.ErrorTypeTooManyDice
		input.Detail = rollErr.Error()
	case errors.Is(rollErr, roll.ErrTooManySides):
		input.ErrorType = messaging.ErrorTypeTooManySides
		input.Detail = rollErr.Error()
	case errors.Is(rollErr, roll.ErrInvalidMode):
		input.ErrorType = messaging.ErrorTypeInvalidMode
		input.Detail = rollErr.Error()
	}

	message, err := c.messagingService.GetErrorMessage(ctx, input)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to get error message", zap.Error(err))
		return renderError("Error", rollErr.Error())
	}

	return renderError(message.Title, message.Message)
}

// rollInputFromOptions reads the command options, falling back to the defaults
func rollInputFromOptions(options []*discordgo.ApplicationCommandInteractionDataOption) (*roll.RollInput, error) {
	input := &roll.RollInput{
		Count: DefaultCount,
		Sides: DefaultSides,
		Mode:  models.RollModeSum,
	}

	for _, option := range options {
		switch option.Name {
		case OptionCount:
			value := option.IntValue()
			if value < 0 {
				return nil, fmt.Errorf("%s cannot be negative", OptionCount)
			}
			input.Count = uint(value)
		case OptionSides:
			value := option.IntValue()
			if value < 0 {
				return nil, fmt.Errorf("%s cannot be negative", OptionSides)
			}
			input.Sides = uint(value)
		case OptionMode:
			input.Mode = models.RollMode(option.StringValue())
		}
	}

	return input, nil
}

// interactionUser returns the ID and display name of whoever triggered the interaction
func interactionUser(i *discordgo.InteractionCreate) (string, string) {
	if i.Member != nil && i.Member.User != nil {
		name := i.Member.User.Username
		if i.Member.Nick != "" {
			name = i.Member.Nick
		}
		return i.Member.User.ID, name
	}

	// Direct messages carry the user without a member
	if i.User != nil {
		return i.User.ID, i.User.Username
	}

	return "", ""
}

// interactionContext returns a context carrying a logger scoped to the interaction
func interactionContext(i *discordgo.InteractionCreate, userID string) context.Context {
	l := logger.Get().With(
		zap.String("interaction_id", i.ID),
		zap.String("user_id", userID),
	)

	return logger.WithCtx(context.Background(), l)
}
