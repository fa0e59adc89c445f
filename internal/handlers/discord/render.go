package discord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/dicebag/internal/models"
	"github.com/KirkDiggler/dicebag/internal/services/messaging"
	"github.com/KirkDiggler/dicebag/internal/services/roll"
	"github.com/bwmarrin/discordgo"
)

// Embed colors
const (
	colorRoll        = 0x00ff00 // Green
	colorCritSuccess = 0xffd700 // Gold
	colorCritFail    = 0xff0000 // Red
	colorError       = 0xff0000 // Red
)

const (
	// ButtonRollAgain prefixes the custom ID of the roll again button, which carries the roll to repeat
	ButtonRollAgain = "roll_again"

	customIDSeparator = ":"
)

// ErrInvalidCustomID is returned when a roll again button ID cannot be read
var ErrInvalidCustomID = errors.New("invalid roll again button")

// renderRoll renders a resolved roll as an embed with a roll again button
func renderRoll(result *models.Roll, message *messaging.GetRollResultMessageOutput) *discordgo.InteractionResponseData {
	color := colorRoll
	switch {
	case result.IsCriticalSuccess:
		color = colorCritSuccess
	case result.IsCriticalFail:
		color = colorCritFail
	}

	embed := &discordgo.MessageEmbed{
		Title:       message.Title,
		Description: message.Message,
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Dice",
				Value:  fmt.Sprintf("%dd%d", result.Count, result.Sides),
				Inline: true,
			},
			{
				Name:   "Mode",
				Value:  result.Mode.Label(),
				Inline: true,
			},
			{
				Name:   "Range",
				Value:  fmt.Sprintf("%d-%d", result.Min, result.Max),
				Inline: true,
			},
			{
				Name:  "Total",
				Value: fmt.Sprintf("**%d**", result.Total),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: result.ID,
		},
	}

	if !result.Timestamp.IsZero() {
		embed.Timestamp = result.Timestamp.Format(time.RFC3339)
	}

	rollAgainButton := discordgo.Button{
		Label:    "Roll Again",
		Style:    discordgo.PrimaryButton,
		CustomID: rollAgainCustomID(result),
		Emoji: &discordgo.ComponentEmoji{
			Name: "🎲",
		},
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{rollAgainButton},
			},
		},
	}
}

// rollAgainResponse updates the message the button was pressed on.
// Ephemeral data (errors) goes out as a new message so the last roll stays in place.
func rollAgainResponse(data *discordgo.InteractionResponseData) *discordgo.InteractionResponse {
	if data.Flags&discordgo.MessageFlagsEphemeral != 0 {
		return newMessageResponse(data)
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	}
}

// renderError renders an ephemeral error embed
func renderError(title, message string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       title,
				Description: message,
				Color:       colorError,
			},
		},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}

// rollAgainCustomID encodes a roll as roll_again:<count>:<sides>:<mode>
func rollAgainCustomID(result *models.Roll) string {
	return strings.Join([]string{
		ButtonRollAgain,
		strconv.FormatUint(uint64(result.Count), 10),
		strconv.FormatUint(uint64(result.Sides), 10),
		string(result.Mode),
	}, customIDSeparator)
}

// parseRollAgainCustomID reads the roll encoded by rollAgainCustomID
func parseRollAgainCustomID(customID string) (*roll.RollInput, error) {
	parts := strings.Split(customID, customIDSeparator)
	if len(parts) != 4 || parts[0] != ButtonRollAgain {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCustomID, customID)
	}

	count, err := strconv.ParseUint(parts[1], 10, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: count: %w", ErrInvalidCustomID, err)
	}

	sides, err := strconv.ParseUint(parts[2], 10, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: sides: %w", ErrInvalidCustomID, err)
	}

	return &roll.RollInput{
		Count: uint(count),
		Sides: uint(sides),
		Mode:  models.RollMode(parts[3]),
	}, nil
}
