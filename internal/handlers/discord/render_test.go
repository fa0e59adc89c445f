package discord

import (
	"testing"

	"github.com/KirkDiggler/dicebag/internal/models"
	"github.com/KirkDiggler/dicebag/internal/services/messaging"
	"github.com/KirkDiggler/dicebag/internal/services/roll"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollAgainCustomIDRoundTrip(t *testing.T) {
	for _, mode := range models.RollModes {
		result := &models.Roll{Count: 3, Sides: 6, Mode: mode}

		input, err := parseRollAgainCustomID(rollAgainCustomID(result))
		require.NoError(t, err)
		assert.Equal(t, &roll.RollInput{Count: 3, Sides: 6, Mode: mode}, input)
	}
}

func TestRollAgainCustomIDKeepsZeroes(t *testing.T) {
	input, err := parseRollAgainCustomID(rollAgainCustomID(&models.Roll{Mode: models.RollModeSum}))
	require.NoError(t, err)
	assert.Equal(t, uint(0), input.Count)
	assert.Equal(t, uint(0), input.Sides)
}

func TestParseRollAgainCustomIDRejectsGarbage(t *testing.T) {
	for _, customID := range []string{
		"",
		"roll_again",
		"roll_again:1:6",
		"join_game:1:6:sum",
		"roll_again:x:6:sum",
		"roll_again:1:-6:sum",
		"roll_again:1:6:sum:extra",
	} {
		_, err := parseRollAgainCustomID(customID)
		assert.ErrorIs(t, err, ErrInvalidCustomID, customID)
	}
}

func TestRenderRollColors(t *testing.T) {
	message := &messaging.GetRollResultMessageOutput{Title: "title", Message: "message"}

	data := renderRoll(&models.Roll{Count: 1, Sides: 20, Total: 20, IsCriticalSuccess: true}, message)
	assert.Equal(t, colorCritSuccess, data.Embeds[0].Color)

	data = renderRoll(&models.Roll{Count: 1, Sides: 20, Total: 1, IsCriticalFail: true}, message)
	assert.Equal(t, colorCritFail, data.Embeds[0].Color)

	data = renderRoll(&models.Roll{Count: 1, Sides: 20, Total: 10}, message)
	assert.Equal(t, colorRoll, data.Embeds[0].Color)
}

func TestRenderRollFields(t *testing.T) {
	data := renderRoll(&models.Roll{
		ID:    "test-roll-id",
		Count: 3,
		Sides: 6,
		Mode:  models.RollModeSum,
		Total: 11,
		Min:   3,
		Max:   18,
	}, &messaging.GetRollResultMessageOutput{Title: "title", Message: "message"})

	require.Len(t, data.Embeds, 1)
	fields := data.Embeds[0].Fields
	require.Len(t, fields, 4)
	assert.Equal(t, "3d6", fields[0].Value)
	assert.Equal(t, "Roll", fields[1].Value)
	assert.Equal(t, "3-18", fields[2].Value)
	assert.Equal(t, "**11**", fields[3].Value)
	assert.Empty(t, data.Embeds[0].Timestamp)
}

func TestRenderError(t *testing.T) {
	data := renderError("title", "message")

	require.Len(t, data.Embeds, 1)
	assert.Equal(t, "title", data.Embeds[0].Title)
	assert.Equal(t, "message", data.Embeds[0].Description)
}

func TestRollAgainResponseUpdatesMessage(t *testing.T) {
	data := renderRoll(&models.Roll{Count: 1, Sides: 20, Total: 12, Mode: models.RollModeSum},
		&messaging.GetRollResultMessageOutput{Title: "title", Message: "message"})

	response := rollAgainResponse(data)
	assert.Equal(t, discordgo.InteractionResponseUpdateMessage, response.Type)
	assert.Same(t, data, response.Data)
}

func TestRollAgainResponseSendsErrorsAsNewMessage(t *testing.T) {
	data := renderError("title", "message")

	response := rollAgainResponse(data)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, response.Type)
	assert.Same(t, data, response.Data)
}

func TestNewMessageResponse(t *testing.T) {
	data := renderError("title", "message")

	response := newMessageResponse(data)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, response.Type)
	assert.Same(t, data, response.Data)
}
