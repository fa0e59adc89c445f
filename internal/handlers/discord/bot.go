package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/dicebag/internal/logger"
	"github.com/KirkDiggler/dicebag/internal/services/messaging"
	"github.com/KirkDiggler/dicebag/internal/services/roll"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Bot represents the Discord bot instance
type Bot struct {
	session     *discordgo.Session
	commands    map[string]CommandHandler
	commandIDs  map[string]string // Maps command name to command ID
	components  map[string]ComponentHandlerFunc
	rollCommand *RollCommand
	config      *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Limits advertised on the roll command options
	MaxCount uint
	MaxSides uint

	// Services
	RollService      roll.Service
	MessagingService messaging.Service
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	rollCommand, err := NewRollCommand(&RollCommandConfig{
		RollService:      cfg.RollService,
		MessagingService: cfg.MessagingService,
		MaxCount:         cfg.MaxCount,
		MaxSides:         cfg.MaxSides,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create roll command: %w", err)
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:     session,
		commands:    make(map[string]CommandHandler),
		commandIDs:  make(map[string]string),
		rollCommand: rollCommand,
		config:      cfg,
	}

	bot.components = map[string]ComponentHandlerFunc{
		ButtonRollAgain: rollCommand.HandleRollAgain,
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(b.rollCommand); err != nil {
		return fmt.Errorf("failed to register roll command: %w", err)
	}

	logger.Get().Info("bot is now running")
	return nil
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	log := logger.Get()
	appID := b.applicationID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Warn("failed to delete command", zap.String("command", cmdName), zap.String("command_id", cmdID), zap.Error(err))
		} else {
			log.Info("deleted command", zap.String("command", cmdName), zap.String("command_id", cmdID))
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	log := logger.Get().With(zap.String("command", cmd.GetName()))

	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	if b.config.GuildID != "" {
		log.Info("registering command for guild", zap.String("guild_id", b.config.GuildID))
	} else {
		log.Info("registering command globally")
	}

	createdCmd, err := b.session.ApplicationCommandCreate(b.applicationID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Info("registered command", zap.String("command_id", createdCmd.ID))

	return nil
}

// applicationID falls back to the session user ID if no application ID is configured
func (b *Bot) applicationID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}

	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	log := logger.Get().With(zap.String("interaction_id", i.ID))

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		// Handle slash commands
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Error("error handling command", zap.String("command", name), zap.Error(err))
			}
		}
	case discordgo.InteractionMessageComponent:
		// Handle buttons and other components
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Error("error handling component interaction", zap.Error(err))
		}
	}
}

// ComponentHandlerFunc handles a button press
type ComponentHandlerFunc func(s *discordgo.Session, i *discordgo.InteractionCreate) error

// handleComponentInteraction handles button clicks
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	handler, ok := b.componentHandler(customID)
	if !ok {
		return RespondWithError(s, i, "Error", fmt.Sprintf("Unknown button: %s", customID))
	}

	return handler(s, i)
}

// componentHandler finds the handler for a custom ID by its prefix
func (b *Bot) componentHandler(customID string) (ComponentHandlerFunc, bool) {
	prefix, _, found := strings.Cut(customID, customIDSeparator)
	if !found {
		return nil, false
	}

	handler, ok := b.components[prefix]
	return handler, ok
}
