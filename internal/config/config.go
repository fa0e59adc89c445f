package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// DefaultEnvFile is loaded when present and no other env files are given
const DefaultEnvFile = ".env"

var (
	ErrNoDice  = errors.New("DICE_MAX_COUNT must be greater than zero")
	ErrNoSides = errors.New("DICE_MAX_SIDES must be greater than zero")
)

// Config holds everything the bot reads from the environment
type Config struct {
	// Discord bot token
	DiscordToken string `env:"DISCORD_TOKEN, required"`

	// Application ID for the bot, falls back to the session user when empty
	ApplicationID string `env:"APPLICATION_ID"`

	// Optional guild ID for development (server-specific commands)
	GuildID string `env:"GUILD_ID"`

	LogLevel string `env:"LOG_LEVEL, default=info"`

	Dice    *DiceConfig    `env:", prefix=DICE_"`
	Metrics *MetricsConfig `env:", prefix=METRICS_"`
}

// DiceConfig bounds what a single command may ask for
type DiceConfig struct {
	MaxCount uint `env:"MAX_COUNT, default=100"`
	MaxSides uint `env:"MAX_SIDES, default=1000"`

	// Seed of 0 uses the process-wide source
	Seed uint64 `env:"SEED, default=0"`
}

// MetricsConfig controls the stdout metrics exporter
type MetricsConfig struct {
	Enabled  bool          `env:"ENABLED, default=false"`
	Interval time.Duration `env:"INTERVAL, default=1m"`
}

// Load reads env files (ignoring missing ones) and then the process environment.
// Variables already set in the environment win over the files.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}

	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}

	return Process(ctx, envconfig.OsLookuper())
}

// Process builds a Config from the given lookuper
func Process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values the struct tags cannot express
func (c *Config) Validate() error {
	if c.Dice == nil || c.Dice.MaxCount == 0 {
		return ErrNoDice
	}

	if c.Dice.MaxSides == 0 {
		return ErrNoSides
	}

	return nil
}
