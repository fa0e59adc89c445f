package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/dicebag/internal/common/clock"
	"github.com/KirkDiggler/dicebag/internal/common/uuid"
	"github.com/KirkDiggler/dicebag/internal/config"
	"github.com/KirkDiggler/dicebag/internal/dice"
	"github.com/KirkDiggler/dicebag/internal/handlers/discord"
	"github.com/KirkDiggler/dicebag/internal/logger"
	"github.com/KirkDiggler/dicebag/internal/services/messaging"
	"github.com/KirkDiggler/dicebag/internal/services/roll"
	"github.com/KirkDiggler/dicebag/internal/telemetry"
	"go.uber.org/zap"
)

const serviceName = "dicebag"

func main() {
	ctx := context.Background()
	log := logger.Get()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.Fatal("invalid log level", zap.String("level", cfg.LogLevel), zap.Error(err))
	}

	shutdownMetrics, err := telemetry.SetupMetrics(ctx, &telemetry.Config{
		ServiceName: serviceName,
		Enabled:     cfg.Metrics.Enabled,
		Interval:    cfg.Metrics.Interval,
	})
	if err != nil {
		log.Fatal("failed to set up metrics", zap.Error(err))
	}

	// One source shared by every roll and every message pick
	source := dice.NewSource(&dice.Config{
		Seed: cfg.Dice.Seed,
	})
	if cfg.Dice.Seed != 0 {
		log.Warn("using seeded dice source", zap.Uint64("seed", cfg.Dice.Seed))
	}

	rollSvc, err := roll.New(&roll.Config{
		MaxCount:      cfg.Dice.MaxCount,
		MaxSides:      cfg.Dice.MaxSides,
		Source:        source,
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		log.Fatal("failed to create roll service", zap.Error(err))
	}

	messagingSvc, err := messaging.New(&messaging.Config{
		Source: source,
	})
	if err != nil {
		log.Fatal("failed to create messaging service", zap.Error(err))
	}

	bot, err := discord.New(&discord.Config{
		Token:            cfg.DiscordToken,
		ApplicationID:    cfg.ApplicationID,
		GuildID:          cfg.GuildID,
		MaxCount:         cfg.Dice.MaxCount,
		MaxSides:         cfg.Dice.MaxSides,
		RollService:      rollSvc,
		MessagingService: messagingSvc,
	})
	if err != nil {
		log.Fatal("failed to create Discord bot", zap.Error(err))
	}

	if err := bot.Start(); err != nil {
		log.Fatal("failed to start Discord bot", zap.Error(err))
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := bot.Stop(); err != nil {
		log.Error("error stopping bot", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := shutdownMetrics(shutdownCtx); err != nil {
		log.Error("error shutting down metrics", zap.Error(err))
	}

	log.Info("bot has been shut down")
	_ = log.Sync()
}
