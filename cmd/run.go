package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"tycoon/bot"
	"tycoon/config"
	"tycoon/database"
	"tycoon/domain/events"
	"tycoon/domain/random"
	"tycoon/jobs"
	"tycoon/repository"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Missing .env is fine in production; config comes from the
	// environment there.
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	configureLogging(cfg)

	log.Info("Starting tycoon bot...")

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus, cfg.StartingBalance, cfg.MaxEnergy)
	picker := random.NewDefaultPicker()

	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(cfg, uowFactory, eventBus, picker)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	scheduler := jobs.NewScheduler(db, uowFactory, cfg)
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	scheduler.Stop()
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}
}
