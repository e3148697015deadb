package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/puettse/cassian/internal/bot"
	"github.com/puettse/cassian/internal/config"
	"github.com/puettse/cassian/internal/discord"
	"github.com/puettse/cassian/internal/greeter"
	"github.com/puettse/cassian/internal/kindroid"
	"github.com/puettse/cassian/internal/logging"
	"github.com/puettse/cassian/internal/memory"
	"github.com/puettse/cassian/internal/store"
)

const (
	envFile    = ".env"
	configFile = "config.json"
)

func main() {
	// Everything up to the gateway open is startup configuration:
	// any failure here is fatal and the process must not connect.
	secrets, err := config.LoadSecrets(envFile)
	if err != nil {
		log.Fatalf("Failed to load secrets: %v", err)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	overlays, err := memory.Load(cfg.Memory.Files)
	if err != nil {
		log.Fatalf("Failed to load memory overlays: %v", err)
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open conversation log: %v", err)
	}

	session, err := discord.NewGatewaySession(secrets.DiscordToken)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	kin := kindroid.NewAPIClient(
		secrets.KindroidURL,
		secrets.KindroidAPIKey,
		cfg.Persona.ID,
		cfg.Persona.Name,
		cfg.Persona.EnableFilter,
		logger,
		kindroid.WithTimeout(cfg.ReplyTimeout()),
	)

	cassian := bot.New(session, kin, db, cfg, overlays, logger)

	ctx := context.Background()
	if err := cassian.Start(ctx); err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}

	greet := greeter.New(session, cfg.Greeter, logger)
	if err := greet.Start(); err != nil {
		log.Fatalf("Failed to start greeter: %v", err)
	}

	logger.Info("bot is now running, press CTRL-C to exit")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	logger.Info("shutting down")
	greet.Stop()
	if err := cassian.Close(ctx); err != nil {
		logger.Error("failed to close bot session", "error", err)
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close conversation log", "error", err)
	}
}
