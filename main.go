package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"vending-bot/internal/bot"
	"vending-bot/internal/config"
	"vending-bot/internal/health"
	"vending-bot/internal/logger"
	"vending-bot/internal/service"
	"vending-bot/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logg := logger.New(cfg.LogLevel)
	if cfg.Token == "" {
		logg.Fatal("DISCORD_TOKEN is required")
	}

	store, err := storage.Open(cfg.DataFile)
	if err != nil {
		logg.Fatal("failed to open state file", "path", cfg.DataFile, "error", err)
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		logg.Fatal("failed to create discord session", "error", err)
	}

	svc := service.New(store, bot.NewRoleGranter(session), bot.NewChannelProvisioner(session), logg)
	b := bot.New(session, svc, logg)

	go func() {
		logg.Info("health server listening", "port", cfg.HealthPort)
		if err := health.New(cfg.HealthPort).Run(); err != nil {
			logg.Error("health server stopped", "error", err)
		}
	}()

	if err := b.Start(); err != nil {
		logg.Fatal("failed to open gateway connection", "error", err)
	}
	defer b.Close()

	logg.Info("bot is running")
	<-ctx.Done()
	logg.Info("received interruption signal, shutting down")
}
