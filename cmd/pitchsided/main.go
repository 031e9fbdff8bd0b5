package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"pitchside/internal/config"
	"pitchside/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("ensure directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	srv, err := buildServer(cfg, logger)
	if err != nil {
		logger.Error("build server", logging.Error(err))
		log.Fatalf("build server: %v", err)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped", logging.Error(err))
		log.Fatalf("serve: %v", err)
	}
	logger.Info("pitchsided shutting down")
}
