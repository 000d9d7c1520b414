package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"questionai/internal/app"
	"questionai/internal/config"
	"questionai/internal/logging"

	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables before reading configuration
	loaded, err := config.LoadDotEnv()
	if err != nil {
		logrus.Fatal(err)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logging.New(cfg.Log)
	if loaded {
		log.Info(".env file loaded successfully")
	} else {
		log.Warn(".env file not found, relying on system environment variables")
	}

	// Cancelled on SIGINT/SIGTERM for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx, cfg, log); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
