package main

import (
	"fmt"
	"os"

	"outlay/internal/apiclient"
	"outlay/internal/config"
	"outlay/internal/logger"
	"outlay/internal/webapp"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	api := apiclient.New(cfg.APIBaseURL)
	router := webapp.NewRouter(cfg.SessionSecret, api)

	log.Infof("Starting Outlay web frontend on port %s (API at %s)", cfg.WebPort, cfg.APIBaseURL)
	return router.Run(":" + cfg.WebPort)
}
