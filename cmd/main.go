package main

import (
	"context"
	"errors"
	"os"

	"github.com/rossw/tvrx/internal/services"
	"github.com/rossw/tvrx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	gateway := services.NewClient(config.API.BaseURL, nil)
	session := services.NewSessionManager(gateway, config.Session.Email)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Gateway: gateway,
		Session: session,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "tvrx",
		Usage:    "TV show recommendations for the household, from the couch",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
