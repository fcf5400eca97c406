package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tix/internal/auth"
	"github.com/desertthunder/tix/internal/repositories"
	"github.com/desertthunder/tix/internal/services"
	"github.com/desertthunder/tix/internal/shared"
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

	var store repositories.Store
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		store = repositories.NewCredentialStore(db)
	} else {
		logger.Warnf("database unavailable, credentials will not persist: %v", err)
		store = repositories.NewMemoryStore()
	}

	client := services.NewClient(config.API.BaseURL, config.API.SanctumURL, nil, logger)
	manager := auth.NewManager(store, client, logger)
	client.Use(services.BearerTransform(manager.Token), services.RequestIDTransform())

	runner := NewRunner(RunnerOpts{
		Config: config,
		API:    client,
		Auth:   manager,
		Store:  store,
		Logger: logger,
	})

	app := &cli.Command{
		Name:    "tix",
		Usage:   "Browse movies and book cinema tickets from the terminal",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				shared.SetLogLevel(logger, log.DebugLevel)
			}
			return ctx, nil
		},
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
