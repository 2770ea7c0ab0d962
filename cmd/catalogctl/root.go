// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/tankobon/internal/bootstrap"
	"github.com/taibuivan/tankobon/internal/catalog"
	"github.com/taibuivan/tankobon/internal/platform/config"
	"github.com/taibuivan/tankobon/internal/platform/constants"
)

// # Root Command

// cli carries what every subcommand shares.
type cli struct {
	load    func() (*config.Config, error)
	cfg     *config.Config
	logger  *slog.Logger
	verbose bool
	timeout time.Duration
}

func loadConfig() (*config.Config, error) {
	return config.Load()
}

// newRootCommand builds the command tree writing results to out. load
// supplies the configuration so tests can bypass the environment.
func newRootCommand(out io.Writer, load func() (*config.Config, error)) *cobra.Command {
	app := &cli{load: load}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Browse and maintain the Tankobon catalogue",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.load()
			if err != nil {
				return err
			}
			app.cfg = cfg

			// Logs go to stderr so stdout stays pipeable.
			level := slog.LevelWarn
			if app.verbose || cfg.Debug {
				level = slog.LevelDebug
			}
			app.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	root.SetOut(out)

	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().DurationVar(&app.timeout, "timeout", constants.StartupTimeout, "Operation timeout")

	root.AddCommand(
		app.browseCommand(),
		app.showCommand(),
		app.categoriesCommand(),
		app.plansCommand(),
		app.exportCommand(),
		app.importCommand(),
		app.migrateCommand(),
	)

	return root
}

// context returns the command context bounded by --timeout.
func (app *cli) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, app.timeout)
}

// service loads the configured catalogue into a [catalog.Service] backed by
// throwaway in-memory sessions.
func (app *cli) service(cmd *cobra.Command) (*catalog.Service, func(), error) {
	ctx, cancel := app.context(cmd)
	defer cancel()

	opened, err := bootstrap.OpenCatalog(ctx, app.cfg, app.logger)
	if err != nil {
		return nil, nil, err
	}

	service := catalog.NewService(opened.Store, catalog.NewMemorySessionStore(time.Now), catalog.ServiceConfig{
		Locale:     app.cfg.CatalogLocale,
		PageSize:   app.cfg.CatalogPageSize,
		SessionTTL: app.cfg.SessionTTL,
	}, app.logger)

	return service, opened.Close, nil
}
