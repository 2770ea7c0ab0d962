// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/tankobon/internal/bootstrap"
	"github.com/taibuivan/tankobon/internal/catalog"
	"github.com/taibuivan/tankobon/internal/platform/migration"
)

// # Data Commands

func (app *cli) exportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the validated catalogue as YAML or JSON",
		Long: `Writes every record that survived validation, with derived slugs filled
in, in store order. The output is a valid CATALOG_FILE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeCatalog, err := app.service(cmd)
			if err != nil {
				return err
			}
			defer closeCatalog()

			raw, err := catalog.Encode(service.Store().All(), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "yaml or json")
	return cmd
}

func (app *cli) importCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the PostgreSQL catalogue with a YAML or JSON file",
		Long: `Validates the file with the same rules the API applies at startup and
writes the surviving records to DATABASE_URL in one transaction. Dropped
records are listed and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.context(cmd)
			defer cancel()

			store, err := catalog.LoadStore(ctx, catalog.NewFileSource(args[0]), app.logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, dropped := range store.Dropped() {
				fmt.Fprintf(out, "skipped #%d (id %d, %q): %v\n", dropped.Position, dropped.ID, dropped.Title, dropped.Reason)
			}

			if dryRun {
				_, err := fmt.Fprintf(out, "%d titles valid, nothing written\n", store.Len())
				return err
			}

			pool, err := bootstrap.OpenPool(ctx, app.cfg, app.logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := catalog.NewPostgresSource(pool, app.logger).Import(ctx, store.All()); err != nil {
				return err
			}

			_, err = fmt.Fprintf(out, "%d titles imported\n", store.Len())
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate only")
	return cmd
}

func (app *cli) migrateCommand() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the catalog schema at DATABASE_URL",
	}

	requireDatabase := func() error {
		if app.cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}
		return nil
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireDatabase(); err != nil {
					return err
				}
				return migration.RunUp(app.cfg.DatabaseURL, app.cfg.MigrationPath, app.logger)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert every migration, dropping the catalog schema",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireDatabase(); err != nil {
					return err
				}
				return migration.RunDown(app.cfg.DatabaseURL, app.cfg.MigrationPath, app.logger)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireDatabase(); err != nil {
					return err
				}
				status, err := migration.Version(app.cfg.DatabaseURL, app.cfg.MigrationPath, app.logger)
				if err != nil {
					return err
				}
				dirty := ""
				if status.Dirty {
					dirty = " (dirty)"
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d%s\n", status.Version, dirty)
				return err
			},
		},
	)

	return migrate
}
