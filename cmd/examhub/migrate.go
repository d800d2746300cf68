package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/examhub-lk/examhub-api/pkg/database"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply or revert database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "Migrations directory (defaults to MIGRATIONS_PATH)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(ctx context.Context, c *cli.Command) error {
					return runMigrate(c, true)
				},
			},
			{
				Name:  "down",
				Usage: "Revert the latest migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					return runMigrate(c, false)
				},
			},
		},
	}
}

func runMigrate(c *cli.Command, up bool) error {
	cfg, logr, err := bootstrap()
	if err != nil {
		return err
	}
	defer logr.Sync() //nolint:errcheck

	path := c.String("path")
	if path == "" {
		path = cfg.MigrationsPath
	}
	return database.Migrate(database.DSN(cfg.Database), path, up, logr)
}
