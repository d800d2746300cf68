package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/examhub-lk/examhub-api/internal/repository"
	"github.com/examhub-lk/examhub-api/internal/service"
	"github.com/examhub-lk/examhub-api/pkg/cache"
	"github.com/examhub-lk/examhub-api/pkg/database"
)

func cacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the search page cache",
		Commands: []*cli.Command{
			{
				Name:  "flush",
				Usage: "Drop every cached search page",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, logr, err := bootstrap()
					if err != nil {
						return err
					}
					defer logr.Sync() //nolint:errcheck

					if !cfg.Redis.Enabled {
						return errors.New("redis is not enabled")
					}
					client, err := cache.NewRedis(ctx, cfg.Redis, logr)
					if err != nil {
						return fmt.Errorf("connect redis: %w", err)
					}
					repo := repository.NewCacheRepository(client, logr)
					defer repo.Close() //nolint:errcheck

					return service.NewCacheService(repo, nil, cfg.Search.CacheTTL, logr, true).
						Invalidate(ctx, service.SearchCachePattern)
				},
			},
		},
	}
}

func pruneCommand() *cli.Command {
	return &cli.Command{
		Name:  "prune",
		Usage: "Remove failed search records not seen within the retention window",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "retention",
				Usage: "Override FAILED_SEARCH_RETENTION",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, logr, err := bootstrap()
			if err != nil {
				return err
			}
			defer logr.Sync() //nolint:errcheck

			retention := cfg.FailedSearch.Retention
			if d := c.Duration("retention"); d > 0 {
				retention = d
			}

			db, err := database.NewPostgres(cfg.Database, logr)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			svc := service.NewFailedSearchService(repository.NewFailedSearchRepository(db), nil, logr)
			pruneCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			removed, err := svc.Prune(pruneCtx, retention)
			if err != nil {
				return err
			}
			logr.Info("failed searches pruned", zap.Int64("removed", removed), zap.Duration("retention", retention))
			return nil
		},
	}
}
