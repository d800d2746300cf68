package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/examhub-lk/examhub-api/internal/catalog"
	"github.com/examhub-lk/examhub-api/internal/handler"
	"github.com/examhub-lk/examhub-api/internal/repository"
	"github.com/examhub-lk/examhub-api/internal/router"
	"github.com/examhub-lk/examhub-api/internal/service"
	"github.com/examhub-lk/examhub-api/pkg/cache"
	"github.com/examhub-lk/examhub-api/pkg/config"
	"github.com/examhub-lk/examhub-api/pkg/database"
	"github.com/examhub-lk/examhub-api/pkg/jobs"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the HTTP API",
		Action: runServe,
	}
}

func runServe(ctx context.Context, _ *cli.Command) error {
	cfg, logr, err := bootstrap()
	if err != nil {
		return err
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database, logr)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	checks := map[string]handler.Pinger{"database": db}

	var cacheRepo *repository.CacheRepository
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis, logr)
		if err != nil {
			logr.Warn("redis unavailable, search cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
			defer cacheRepo.Close() //nolint:errcheck
			checks["redis"] = handler.PingFunc(cacheRepo.Ping)
		}
	}
	var cacheStore service.CacheRepository
	if cacheRepo != nil {
		cacheStore = cacheRepo
	}
	searchCache := service.NewCacheService(cacheStore, metrics, cfg.Search.CacheTTL, logr, cfg.Search.CacheEnabled && cacheRepo != nil)

	cat := catalog.Default()
	validate := validator.New()
	documents := repository.NewDocumentRepository(db, cfg.Search.RPCName)
	failedSearches := repository.NewFailedSearchRepository(db)

	recorder := service.NewFailedSearchRecorder(failedSearches, metrics, logr, cfg.FailedSearch.Timeout)
	queue := jobs.NewQueue("failed-searches", recorder.HandleJob, jobs.QueueConfig{
		Workers:      cfg.FailedSearch.Workers,
		MaxRetries:   cfg.FailedSearch.Retries,
		RetryDelay:   cfg.FailedSearch.RetryDelay,
		DrainTimeout: 2 * cfg.FailedSearch.Timeout,
		Logger:       logr,
	})
	if err := metrics.RegisterQueueDepth("failed-searches", queue.Depth); err != nil {
		return fmt.Errorf("register queue metrics: %w", err)
	}
	recorder.UseQueue(queue)
	queue.Start(context.WithoutCancel(ctx))
	defer queue.Stop()

	searchService, err := service.NewSearchService(documents, cat, recorder, searchCache, metrics, validate, logr, service.SearchConfig{
		RPCEnabled:      cfg.Search.RPCEnabled,
		PrimaryTimeout:  cfg.Search.PrimaryTimeout,
		FallbackTimeout: cfg.Search.FallbackTimeout,
		DefaultLimit:    cfg.Search.DefaultLimit,
		MaxLimit:        cfg.Search.MaxLimit,
		CacheTTL:        cfg.Search.CacheTTL,
	})
	if err != nil {
		return fmt.Errorf("init search service: %w", err)
	}
	failedSearchService := service.NewFailedSearchService(failedSearches, validate, logr)

	scheduler := cron.New()
	if cfg.FailedSearch.PruneSchedule != "" {
		if _, err := scheduler.AddFunc(cfg.FailedSearch.PruneSchedule, func() {
			removed, err := failedSearchService.Prune(ctx, cfg.FailedSearch.Retention)
			if err != nil {
				logr.Error("failed search prune failed", zap.Error(err))
				return
			}
			logr.Info("failed searches pruned", zap.Int64("removed", removed))
		}); err != nil {
			return fmt.Errorf("schedule failed search prune: %w", err)
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	verifier := service.NewTokenVerifier(service.AuthConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	}, logr)

	engine := router.New(router.Deps{
		APIPrefix:           cfg.APIPrefix,
		AllowedOrigins:      cfg.CORS.AllowedOrigins,
		EnableDocs:          cfg.Env != config.EnvProduction,
		Logger:              logr,
		Metrics:             metrics,
		Verifier:            verifier,
		MetricsHandler:      handler.NewMetricsHandler(metrics, checks),
		SearchHandler:       handler.NewSearchHandler(searchService),
		SubjectHandler:      handler.NewSubjectHandler(cat),
		FailedSearchHandler: handler.NewFailedSearchHandler(failedSearchService),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "rpc", cfg.Search.RPCName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
