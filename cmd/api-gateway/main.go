package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/missing-persons-api/api/swagger"
	"github.com/noah-isme/missing-persons-api/internal/handler"
	"github.com/noah-isme/missing-persons-api/internal/repository"
	"github.com/noah-isme/missing-persons-api/internal/service"
	"github.com/noah-isme/missing-persons-api/pkg/cache"
	"github.com/noah-isme/missing-persons-api/pkg/config"
	"github.com/noah-isme/missing-persons-api/pkg/database"
	"github.com/noah-isme/missing-persons-api/pkg/jobs"
	"github.com/noah-isme/missing-persons-api/pkg/logger"
)

// @title Missing Persons API
// @version 1.0.0
// @description Registry reads with fallback data, case history and citizen reports
// @BasePath /
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()
	checks := map[string]handler.ReadinessCheck{}

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, registry cache disabled", zap.Error(err))
		} else {
			defer client.Close() //nolint:errcheck
			cacheRepo = repository.NewCacheRepository(client)
			checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cacheRepo != nil)

	registry := repository.NewRegistryRepository(cfg.Registry.BaseURL, cfg.Registry.Timeout)
	readParams := service.RegistryServiceParams{
		Primary:  registry,
		Cache:    cacheSvc,
		CacheTTL: cfg.Cache.TTL,
		Metrics:  metrics,
		Logger:   logr,
	}
	if cfg.Fallback.Enabled {
		fallback, err := repository.NewFallbackRepository()
		if err != nil {
			return fmt.Errorf("load fallback dataset: %w", err)
		}
		readParams.Fallback = fallback
	}

	reportParams := service.ReportServiceParams{
		Registry:  registry,
		Cache:     cacheSvc,
		Metrics:   metrics,
		Validator: validator.New(),
		Logger:    logr,
	}
	if cfg.Submissions.LogEnabled {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect submission log: %w", err)
		}
		defer db.Close() //nolint:errcheck
		checks["postgres"] = db.PingContext

		store := repository.NewSubmissionRepository(db)
		worker := service.NewSubmissionLogWorker(store, metrics, logr)
		queue := jobs.NewQueue("submission-log", worker.Handle, jobs.QueueConfig{
			Workers:    cfg.Submissions.Workers,
			MaxRetries: cfg.Submissions.Retries,
			RetryDelay: 2 * time.Second,
			Logger:     logr,
		})
		queue.Start(context.Background())
		defer queue.Stop()

		reportParams.Store = store
		reportParams.Queue = queue
	}

	router := newRouter(cfg, routerDeps{
		persons: service.NewPersonService(readParams),
		history: service.NewHistoryService(readParams, nil),
		reports: service.NewReportService(reportParams),
		metrics: metrics,
		checks:  checks,
		logger:  logr,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env),
			zap.Bool("fallback", cfg.Fallback.Enabled), zap.Bool("cache", cacheSvc.Enabled()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
