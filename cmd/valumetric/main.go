package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/Valumetric/internal/api"
	"github.com/MikeSquared-Agency/Valumetric/internal/cache"
	"github.com/MikeSquared-Agency/Valumetric/internal/config"
	"github.com/MikeSquared-Agency/Valumetric/internal/hermes"
	"github.com/MikeSquared-Agency/Valumetric/internal/store"
	"github.com/MikeSquared-Agency/Valumetric/internal/valuation"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logging.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Redis (optional)
	var weightCache cache.WeightCache
	if cfg.Redis.Addr != "" {
		rc := cache.NewRedisWeightCache(cache.NewRedisClient(cfg.Redis), cfg.CacheTTL())
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("failed to connect to redis, running without weight cache", "error", err)
			_ = rc.Close()
		} else {
			weightCache = rc
			defer rc.Close()
			logger.Info("connected to redis", "addr", cfg.Redis.Addr)
		}
	}

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	svc := valuation.New(db, weightCache, hermesClient, cfg, logger)
	if err := svc.SetupSubscriptions(ctx); err != nil {
		logger.Warn("failed to subscribe to weight requests", "error", err)
	}

	// Config hot reload. Only criteria and cost policy defaults take effect;
	// listeners and connections keep their startup values.
	if *configPath != "" {
		go func() {
			if err := config.Watch(ctx, *configPath, logger, svc.UpdateConfig); err != nil {
				logger.Warn("config watch stopped", "error", err)
			}
		}()
	}

	// API server
	router := api.NewRouter(svc, cfg.Server.RateLimitPerMinute, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
