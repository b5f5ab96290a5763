package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sethvargo/go-retry"

	"offer_summary_backend/internal/adapters"
	"offer_summary_backend/internal/cache"
	apphttp "offer_summary_backend/internal/http"
	"offer_summary_backend/internal/http/router"
	"offer_summary_backend/internal/offers"
	"offer_summary_backend/internal/offers/service"
	"offer_summary_backend/internal/raynet"
	"offer_summary_backend/internal/render"
	"offer_summary_backend/platform/config"
	"offer_summary_backend/platform/logger"
	"offer_summary_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if err := cfg.RequireRaynet(); err != nil {
		panic("invalid config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var summaryCache service.SummaryCache
	var health apphttp.HealthChecker
	if cfg.GetRedisURL() != "" {
		redisCache, err := cache.NewRedis(cfg)
		if err != nil {
			panic("failed to configure redis cache: " + err.Error())
		}
		defer func() { _ = redisCache.Close() }()

		if err := withRetry(ctx, log, "redis connection", 2*time.Second, redisCache.Ping); err != nil {
			log.Error("failed to connect to redis", "error", err)
			panic("failed to connect to redis: " + err.Error())
		}
		log.Info("redis summary cache enabled")
		summaryCache = redisCache
		health = redisCache
	} else {
		log.Info("in-memory summary cache enabled", "size", cfg.GetSummaryCacheSize())
		summaryCache = service.NewMemoryCache(cfg.GetSummaryCacheSize(), cfg.GetSummaryCacheTTL())
	}

	crm := raynet.New(cfg, log)

	// ========================================================================
	// Domain Modules
	// ========================================================================

	val := validator.New()

	offersModule, err := offers.NewModule(adapters.NewRaynetSource(crm), cfg, cfg.GetRaynetMaxConcurrency(), val, log)
	if err != nil {
		panic("failed to initialize offers module: " + err.Error())
	}
	offersModule.Service().SetCache(summaryCache)

	if cfg.IsRendererEnabled() {
		offersModule.Service().SetRenderer(adapters.NewDocumentRenderer(render.New(cfg)))
		log.Info("document renderer enabled", "url", cfg.GetRendererURL())
	} else {
		log.Info("document renderer disabled: RENDERER_URL not set")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Health:  health,
		Modules: []apphttp.Module{offersModule},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// withRetry runs fn up to five times with exponential backoff starting at base.
func withRetry(ctx context.Context, log *logger.Logger, name string, base time.Duration, fn func(context.Context) error) error {
	attempt := 0
	backoff := retry.WithMaxRetries(4, retry.NewExponential(base))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := fn(ctx); err != nil {
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}
