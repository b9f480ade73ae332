package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloud-ru/mcp-debt-planner-go/internal/cache"
	"github.com/cloud-ru/mcp-debt-planner-go/internal/config"
	"github.com/cloud-ru/mcp-debt-planner-go/internal/logging"
	"github.com/cloud-ru/mcp-debt-planner-go/internal/server"
	"github.com/cloud-ru/mcp-debt-planner-go/internal/tools"
	"github.com/cloud-ru/mcp-debt-planner-go/internal/tracing"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	tp, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint)
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	resultCache, closeCache := newCache(ctx, cfg, logger)
	defer closeCache()

	registry := tools.NewRegistry(cfg, tracing.Tracer).WithCache(resultCache, cfg.CacheTTL)

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(cfg, registry, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

// newCache выбирает Redis, если он задан и доступен, иначе кэш в памяти
func newCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Cache, func()) {
	if cfg.RedisAddr == "" {
		logger.Info("result cache: in-memory")
		return cache.NewMemoryCache(cfg.CacheMaxEntries), func() {}
	}

	rc := cache.NewRedisCache(cfg.RedisAddr)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, falling back to in-memory cache", "addr", cfg.RedisAddr, "error", err)
		_ = rc.Close()
		return cache.NewMemoryCache(cfg.CacheMaxEntries), func() {}
	}

	logger.Info("result cache: redis", "addr", cfg.RedisAddr)
	return rc, func() {
		if err := rc.Close(); err != nil {
			logger.Warn("redis close failed", "error", err)
		}
	}
}
