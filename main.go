package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/seo-optimizer/swissseo/analyzer"
	"github.com/seo-optimizer/swissseo/config"
	"github.com/seo-optimizer/swissseo/history"
	"github.com/seo-optimizer/swissseo/logging"
	"github.com/seo-optimizer/swissseo/middleware"
	"github.com/seo-optimizer/swissseo/server"
	"github.com/seo-optimizer/swissseo/stats"
)

// statsRetentionMonths is how many months of cache statistics are kept
const statsRetentionMonths = 12

func main() {
	// Load environment configuration
	envLoaded := config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.DevMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if !envLoaded {
		logger.Info("no .env file found, using environment variables")
	}

	gin.SetMode(cfg.GinMode)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return err
	}

	// Initialize statistics
	cacheStats, err := stats.NewStorage(cfg.DataDir, logger)
	if err != nil {
		return err
	}
	cacheStats.Cleanup(statsRetentionMonths)

	requestStats, err := logging.NewStatistics(filepath.Join(cfg.DataDir, "statistics.json"), cfg.DevMode)
	if err != nil {
		return err
	}

	store, err := history.Open(filepath.Join(cfg.DataDir, "history.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	// Initialize services
	seoAnalyzer, err := analyzer.New(
		analyzer.WithLogger(logger),
		analyzer.WithMaxCacheEntries(cfg.CacheMaxEntries),
		analyzer.WithKeywordLimit(cfg.KeywordLimit),
		analyzer.WithRecorder(cacheStats),
	)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Analyzer:    seoAnalyzer,
		History:     store,
		Counters:    cacheStats,
		Statistics:  requestStats,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:      logger,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(srv.Handler(), "swissseo"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}

	if err := requestStats.Save(); err != nil {
		logger.Warn("failed to save request statistics", zap.Error(err))
	}
	if err := cacheStats.Shutdown(); err != nil {
		logger.Warn("failed to save cache statistics", zap.Error(err))
	}
	return nil
}
