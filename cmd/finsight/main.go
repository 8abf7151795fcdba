package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"finsight/internal/backend"
	"finsight/internal/cache"
	"finsight/internal/config"
	apphttp "finsight/internal/http"
	"finsight/internal/log"
	"finsight/internal/services"
)

func main() {
	// .env is for local development; absence is fine in production.
	_ = godotenv.Load()

	cfg := config.Load()
	log.Setup(cfg.LogFormat, cfg.LogLevel, "api")

	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := backend.NewRepository(cfg)
	if err != nil {
		slog.Error("Failed to initialize repository", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	reportCache := cache.New[any](cfg.CacheSize, cfg.CacheTTL)
	reports := services.NewReportService(repo, reportCache, cfg.Thresholds())
	srv := apphttp.NewServer(":"+cfg.Port, reports, repo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(srv.Start)

	// Stale cache entries are only touched on lookup, so sweep them
	// periodically to keep memory bounded.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.CacheTTL)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := reportCache.CleanExpired(); n > 0 {
					slog.Debug("Evicted expired report cache entries", "count", n)
				}
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}
