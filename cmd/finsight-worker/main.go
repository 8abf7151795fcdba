package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"finsight/internal/amqp"
	"finsight/internal/backend"
	"finsight/internal/config"
	"finsight/internal/log"
	"finsight/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log.Setup(cfg.LogFormat, cfg.LogLevel, "worker")

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

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		slog.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	importWorker := worker.NewImportWorker(repo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := amqpClient.ConsumeImports(ctx, importWorker.HandleImportMessage)
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("consume imports: %w", err)
		}
		return nil
	})

	slog.Info("Import worker started", "queue", cfg.AMQPQueue)
	if err := g.Wait(); err != nil {
		slog.Error("Worker exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Worker stopped gracefully")
}
