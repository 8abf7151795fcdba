// Package backend constructs the record repository named by the
// configuration.
package backend

import (
	"fmt"
	"log/slog"

	"finsight/internal/config"
	"finsight/internal/storage"
)

// NewRepository builds the repository for cfg.DataBackend. The caller
// owns Close.
func NewRepository(cfg *config.Config) (storage.Repository, error) {
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite repository: %w", err)
		}
		slog.Info("Initialized sqlite backend", "path", cfg.SQLiteDBPath)
		return repo, nil
	case "memory":
		slog.Info("Initialized memory backend")
		return storage.NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported data backend %q", cfg.DataBackend)
	}
}
