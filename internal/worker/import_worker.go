// Package worker ingests raw record payloads from the import queue into
// the record store.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"finsight/internal/amqp"
	"finsight/internal/normalize"
	"finsight/internal/storage"
)

// ImportWorker normalizes raw import payloads and writes the canonical
// records through the repository.
type ImportWorker struct {
	repo storage.Repository
}

func NewImportWorker(repo storage.Repository) *ImportWorker {
	return &ImportWorker{repo: repo}
}

// HandleImportMessage processes one import message. Payloads that do not
// decode to an object are dropped with a log line rather than requeued;
// re-delivery cannot fix a malformed export.
func (w *ImportWorker) HandleImportMessage(ctx context.Context, msg *amqp.RecordImportMessage) error {
	var raw map[string]any
	if err := json.Unmarshal(msg.Payload, &raw); err != nil {
		slog.ErrorContext(ctx, "Dropping undecodable import payload",
			"id", msg.ID,
			"kind", msg.Kind,
			"error", err)
		return nil
	}

	switch msg.Kind {
	case amqp.KindExpense:
		exp := normalize.Expense(raw)
		if err := exp.Validate(); err != nil {
			slog.WarnContext(ctx, "Dropping invalid expense import",
				"id", msg.ID,
				"error", err)
			return nil
		}
		id, err := w.repo.InsertExpense(ctx, exp)
		if err != nil {
			return fmt.Errorf("insert imported expense: %w", err)
		}
		slog.InfoContext(ctx, "Imported expense", "message_id", msg.ID, "record_id", id)
		return nil

	case amqp.KindRevenue:
		rev := normalize.Revenue(raw)
		if err := rev.Validate(); err != nil {
			slog.WarnContext(ctx, "Dropping invalid revenue import",
				"id", msg.ID,
				"error", err)
			return nil
		}
		id, err := w.repo.InsertRevenue(ctx, rev)
		if err != nil {
			return fmt.Errorf("insert imported revenue: %w", err)
		}
		slog.InfoContext(ctx, "Imported revenue", "message_id", msg.ID, "record_id", id)
		return nil

	default:
		slog.WarnContext(ctx, "Dropping import with unknown kind",
			"id", msg.ID,
			"kind", msg.Kind)
		return nil
	}
}
