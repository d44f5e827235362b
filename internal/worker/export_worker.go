// Package worker moves records from SQLite to the export spreadsheet.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"grana/internal/amqp"
	"grana/internal/core"
	"grana/internal/storage"
)

// RecordExporter writes a single record row to the external sheet.
type RecordExporter interface {
	AppendRecord(ctx context.Context, r core.Record) error
}

// ExportWorker consumes record events and appends the corresponding
// rows to the spreadsheet. The pending-export sweep is the backup path
// for events lost while the broker or worker was down.
type ExportWorker struct {
	storage   *storage.SQLiteRepository
	exporter  RecordExporter
	batchSize int
}

func NewExportWorker(storage *storage.SQLiteRepository, exporter RecordExporter, batchSize int) *ExportWorker {
	return &ExportWorker{
		storage:   storage,
		exporter:  exporter,
		batchSize: batchSize,
	}
}

// HandleEvent processes a single record event from AMQP.
func (w *ExportWorker) HandleEvent(ctx context.Context, msg *amqp.RecordEvent) error {
	slog.InfoContext(ctx, "Processing record event",
		"id", msg.ID,
		"action", msg.Action)

	switch msg.Action {
	case amqp.ActionCreated, amqp.ActionUpdated:
		return w.exportRecord(ctx, msg.ID)
	case amqp.ActionDeleted:
		// Rows of deleted records stay on the sheet; it is an append-only
		// audit trail, not a mirror.
		slog.InfoContext(ctx, "Record deleted locally, sheet row kept", "id", msg.ID)
		return nil
	default:
		slog.WarnContext(ctx, "Unknown record event action", "action", msg.Action)
		return nil
	}
}

// ProcessPending exports records whose events never arrived.
func (w *ExportWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.GetPendingExports(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending exports: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending exports", "count", len(pending))

	for _, p := range pending {
		if err := w.exportRecord(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to export record", "id", p.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupCheck drains the pending backlog once at worker startup, with
// a larger batch to recover from downtime quickly.
func (w *ExportWorker) StartupCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingExports(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending exports for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending exports found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending exports on startup, processing...",
		"count", len(pending))

	exported := 0
	failed := 0
	for _, p := range pending {
		if err := w.exportRecord(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to export record during startup",
				"id", p.ID, "error", err)
			failed++
			continue
		}
		exported++
	}

	slog.InfoContext(ctx, "Startup export check completed",
		"total", len(pending),
		"exported", exported,
		"errors", failed)

	return nil
}

func (w *ExportWorker) exportRecord(ctx context.Context, id int64) error {
	rec, err := w.storage.GetRecord(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		// Deleted between the event and now; nothing to export.
		slog.WarnContext(ctx, "Record vanished before export", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get record from storage: %w", err)
	}

	if err := w.exporter.AppendRecord(ctx, rec); err != nil {
		if markErr := w.storage.MarkExportError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to sheet: %w", err)
	}

	if err := w.storage.MarkExported(ctx, id); err != nil {
		// The row landed; only the bookkeeping failed.
		slog.ErrorContext(ctx, "Failed to mark as exported", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Record exported",
		"id", id,
		"owner", rec.Owner,
		"amount_cents", rec.Amount.Cents)

	return nil
}
