// Package services orchestrates record writes across SQLite and AMQP.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"grana/internal/amqp"
	"grana/internal/core"
	"grana/internal/storage"
	"grana/internal/store"
)

// RecordService writes through to SQLite and publishes a record event
// for the export worker. Publishing is best effort: the local write is
// the source of truth and never fails because the broker is down.
type RecordService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewRecordService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *RecordService {
	return &RecordService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// List implements store.RecordLister.
func (s *RecordService) List(ctx context.Context) ([]core.Record, error) {
	return s.storage.List(ctx)
}

// Categories implements store.SuggestionReader.
func (s *RecordService) Categories(ctx context.Context) ([]string, error) {
	return s.storage.Categories(ctx)
}

// Owners implements store.SuggestionReader.
func (s *RecordService) Owners(ctx context.Context) ([]string, error) {
	return s.storage.Owners(ctx)
}

// Create implements store.RecordCreator.
func (s *RecordService) Create(ctx context.Context, r core.Record) (core.Record, error) {
	created, err := s.storage.Create(ctx, r)
	if err != nil {
		return core.Record{}, fmt.Errorf("save record: %w", err)
	}

	s.publish(ctx, created.ID, amqp.ActionCreated)
	return created, nil
}

// Update implements store.RecordUpdater.
func (s *RecordService) Update(ctx context.Context, id int64, patch store.RecordPatch) (core.Record, error) {
	updated, err := s.storage.Update(ctx, id, patch)
	if err != nil {
		return core.Record{}, fmt.Errorf("update record: %w", err)
	}

	s.publish(ctx, id, amqp.ActionUpdated)
	return updated, nil
}

// Delete implements store.RecordDeleter.
func (s *RecordService) Delete(ctx context.Context, id int64) error {
	if err := s.storage.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	s.publish(ctx, id, amqp.ActionDeleted)
	return nil
}

func (s *RecordService) publish(ctx context.Context, id int64, action amqp.Action) {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping record event", "id", id, "action", action)
		return
	}
	if err := s.amqpClient.PublishRecordEvent(ctx, id, action); err != nil {
		// The pending-export sweep picks the record up later.
		slog.ErrorContext(ctx, "Failed to publish record event",
			"id", id, "action", action, "error", err)
	}
}

// Close closes both storage and AMQP connections.
func (s *RecordService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close record service: %v", errs)
	}

	return nil
}
