// Package storage persists finance records in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"grana/internal/core"
	"grana/internal/store"

	_ "modernc.org/sqlite"
)

var ErrNotFound = store.ErrNotFound

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const recordColumns = "id, record_date, owner, category, kind, amount_cents, description, created_at"

func scanRecord(row interface{ Scan(...any) error }) (core.Record, error) {
	var (
		rec        core.Record
		recordDate time.Time
		kind       string
		cents      int64
	)
	err := row.Scan(&rec.ID, &recordDate, &rec.Owner, &rec.Category, &kind, &cents, &rec.Description, &rec.CreatedAt)
	if err != nil {
		return core.Record{}, err
	}
	rec.Date = core.Date{Time: recordDate}
	rec.Kind = core.Kind(kind)
	rec.Amount = core.Money{Cents: cents}
	return rec, nil
}

// List implements store.RecordLister.
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM records ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

// Create implements store.RecordCreator.
func (r *SQLiteRepository) Create(ctx context.Context, rec core.Record) (core.Record, error) {
	if err := rec.Validate(); err != nil {
		return core.Record{}, err
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO records (record_date, owner, category, kind, amount_cents, description)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+recordColumns,
		rec.Date.Time, rec.Owner, rec.Category, string(rec.Kind), rec.Amount.Cents, rec.Description)

	created, err := scanRecord(row)
	if err != nil {
		return core.Record{}, fmt.Errorf("create record: %w", err)
	}

	slog.InfoContext(ctx, "Record saved",
		"id", created.ID,
		"owner", created.Owner,
		"category", created.Category,
		"kind", created.Kind,
		"amount_cents", created.Amount.Cents)

	return created, nil
}

// Update implements store.RecordUpdater. Only non-nil patch fields are
// written; created_at and export_state are never touched here.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, patch store.RecordPatch) (core.Record, error) {
	current, err := r.GetRecord(ctx, id)
	if err != nil {
		return core.Record{}, err
	}

	var (
		sets []string
		args []any
	)
	if patch.Date != nil {
		sets = append(sets, "record_date = ?")
		args = append(args, *patch.Date)
		current.Date = core.Date{Time: *patch.Date}
	}
	if patch.Owner != nil {
		sets = append(sets, "owner = ?")
		args = append(args, *patch.Owner)
		current.Owner = *patch.Owner
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
		current.Category = *patch.Category
	}
	if patch.Kind != nil {
		sets = append(sets, "kind = ?")
		args = append(args, string(*patch.Kind))
		current.Kind = *patch.Kind
	}
	if patch.Amount != nil {
		sets = append(sets, "amount_cents = ?")
		args = append(args, *patch.Amount)
		current.Amount = core.Money{Cents: *patch.Amount}
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
		current.Description = *patch.Description
	}

	if err := current.Validate(); err != nil {
		return core.Record{}, err
	}
	if len(sets) == 0 {
		return current, nil
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE records SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return core.Record{}, fmt.Errorf("update record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.Record{}, ErrNotFound
	}

	slog.InfoContext(ctx, "Record updated", "id", id)
	return current, nil
}

// Delete implements store.RecordDeleter.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Record deleted", "id", id)
	return nil
}

// GetRecord retrieves a single record by ID.
func (r *SQLiteRepository) GetRecord(ctx context.Context, id int64) (core.Record, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, ErrNotFound
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("get record by id: %w", err)
	}
	return rec, nil
}

// Categories implements store.SuggestionReader.
func (r *SQLiteRepository) Categories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category")
}

// Owners implements store.SuggestionReader.
func (r *SQLiteRepository) Owners(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "owner")
}

func (r *SQLiteRepository) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT "+column+" FROM records WHERE "+column+" != '' ORDER BY "+column)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", column, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// PendingExportRecord carries the minimal data the export worker needs
// to pick a record up from the queue sweep.
type PendingExportRecord struct {
	ID        int64
	CreatedAt time.Time
}

// GetPendingExports returns records not yet pushed to the spreadsheet.
func (r *SQLiteRepository) GetPendingExports(ctx context.Context, limit int) ([]PendingExportRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at FROM records
		WHERE export_state = 'pending'
		ORDER BY created_at ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending exports: %w", err)
	}
	defer rows.Close()

	var out []PendingExportRecord
	for rows.Next() {
		var p PendingExportRecord
		if err := rows.Scan(&p.ID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending export: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkExported marks a record as successfully written to the spreadsheet.
func (r *SQLiteRepository) MarkExported(ctx context.Context, id int64) error {
	if err := r.setExportState(ctx, id, "exported"); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Record marked as exported", "id", id)
	return nil
}

// MarkExportError marks a record whose export attempt failed.
func (r *SQLiteRepository) MarkExportError(ctx context.Context, id int64) error {
	if err := r.setExportState(ctx, id, "error"); err != nil {
		return err
	}
	slog.WarnContext(ctx, "Record marked with export error", "id", id)
	return nil
}

func (r *SQLiteRepository) setExportState(ctx context.Context, id int64, state string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE records SET export_state = ? WHERE id = ?", state, id)
	if err != nil {
		return fmt.Errorf("set export state: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
