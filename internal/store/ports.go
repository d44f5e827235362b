package store

import (
	"context"
	"errors"
	"time"

	"grana/internal/core"
)

// ErrNotFound is the shared not-found sentinel: every backend returns
// it (possibly wrapped) so callers can match with errors.Is regardless
// of which implementation sits behind the port.
var ErrNotFound = errors.New("record not found")

// Ports for outbound adapters. Handlers depend on these, never on a
// concrete backend.
type (
	RecordLister interface {
		// List returns every record, ordered by created_at descending.
		List(ctx context.Context) ([]core.Record, error)
	}

	RecordCreator interface {
		// Create persists a record, assigning its ID and CreatedAt.
		Create(ctx context.Context, r core.Record) (core.Record, error)
	}

	RecordUpdater interface {
		// Update applies a partial patch to the record with the given ID
		// and returns the updated record. CreatedAt is never touched.
		Update(ctx context.Context, id int64, patch RecordPatch) (core.Record, error)
	}

	RecordDeleter interface {
		Delete(ctx context.Context, id int64) error
	}

	// SuggestionReader provides the distinct category and owner values
	// already stored, used to seed form datalists. Suggestions are an
	// affordance, never an enforced enumeration.
	SuggestionReader interface {
		Categories(ctx context.Context) ([]string, error)
		Owners(ctx context.Context) ([]string, error)
	}
)

// RecordPatch carries the mutable fields of a record. Nil means "leave
// unchanged"; a patch with all fields nil is a no-op update.
type RecordPatch struct {
	Date        *time.Time
	Owner       *string
	Category    *string
	Kind        *core.Kind
	Amount      *int64 // cents
	Description *string
}

// Empty reports whether the patch changes nothing.
func (p RecordPatch) Empty() bool {
	return p.Date == nil && p.Owner == nil && p.Category == nil &&
		p.Kind == nil && p.Amount == nil && p.Description == nil
}
