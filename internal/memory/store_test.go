package memory

import (
	"context"
	"testing"
	"time"

	"grana/internal/core"
	"grana/internal/store"
)

func testRecord() core.Record {
	return core.Record{
		Date:        core.NewDate(2024, 6, 10),
		Owner:       "Maria",
		Category:    "Alimentação",
		Kind:        core.Expense,
		Amount:      core.Money{Cents: 15050},
		Description: "Supermercado",
	}
}

func TestCreateAssignsIDAndCreatedAt(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	first, err := s.Create(ctx, testRecord())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID != 1 {
		t.Fatalf("first ID = %d, want 1", first.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not set")
	}

	second, err := s.Create(ctx, testRecord())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if second.ID != 2 {
		t.Fatalf("second ID = %d, want 2", second.ID)
	}
}

func TestCreateRejectsInvalidRecord(t *testing.T) {
	s := NewStore()
	r := testRecord()
	r.Amount = core.Money{Cents: 0}
	if _, err := s.Create(context.Background(), r); err == nil {
		t.Fatalf("expected validation error for zero amount")
	}
}

func TestListOrdersByCreatedAtDescending(t *testing.T) {
	s := NewStore()
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	i := 0
	s.now = func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Minute)
	}
	ctx := context.Background()
	for range 3 {
		if _, err := s.Create(ctx, testRecord()); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if got[0].ID != 3 || got[2].ID != 1 {
		t.Fatalf("newest first expected, got IDs %d,%d,%d", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestUpdateAppliesPatchAndKeepsCreatedAt(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	created, err := s.Create(ctx, testRecord())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	owner := "João"
	amount := int64(20000)
	updated, err := s.Update(ctx, created.ID, store.RecordPatch{Owner: &owner, Amount: &amount})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Owner != "João" || updated.Amount.Cents != 20000 {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Category != "Alimentação" {
		t.Fatalf("untouched field changed: %q", updated.Category)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("CreatedAt must be immutable")
	}
}

func TestUpdateRejectsInvalidPatch(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	created, _ := s.Create(ctx, testRecord())

	bad := int64(-5)
	if _, err := s.Update(ctx, created.ID, store.RecordPatch{Amount: &bad}); err == nil {
		t.Fatalf("expected validation error for negative amount")
	}
	// Record must be unchanged after a rejected patch.
	got, _ := s.List(ctx)
	if got[0].Amount.Cents != 15050 {
		t.Fatalf("record mutated by failed update: %d", got[0].Amount.Cents)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	s := NewStore()
	if _, err := s.Update(context.Background(), 99, store.RecordPatch{}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	created, _ := s.Create(ctx, testRecord())

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, created.ID); err != ErrNotFound {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
	got, _ := s.List(ctx)
	if len(got) != 0 {
		t.Fatalf("expected empty store, got %d records", len(got))
	}
}

func TestSuggestions(t *testing.T) {
	s := NewSeededStore()
	ctx := context.Background()

	cats, err := s.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 4 {
		t.Fatalf("expected 4 distinct categories, got %v", cats)
	}
	owners, err := s.Owners(ctx)
	if err != nil {
		t.Fatalf("owners: %v", err)
	}
	if len(owners) != 2 {
		t.Fatalf("expected 2 owners, got %v", owners)
	}
}
