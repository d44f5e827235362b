// Package memory provides an in-process record store used for local
// development and as the test double behind the HTTP handlers.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"grana/internal/core"
	"grana/internal/store"
)

var ErrNotFound = store.ErrNotFound

type Store struct {
	mu      sync.RWMutex
	records map[int64]core.Record
	nextID  int64
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		records: make(map[int64]core.Record),
		nextID:  1,
		now:     time.Now,
	}
}

// NewSeededStore returns a store preloaded with a small dataset so the
// dashboard has something to show on first run.
func NewSeededStore() *Store {
	s := NewStore()
	seed := []core.Record{
		{Date: core.NewDate(2024, 6, 10), Owner: "Maria", Category: "Alimentação", Kind: core.Expense, Amount: core.Money{Cents: 15050}, Description: "Supermercado"},
		{Date: core.NewDate(2024, 6, 9), Owner: "João", Category: "Salário", Kind: core.Income, Amount: core.Money{Cents: 350000}, Description: "Salário mensal"},
		{Date: core.NewDate(2024, 6, 8), Owner: "Maria", Category: "Transporte", Kind: core.Expense, Amount: core.Money{Cents: 8000}, Description: "Combustível"},
		{Date: core.NewDate(2024, 6, 7), Owner: "João", Category: "Lazer", Kind: core.Expense, Amount: core.Money{Cents: 4500}, Description: "Cinema com as crianças"},
		{Date: core.NewDate(2024, 6, 5), Owner: "Maria", Category: "Salário", Kind: core.Income, Amount: core.Money{Cents: 280000}, Description: "Salário mensal"},
	}
	ctx := context.Background()
	for _, r := range seed {
		s.Create(ctx, r) //nolint:errcheck
	}
	return s
}

func (s *Store) List(ctx context.Context) ([]core.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) Create(ctx context.Context, r core.Record) (core.Record, error) {
	if err := r.Validate(); err != nil {
		return core.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextID
	s.nextID++
	r.CreatedAt = s.now()
	s.records[r.ID] = r
	return r, nil
}

func (s *Store) Update(ctx context.Context, id int64, patch store.RecordPatch) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		return core.Record{}, ErrNotFound
	}

	if patch.Date != nil {
		r.Date = core.Date{Time: *patch.Date}
	}
	if patch.Owner != nil {
		r.Owner = *patch.Owner
	}
	if patch.Category != nil {
		r.Category = *patch.Category
	}
	if patch.Kind != nil {
		r.Kind = *patch.Kind
	}
	if patch.Amount != nil {
		r.Amount = core.Money{Cents: *patch.Amount}
	}
	if patch.Description != nil {
		r.Description = *patch.Description
	}

	if err := r.Validate(); err != nil {
		return core.Record{}, err
	}
	s.records[id] = r
	return r, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *Store) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(func(r core.Record) string { return r.Category })
}

func (s *Store) Owners(ctx context.Context) ([]string, error) {
	return s.distinct(func(r core.Record) string { return r.Owner })
}

func (s *Store) distinct(field func(core.Record) string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, r := range s.records {
		v := field(r)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out, nil
}
