package core

import (
	"testing"
	"time"
)

// sampleRecords mirrors the seed dataset the UI ships with.
func sampleRecords() []Record {
	return []Record{
		{ID: 1, Date: NewDate(2024, 6, 10), Owner: "Maria", Category: "Alimentação", Kind: Expense, Amount: Money{Cents: 15050}, Description: "Supermercado"},
		{ID: 2, Date: NewDate(2024, 6, 9), Owner: "João", Category: "Salário", Kind: Income, Amount: Money{Cents: 350000}, Description: "Salário mensal"},
		{ID: 3, Date: NewDate(2024, 6, 8), Owner: "Maria", Category: "Transporte", Kind: Expense, Amount: Money{Cents: 8000}, Description: "Combustível"},
		{ID: 4, Date: NewDate(2024, 6, 7), Owner: "João", Category: "Lazer", Kind: Expense, Amount: Money{Cents: 4500}, Description: "Cinema com as crianças"},
		{ID: 5, Date: NewDate(2024, 6, 5), Owner: "Maria", Category: "Salário", Kind: Income, Amount: Money{Cents: 280000}, Description: "Salário mensal"},
	}
}

func ids(records []Record) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestFilterQueryMatchesDescription(t *testing.T) {
	// Case-insensitive substring over description: only the Cinema record.
	got := Filter{Query: "cinema"}.Apply(sampleRecords())
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("query 'cinema': expected exactly record 4, got %v", ids(got))
	}
}

func TestFilterQueryMatchesOwnerAndCategory(t *testing.T) {
	if got := (Filter{Query: "joão"}).Apply(sampleRecords()); len(got) != 2 {
		t.Fatalf("query over owner: expected 2 records, got %v", ids(got))
	}
	if got := (Filter{Query: "transporte"}).Apply(sampleRecords()); len(got) != 1 {
		t.Fatalf("query over category: expected 1 record, got %v", ids(got))
	}
}

func TestFilterEmptyQueryMatchesEverything(t *testing.T) {
	got := Filter{}.Apply(sampleRecords())
	if len(got) != 5 {
		t.Fatalf("empty filter: expected all 5 records, got %d", len(got))
	}
}

func TestFilterCriteriaAreANDed(t *testing.T) {
	f := Filter{Kind: "expense", Owner: "Maria"}
	got := f.Apply(sampleRecords())
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %v", ids(got))
	}
	for _, r := range got {
		if r.Kind != Expense || r.Owner != "Maria" {
			t.Fatalf("record %d fails combined criteria", r.ID)
		}
	}
}

func TestFilterAllSentinel(t *testing.T) {
	f := Filter{Kind: FilterAll, Owner: FilterAll, Category: FilterAll}
	if got := f.Apply(sampleRecords()); len(got) != 5 {
		t.Fatalf("sentinel 'all' must not constrain, got %d records", len(got))
	}
}

func TestFilterDateBoundsInclusive(t *testing.T) {
	f := Filter{
		From: time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
	}
	got := f.Apply(sampleRecords())
	if len(got) != 2 {
		t.Fatalf("expected records of June 8-9, got %v", ids(got))
	}

	// A record timestamped late on the To day is still included.
	late := []Record{{
		ID: 10, Owner: "Maria", Category: "Outros", Kind: Expense,
		Amount: Money{Cents: 100},
		Date:   Date{Time: time.Date(2024, 6, 9, 23, 30, 0, 0, time.UTC)},
	}}
	if got := f.Apply(late); len(got) != 1 {
		t.Fatalf("23:30 on the To day must be inside the bound")
	}
}

func TestFilterSortsByDateDescending(t *testing.T) {
	got := Filter{}.Apply(sampleRecords())
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date.Time) {
			t.Fatalf("output not sorted descending at index %d", i)
		}
	}
}

func TestFilterSortStabilityOnEqualDates(t *testing.T) {
	same := NewDate(2024, 6, 10)
	records := []Record{
		{ID: 1, Date: same, Owner: "a", Category: "c", Kind: Expense, Amount: Money{Cents: 1}},
		{ID: 2, Date: same, Owner: "a", Category: "c", Kind: Expense, Amount: Money{Cents: 2}},
		{ID: 3, Date: same, Owner: "a", Category: "c", Kind: Expense, Amount: Money{Cents: 3}},
	}
	got := Filter{}.Apply(records)
	want := []int64{1, 2, 3}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("equal dates must keep input order, got %v", ids(got))
		}
	}
}

func TestFilterIdempotence(t *testing.T) {
	f := Filter{Query: "salário", Kind: "income"}
	once := f.Apply(sampleRecords())
	twice := f.Apply(once)
	if len(once) != len(twice) {
		t.Fatalf("idempotence violated: %d vs %d records", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("idempotence violated at index %d", i)
		}
	}
}
