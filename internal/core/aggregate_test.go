package core

import "testing"

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Income.Cents != 0 || s.Expense.Cents != 0 || s.Balance.Cents != 0 {
		t.Fatalf("empty collection must yield all-zero totals, got %+v", s)
	}
}

func TestSummarizeScenario(t *testing.T) {
	// {expense 150.50 Alimentação} + {income 3500.00 Salário}
	records := []Record{
		{ID: 1, Date: NewDate(2024, 6, 10), Owner: "Maria", Category: "Alimentação", Kind: Expense, Amount: Money{Cents: 15050}},
		{ID: 2, Date: NewDate(2024, 6, 9), Owner: "João", Category: "Salário", Kind: Income, Amount: Money{Cents: 350000}},
	}
	s := Summarize(records)
	if s.Income.Cents != 350000 {
		t.Fatalf("income = %d, want 350000", s.Income.Cents)
	}
	if s.Expense.Cents != 15050 {
		t.Fatalf("expense = %d, want 15050", s.Expense.Cents)
	}
	if s.Balance.Cents != 334950 {
		t.Fatalf("balance = %d, want 334950", s.Balance.Cents)
	}
}

func TestSummarizeBalanceInvariant(t *testing.T) {
	s := Summarize(sampleRecords())
	if s.Balance.Cents != s.Income.Cents-s.Expense.Cents {
		t.Fatalf("balance must equal income - expense: %+v", s)
	}
}

func TestGroupByCategoryKindIsPartOfKey(t *testing.T) {
	records := []Record{
		{ID: 1, Date: NewDate(2024, 6, 1), Owner: "a", Category: "Alimentação", Kind: Expense, Amount: Money{Cents: 1000}},
		{ID: 2, Date: NewDate(2024, 6, 2), Owner: "a", Category: "Alimentação", Kind: Income, Amount: Money{Cents: 500}},
		{ID: 3, Date: NewDate(2024, 6, 3), Owner: "a", Category: "Alimentação", Kind: Expense, Amount: Money{Cents: 2000}},
	}
	groups := GroupByCategory(records)
	if len(groups) != 2 {
		t.Fatalf("same label under different kinds must form 2 groups, got %d", len(groups))
	}
	if groups[0].Kind != Expense || groups[0].Total.Cents != 3000 {
		t.Fatalf("largest group first, got %+v", groups[0])
	}
	if groups[1].Kind != Income || groups[1].Total.Cents != 500 {
		t.Fatalf("unexpected second group %+v", groups[1])
	}
}

func TestGroupByCategoryConservation(t *testing.T) {
	records := sampleRecords()
	groups := GroupByCategory(records)

	var input, grouped int64
	for _, r := range records {
		input += r.Amount.Cents
	}
	for _, g := range groups {
		grouped += g.Total.Cents
	}
	if input != grouped {
		t.Fatalf("conservation violated: input %d, grouped %d", input, grouped)
	}

	distinct := map[categoryKey]bool{}
	for _, r := range records {
		distinct[categoryKey{r.Category, r.Kind}] = true
	}
	if len(groups) > len(distinct) {
		t.Fatalf("more groups (%d) than distinct pairs (%d)", len(groups), len(distinct))
	}
}

func TestGroupByCategorySortedDescendingStableTies(t *testing.T) {
	records := []Record{
		{ID: 1, Date: NewDate(2024, 6, 1), Owner: "a", Category: "B", Kind: Expense, Amount: Money{Cents: 100}},
		{ID: 2, Date: NewDate(2024, 6, 2), Owner: "a", Category: "A", Kind: Expense, Amount: Money{Cents: 100}},
		{ID: 3, Date: NewDate(2024, 6, 3), Owner: "a", Category: "C", Kind: Expense, Amount: Money{Cents: 300}},
	}
	groups := GroupByCategory(records)
	if groups[0].Category != "C" {
		t.Fatalf("largest total first, got %q", groups[0].Category)
	}
	// B and A tie at 100; B was encountered first.
	if groups[1].Category != "B" || groups[2].Category != "A" {
		t.Fatalf("ties must keep first-encountered order, got %q then %q", groups[1].Category, groups[2].Category)
	}
}

func TestGroupByOwner(t *testing.T) {
	groups := GroupByOwner(sampleRecords())
	if len(groups) != 2 {
		t.Fatalf("expected 2 owners, got %d", len(groups))
	}
	// Insertion order: Maria appears before João in the input.
	if groups[0].Owner != "Maria" || groups[1].Owner != "João" {
		t.Fatalf("owner order must be first-encountered, got %q then %q", groups[0].Owner, groups[1].Owner)
	}
	if groups[0].Income.Cents != 280000 || groups[0].Expense.Cents != 23050 {
		t.Fatalf("Maria sums wrong: %+v", groups[0])
	}
	if groups[1].Income.Cents != 350000 || groups[1].Expense.Cents != 4500 {
		t.Fatalf("João sums wrong: %+v", groups[1])
	}
}

func TestGroupByOwnerEmpty(t *testing.T) {
	if got := GroupByOwner(nil); len(got) != 0 {
		t.Fatalf("empty input must yield empty groups, got %d", len(got))
	}
	if got := GroupByCategory(nil); len(got) != 0 {
		t.Fatalf("empty input must yield empty groups, got %d", len(got))
	}
}
