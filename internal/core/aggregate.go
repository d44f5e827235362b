package core

import "sort"

// Summary is the dashboard's headline numbers for a (period-filtered)
// record collection.
type Summary struct {
	Income  Money
	Expense Money
	Balance Money // Income - Expense
}

// CategoryGroup is an amount aggregated by (category, kind). Kind is part
// of the key: "Alimentação" expenses and "Alimentação" income are distinct
// groups even under the same label.
type CategoryGroup struct {
	Category string
	Kind     Kind
	Total    Money
}

// OwnerGroup accumulates separate income and expense sums per responsible
// party.
type OwnerGroup struct {
	Owner   string
	Income  Money
	Expense Money
}

// Summarize computes total income, total expense and the balance in one
// pass. An empty collection yields all-zero totals.
func Summarize(records []Record) Summary {
	var s Summary
	for _, r := range records {
		switch r.Kind {
		case Income:
			s.Income.Cents += r.Amount.Cents
		case Expense:
			s.Expense.Cents += r.Amount.Cents
		}
	}
	s.Balance.Cents = s.Income.Cents - s.Expense.Cents
	return s
}

type categoryKey struct {
	category string
	kind     Kind
}

// GroupByCategory partitions records by (category, kind) and sums amounts
// per group. Groups come back sorted by total descending; equal totals
// keep first-encountered order.
func GroupByCategory(records []Record) []CategoryGroup {
	sums := make(map[categoryKey]int64)
	order := make([]categoryKey, 0)
	for _, r := range records {
		key := categoryKey{category: r.Category, kind: r.Kind}
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] += r.Amount.Cents
	}

	groups := make([]CategoryGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, CategoryGroup{
			Category: key.category,
			Kind:     key.kind,
			Total:    Money{Cents: sums[key]},
		})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total.Cents > groups[j].Total.Cents
	})
	return groups
}

// GroupByOwner partitions records by responsible party, accumulating a
// running income sum and a running expense sum per owner. Output order is
// first-encountered insertion order, not sorted.
func GroupByOwner(records []Record) []OwnerGroup {
	idx := make(map[string]int)
	groups := make([]OwnerGroup, 0)
	for _, r := range records {
		i, seen := idx[r.Owner]
		if !seen {
			i = len(groups)
			idx[r.Owner] = i
			groups = append(groups, OwnerGroup{Owner: r.Owner})
		}
		switch r.Kind {
		case Income:
			groups[i].Income.Cents += r.Amount.Cents
		case Expense:
			groups[i].Expense.Cents += r.Amount.Cents
		}
	}
	return groups
}
