package core

import (
	"sort"
	"strings"
	"time"
)

// FilterAll is the sentinel value for the kind/owner/category criteria
// meaning "no constraint". The empty string is treated the same way so
// that absent form fields behave like an explicit "all".
const FilterAll = "all"

// Filter holds the six independent criteria of the list view. Zero value
// matches everything.
type Filter struct {
	Query    string // case-insensitive substring over description, owner, category
	Kind     string // FilterAll, "expense" or "income"
	Owner    string
	Category string
	From     time.Time // inclusive, start of that day
	To       time.Time // inclusive, end of that day (23:59:59 local)
}

// Apply returns the records matching every criterion, sorted by date
// descending. Sorting is part of the contract: the list view always wants
// reverse-chronological order, and records with equal dates keep their
// input order.
func (f Filter) Apply(records []Record) []Record {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if !f.matches(r, query) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

func (f Filter) matches(r Record, query string) bool {
	if query != "" &&
		!strings.Contains(strings.ToLower(r.Description), query) &&
		!strings.Contains(strings.ToLower(r.Owner), query) &&
		!strings.Contains(strings.ToLower(r.Category), query) {
		return false
	}
	if constrained(f.Kind) && string(r.Kind) != f.Kind {
		return false
	}
	if constrained(f.Owner) && r.Owner != f.Owner {
		return false
	}
	if constrained(f.Category) && r.Category != f.Category {
		return false
	}
	if !f.From.IsZero() {
		start := startOfDay(f.From)
		if r.Date.Before(start) {
			return false
		}
	}
	if !f.To.IsZero() {
		end := endOfDay(f.To)
		if r.Date.After(end) {
			return false
		}
	}
	return true
}

func constrained(v string) bool {
	return v != "" && v != FilterAll
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
