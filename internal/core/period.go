package core

import "time"

const (
	PeriodCurrentMonth Period = "current-month"
	PeriodLastMonth    Period = "last-month"
	PeriodCurrentYear  Period = "current-year"
	PeriodAll          Period = "all"
)

// Period is a named date-range selector used to scope the dashboard view.
type Period string

// ParsePeriod maps a raw selector to a Period. Anything unrecognized,
// including the empty string, behaves as PeriodAll: a stale or garbled
// selector must never break the dashboard.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodCurrentMonth, PeriodLastMonth, PeriodCurrentYear, PeriodAll:
		return Period(s)
	default:
		return PeriodAll
	}
}

// FilterByPeriod narrows records to those whose date falls inside the
// period, evaluated against the wall clock at call time.
func FilterByPeriod(records []Record, p Period) []Record {
	return FilterByPeriodAt(records, p, time.Now())
}

// FilterByPeriodAt narrows records to those whose date falls inside the
// period relative to now. Input order is preserved.
func FilterByPeriodAt(records []Record, p Period, now time.Time) []Record {
	pred := periodPredicate(p, now)
	if pred == nil {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if pred(r.Date.Time) {
			out = append(out, r)
		}
	}
	return out
}

// periodPredicate returns nil for PeriodAll (and anything unknown), which
// callers treat as "keep everything".
func periodPredicate(p Period, now time.Time) func(time.Time) bool {
	switch p {
	case PeriodCurrentMonth:
		year, month := now.Year(), now.Month()
		return func(t time.Time) bool {
			return t.Year() == year && t.Month() == month
		}
	case PeriodLastMonth:
		year, month := now.Year(), now.Month()
		if month == time.January {
			year--
			month = time.December
		} else {
			month--
		}
		return func(t time.Time) bool {
			return t.Year() == year && t.Month() == month
		}
	case PeriodCurrentYear:
		year := now.Year()
		return func(t time.Time) bool {
			return t.Year() == year
		}
	default:
		return nil
	}
}
