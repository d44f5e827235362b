package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

type (
	// Kind says whether a record moves money out (expense) or in (income).
	Kind string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Record is a single income or expense entry. ID and CreatedAt are
	// assigned by the store on creation; everything else is user data.
	Record struct {
		ID          int64
		Date        Date
		Owner       string // responsible party
		Category    string
		Kind        Kind
		Amount      Money
		Description string
		CreatedAt   time.Time
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidKind     = errors.New("invalid kind")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyOwner      = errors.New("empty responsible party")
	ErrEmptyCategory   = errors.New("empty category")
	ErrDescriptionSize = errors.New("description too long (max 200 characters)")
)

func (k Kind) Valid() bool {
	return k == Expense || k == Income
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the user-supplied fields of a record. ID and CreatedAt
// are deliberately ignored: the store owns them.
func (r Record) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if !r.Kind.Valid() {
		return ErrInvalidKind
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Owner) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if len(r.Description) > 200 {
		return ErrDescriptionSize
	}
	return nil
}
