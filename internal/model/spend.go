package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// ISODateFormat is the canonical calendar date key.
	ISODateFormat = "2006-01-02"
	// DisplayDateFormat is how dates are shown and exported (DD-MM-YYYY).
	DisplayDateFormat = "02-01-2006"
)

// CalendarDate truncates t to its year, month and day at UTC midnight.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DailySpend is the total withdrawn on one calendar date.
type DailySpend struct {
	Date  time.Time       // UTC midnight
	Total decimal.Decimal // always > 0
}

// DisplayDate returns the date as DD-MM-YYYY.
func (d DailySpend) DisplayDate() string {
	return d.Date.Format(DisplayDateFormat)
}

// Series is a sequence of DailySpend values. A canonical Series is strictly
// ascending by date with no duplicates; derived views may be in any order.
type Series []DailySpend

// Clone returns a copy that can be reordered without touching s.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// DateRange bounds a Series by calendar date. Nil bounds are open; set bounds
// are inclusive.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether date falls within the range.
func (r DateRange) Contains(date time.Time) bool {
	date = CalendarDate(date)
	if r.Start != nil && date.Before(CalendarDate(*r.Start)) {
		return false
	}
	if r.End != nil && date.After(CalendarDate(*r.End)) {
		return false
	}
	return true
}

// SortKey selects the field a view is ordered by.
type SortKey string

const (
	SortNone   SortKey = ""
	SortDate   SortKey = "date"
	SortAmount SortKey = "amount"
)

// Direction is the order applied to a SortKey.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseSortKey converts user input into a SortKey.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortDate, SortAmount:
		return SortKey(s), true
	default:
		return SortNone, false
	}
}
