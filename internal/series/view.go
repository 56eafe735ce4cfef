// Package series derives views, statistics and exports from a canonical daily
// spend series. Every function returns new values; inputs are never modified.
package series

import (
	"slices"

	"github.com/cleared-dev/dailyspend/internal/model"
)

// Filter returns the entries of s whose date lies within r.
func Filter(s model.Series, r model.DateRange) model.Series {
	out := make(model.Series, 0, len(s))
	for _, d := range s {
		if r.Contains(d.Date) {
			out = append(out, d)
		}
	}
	return out
}

// Order is a sort key together with its direction.
type Order struct {
	Key       model.SortKey
	Direction model.Direction
}

// Sorter remembers the last requested order so that asking for the same key
// again flips its direction. The zero value is unsorted.
type Sorter struct {
	order Order
}

// Toggle requests key and returns the resulting order. A repeated key flips
// direction; a new key starts ascending.
func (s *Sorter) Toggle(key model.SortKey) Order {
	if key == s.order.Key && key != model.SortNone {
		if s.order.Direction == model.Ascending {
			s.order.Direction = model.Descending
		} else {
			s.order.Direction = model.Ascending
		}
		return s.order
	}
	s.order = Order{Key: key, Direction: model.Ascending}
	return s.order
}

// Order returns the current order.
func (s *Sorter) Order() Order {
	return s.order
}

// Sort returns a copy of s ordered by o. Equal amounts keep ascending date
// order in both directions. SortNone returns the entries in date order.
func Sort(s model.Series, o Order) model.Series {
	out := s.Clone()
	slices.SortFunc(out, func(a, b model.DailySpend) int {
		return a.Date.Compare(b.Date)
	})

	switch o.Key {
	case model.SortDate:
		if o.Direction == model.Descending {
			slices.Reverse(out)
		}
	case model.SortAmount:
		// Stable on top of date order, so ties stay date ascending.
		slices.SortStableFunc(out, func(a, b model.DailySpend) int {
			c := a.Total.Cmp(b.Total)
			if o.Direction == model.Descending {
				return -c
			}
			return c
		})
	}
	return out
}

// View filters s to r and sorts the result by o.
func View(s model.Series, r model.DateRange, o Order) model.Series {
	return Sort(Filter(s, r), o)
}
