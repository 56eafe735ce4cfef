package statement

import (
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/dailyspend/internal/model"
)

// ParseDate resolves a statement date cell to a calendar date. Text cells must
// be DD/MM/YYYY or DD/MM/YY; two digit years are taken as 20YY. ok is false
// for anything else, including impossible dates such as 31/02/2024.
func ParseDate(c model.Cell) (time.Time, bool) {
	switch c.Kind {
	case model.CellDate:
		if c.Date.IsZero() {
			return time.Time{}, false
		}
		return model.CalendarDate(c.Date), true
	case model.CellText:
		return parseDateText(c.Text)
	default:
		return time.Time{}, false
	}
}

func parseDateText(s string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	yearPart := strings.TrimSpace(parts[2])
	if len(yearPart) == 2 {
		yearPart = "20" + yearPart
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil || year < 1 || year > 9999 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (32/01 -> 01/02); reject instead.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
