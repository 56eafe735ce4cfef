package statement

import (
	"log/slog"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/dailyspend/internal/model"
)

// Report counts what happened to the records fed to Aggregate.
type Report struct {
	Records   int
	Used      int
	BadDate   int
	BadAmount int
	Days      int
}

// Skipped returns the number of records dropped by row level parsing.
func (r Report) Skipped() int {
	return r.BadDate + r.BadAmount
}

// Aggregate sums the withdrawal amounts of records per calendar date. Records
// with an unreadable date or a non-positive amount are skipped without error.
// The result is ascending by date with one entry per date.
func Aggregate(records []model.Record, cols Columns, logger *slog.Logger) (model.Series, Report, error) {
	if logger == nil {
		logger = slog.Default()
	}

	rep := Report{Records: len(records)}
	totals := make(map[time.Time]decimal.Decimal)

	for i, rec := range records {
		date, ok := ParseDate(rec[cols.Date])
		if !ok {
			rep.BadDate++
			logger.Debug("skipping row", "record", i, "reason", "date", "value", rec[cols.Date].String())
			continue
		}
		amount, ok := ParseAmount(rec[cols.Withdrawal])
		if !ok {
			rep.BadAmount++
			logger.Debug("skipping row", "record", i, "reason", "amount", "value", rec[cols.Withdrawal].String())
			continue
		}
		totals[date] = totals[date].Add(amount)
		rep.Used++
	}

	if len(totals) == 0 {
		return nil, rep, ErrNoValidSpends
	}

	series := make(model.Series, 0, len(totals))
	for date, total := range totals {
		series = append(series, model.DailySpend{Date: date, Total: total})
	}
	slices.SortFunc(series, func(a, b model.DailySpend) int {
		return a.Date.Compare(b.Date)
	})
	rep.Days = len(series)

	return series, rep, nil
}
