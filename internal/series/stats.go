package series

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/dailyspend/internal/model"
)

// Statistics summarizes a series.
type Statistics struct {
	Days    int
	Total   decimal.Decimal
	Average decimal.Decimal
	Peak    model.DailySpend // first entry with the greatest total
}

// Stats computes total, average and peak of s. ok is false for an empty series.
func Stats(s model.Series) (Statistics, bool) {
	if len(s) == 0 {
		return Statistics{}, false
	}

	total := decimal.Zero
	peak := s[0]
	for _, d := range s {
		total = total.Add(d.Total)
		if d.Total.GreaterThan(peak.Total) {
			peak = d
		}
	}

	return Statistics{
		Days:    len(s),
		Total:   total,
		Average: total.Div(decimal.NewFromInt(int64(len(s)))),
		Peak:    peak,
	}, true
}
