package series

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/dailyspend/internal/model"
)

var (
	axisStep         = decimal.NewFromInt(100)
	defaultAxisBound = decimal.NewFromInt(1000)
)

// AxisBound returns the upper chart bound for s: the largest daily total
// rounded up to a multiple of 100, or 1000 when that is zero or s is empty.
func AxisBound(s model.Series) decimal.Decimal {
	highest := decimal.Zero
	for _, d := range s {
		if d.Total.GreaterThan(highest) {
			highest = d.Total
		}
	}
	bound := highest.Div(axisStep).Ceil().Mul(axisStep)
	if !bound.IsPositive() {
		return defaultAxisBound
	}
	return bound
}

// Scale is the visible value range of the chart. Min and Max stay within
// [0, Limit] and Min never exceeds Max.
type Scale struct {
	Min   decimal.Decimal
	Max   decimal.Decimal
	Limit decimal.Decimal
}

// NewScale returns the full range [0, AxisBound(s)].
func NewScale(s model.Series) Scale {
	bound := AxisBound(s)
	return Scale{Min: decimal.Zero, Max: bound, Limit: bound}
}

// WithMin moves the lower end. Passing the upper end collapses the range
// onto v.
func (sc Scale) WithMin(v decimal.Decimal) Scale {
	v = sc.clamp(v)
	if v.GreaterThan(sc.Max) {
		sc.Max = v
	}
	sc.Min = v
	return sc
}

// WithMax moves the upper end. Passing the lower end collapses the range
// onto v.
func (sc Scale) WithMax(v decimal.Decimal) Scale {
	v = sc.clamp(v)
	if v.LessThan(sc.Min) {
		sc.Min = v
	}
	sc.Max = v
	return sc
}

func (sc Scale) clamp(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(sc.Limit) {
		return sc.Limit
	}
	return v
}
