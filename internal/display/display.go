// Package display renders a daily spend view for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/dailyspend/internal/model"
	"github.com/cleared-dev/dailyspend/internal/series"
)

// Formatter renders amounts in one fixed currency.
type Formatter struct {
	currency *money.Currency
}

// NewFormatter returns a Formatter for an ISO-4217 code. Unknown codes fall
// back to INR.
func NewFormatter(code string) Formatter {
	c := money.GetCurrency(strings.ToUpper(code))
	if c == nil {
		c = money.GetCurrency(money.INR)
	}
	return Formatter{currency: c}
}

// Code returns the currency code.
func (f Formatter) Code() string {
	return f.currency.Code
}

// Amount formats d with the currency symbol and separators, e.g. ₹1,250.50.
func (f Formatter) Amount(d decimal.Decimal) string {
	minor := d.Shift(int32(f.currency.Fraction)).Round(0).IntPart()
	return money.New(minor, f.currency.Code).Display()
}

// Table renders view as a two column table followed by a Total row.
func (f Formatter) Table(view model.Series) string {
	total := decimal.Zero
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", fmt.Sprintf("Daily Spends (%s)", f.Code()))
	for _, d := range view {
		t.Row(d.DisplayDate(), f.Amount(d.Total))
		total = total.Add(d.Total)
	}
	t.Row("Total", f.Amount(total))
	return t.String()
}

// Summary describes the statistics of view, or says there are none.
func (f Formatter) Summary(view model.Series) string {
	st, ok := series.Stats(view)
	if !ok {
		return "No spends in the selected range."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Days with spends: %d\n", st.Days)
	fmt.Fprintf(&b, "Total spend:      %s\n", f.Amount(st.Total))
	fmt.Fprintf(&b, "Average per day:  %s\n", f.Amount(st.Average))
	fmt.Fprintf(&b, "Peak day:         %s (%s)", st.Peak.DisplayDate(), f.Amount(st.Peak.Total))
	return b.String()
}

// ScaleLine describes the chart value range.
func (f Formatter) ScaleLine(sc series.Scale) string {
	return fmt.Sprintf("Chart scale: %s to %s (max %s)", f.Amount(sc.Min), f.Amount(sc.Max), f.Amount(sc.Limit))
}

// Report writes the table, summary and scale line to w.
func (f Formatter) Report(w io.Writer, view model.Series, sc series.Scale) error {
	_, err := fmt.Fprintf(w, "%s\n\n%s\n\n%s\n", f.Table(view), f.Summary(view), f.ScaleLine(sc))
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
