package statement

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/dailyspend/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func textRow(cells ...string) []model.Cell {
	row := make([]model.Cell, len(cells))
	for i, c := range cells {
		row[i] = model.Text(c)
	}
	return row
}

var testCols = Columns{Date: "Date", Withdrawal: "Withdrawal"}

func TestLocateHeader(t *testing.T) {
	rows := [][]model.Cell{
		textRow("ACME BANK LTD"),
		nil,
		textRow("Statement of account", "", ""),
		{model.Text(" Date "), model.Text("Narration"), {}, model.DateCell(date(2024, 1, 1)), model.Text("Withdrawal ")},
		textRow("01/03/24", "UPI", "", "", "50"),
	}

	h, err := LocateHeader(rows, "Date")
	require.NoError(t, err)
	assert.Equal(t, 3, h.Index)
	assert.Equal(t, []string{"Date", "Narration", "", "", "Withdrawal"}, h.Columns)
}

func TestLocateHeader_FirstMatchWins(t *testing.T) {
	rows := [][]model.Cell{
		textRow("Date", "Amount"),
		textRow("Date", "Withdrawal"),
	}
	h, err := LocateHeader(rows, "Date")
	require.NoError(t, err)
	assert.Equal(t, 0, h.Index)
}

func TestLocateHeader_CaseSensitive(t *testing.T) {
	rows := [][]model.Cell{
		textRow("date", "Amount"),
		textRow("DATE"),
		textRow("Value Date"),
		{model.DateCell(date(2024, 1, 1))},
	}
	_, err := LocateHeader(rows, "Date")
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestLocateHeader_Empty(t *testing.T) {
	_, err := LocateHeader(nil, "Date")
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestNormalizeRows_AlignsBelowHeader(t *testing.T) {
	// Header at index 3 of a 5 row grid; rows 0-2 are titles and blanks.
	rows := [][]model.Cell{
		textRow("My Bank"),
		textRow(""),
		textRow("Account 1234"),
		textRow("Date", "Narration", "Withdrawal"),
		textRow("01/03/24", "COFFEE", "120.00"),
	}
	h, err := LocateHeader(rows, "Date")
	require.NoError(t, err)
	require.Equal(t, 3, h.Index)

	recs, err := NormalizeRows(h, rows, "Date")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "01/03/24", recs[0]["Date"].Text)
	assert.Equal(t, "COFFEE", recs[0]["Narration"].Text)
	assert.Equal(t, "120.00", recs[0]["Withdrawal"].Text)
}

func TestNormalizeRows_PadAndTruncate(t *testing.T) {
	h := Header{Index: 0, Columns: []string{"Date", "Withdrawal"}}
	rows := [][]model.Cell{
		textRow("Date", "Withdrawal"),
		textRow("01/03/24"),
		textRow("02/03/24", "10", "extra", "more"),
	}
	recs, err := NormalizeRows(h, rows, "Date")
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, model.CellEmpty, recs[0]["Withdrawal"].Kind)
	assert.Len(t, recs[1], 2)
	assert.Equal(t, "10", recs[1]["Withdrawal"].Text)
}

func TestNormalizeRows_DropsSentinelAndEmptyDates(t *testing.T) {
	h := Header{Index: 0, Columns: []string{"Date", "Withdrawal"}}
	rows := [][]model.Cell{
		textRow("Date", "Withdrawal"),
		textRow("", "10"),
		textRow("   ", "10"),
		textRow("03/03*", "999"),
		textRow("*** Closing balance ***", "0"),
		{model.DateCell(date(2024, 3, 4)), model.Text("5")},
		textRow("05/03/24", "7"),
	}
	recs, err := NormalizeRows(h, rows, "Date")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, model.CellDate, recs[0]["Date"].Kind)
	assert.Equal(t, "05/03/24", recs[1]["Date"].Text)
}

func TestNormalizeRows_NoTransactions(t *testing.T) {
	h := Header{Index: 0, Columns: []string{"Date", "Withdrawal"}}
	rows := [][]model.Cell{
		textRow("Date", "Withdrawal"),
		textRow("* totals *", "100"),
		nil,
	}
	_, err := NormalizeRows(h, rows, "Date")
	assert.ErrorIs(t, err, ErrNoTransactions)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   model.Cell
		want time.Time
		ok   bool
	}{
		{model.Text("01/03/24"), date(2024, 3, 1), true},
		{model.Text("01/03/2024"), date(2024, 3, 1), true},
		{model.Text(" 5/1/2024 "), date(2024, 1, 5), true},
		{model.Text("29/02/24"), date(2024, 2, 29), true},
		{model.Text("29/02/23"), time.Time{}, false},
		{model.Text("31/04/2024"), time.Time{}, false},
		{model.Text("01/13/2024"), time.Time{}, false},
		{model.Text("00/01/2024"), time.Time{}, false},
		{model.Text("01-03-2024"), time.Time{}, false},
		{model.Text("01/03"), time.Time{}, false},
		{model.Text("01/03/2024/1"), time.Time{}, false},
		{model.Text("aa/03/2024"), time.Time{}, false},
		{model.Text("01/03/abcd"), time.Time{}, false},
		{model.DateCell(time.Date(2024, 3, 1, 18, 45, 0, 0, time.FixedZone("IST", 19800))), date(2024, 3, 1), true},
		{model.Cell{}, time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseDate(%q) ok", tt.in.String())
		if tt.ok {
			assert.Equal(t, tt.want, got, "ParseDate(%q)", tt.in.String())
		}
	}
}

func TestParseDate_TwoDigitYear(t *testing.T) {
	for yy := 0; yy < 100; yy++ {
		in := model.Text("15/06/" + twoDigits(yy))
		got, ok := ParseDate(in)
		require.True(t, ok, in.Text)
		assert.Equal(t, 2000+yy, got.Year(), in.Text)
	}
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

func TestParseDate_DisplayRoundTrip(t *testing.T) {
	d := date(2023, 1, 1)
	for i := 0; i < 800; i++ {
		display := d.Format(model.DisplayDateFormat)
		// The display form uses '-', the parser reads the '/' form.
		slashed := display[0:2] + "/" + display[3:5] + "/" + display[6:]
		got, ok := ParseDate(model.Text(slashed))
		require.True(t, ok, slashed)
		assert.Equal(t, d, got)
		d = d.AddDate(0, 0, 1)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   model.Cell
		want string
		ok   bool
	}{
		{model.Text("1,200.50"), "1200.50", true},
		{model.Text("₹ 1,200.50"), "1200.50", true},
		{model.Text("INR 50"), "50", true},
		{model.Text("Rs.1,200.50"), "1200.50", true},
		{model.Text("Rs. 1,200.50"), "1200.50", true},
		{model.Text("Rs. 0.75"), "0.75", true},
		{model.Text("1,200.50 Dr."), "1200.50", true},
		{model.Text("50 Dr"), "50", true},
		{model.Text("-75.25"), "75.25", true},
		{model.Text(".5"), "0.5", true},
		{model.Text("12."), "12", true},
		{model.Text("1.2.3"), "1.2", true},
		{model.Text("0"), "", false},
		{model.Text("0.00"), "", false},
		{model.Text(""), "", false},
		{model.Text("—"), "", false},
		{model.Text("."), "", false},
		{model.Text("..5"), "", false},
		{model.Cell{}, "", false},
		{model.DateCell(date(2024, 3, 1)), "", false},
	}
	for _, tt := range tests {
		got, ok := ParseAmount(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseAmount(%q) ok", tt.in.String())
		if tt.ok {
			assert.True(t, dec(tt.want).Equal(got), "ParseAmount(%q) = %s, want %s", tt.in.String(), got, tt.want)
		}
	}
}

func TestParseAmount_SymbolInsensitive(t *testing.T) {
	plain := []string{"1200.50", "50", "0.75", "1000000", "3.14159"}
	decorate := []func(string) string{
		func(s string) string { return "₹" + s },
		func(s string) string { return "Rs. " + s },
		func(s string) string { return "$" + s + " USD" },
		func(s string) string { return addThousands(s) },
		func(s string) string { return "INR " + addThousands(s) + " Dr" },
	}
	for _, p := range plain {
		want, ok := ParseAmount(model.Text(p))
		require.True(t, ok)
		for _, d := range decorate {
			got, ok := ParseAmount(model.Text(d(p)))
			require.True(t, ok, d(p))
			assert.True(t, want.Equal(got), "%q: got %s want %s", d(p), got, want)
		}
	}
}

// addThousands inserts ',' separators into the integer part of s.
func addThousands(s string) string {
	intPart, frac := s, ""
	for i := range s {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i:]
			break
		}
	}
	var out []byte
	for i := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, intPart[i])
	}
	return string(out) + frac
}

func TestAggregate_Scenario(t *testing.T) {
	recs := []model.Record{
		{"Date": model.Text("01/03/24"), "Withdrawal": model.Text("1,200.50")},
		{"Date": model.Text("01/03/24"), "Withdrawal": model.Text("50")},
		{"Date": model.Text("02/03/24"), "Withdrawal": model.Text("0")},
		{"Date": model.Text("03/03*"), "Withdrawal": model.Text("999")},
	}

	series, rep, err := Aggregate(recs, testCols, nil)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "01-03-2024", series[0].DisplayDate())
	assert.True(t, dec("1250.50").Equal(series[0].Total), "got %s", series[0].Total)

	assert.Equal(t, 4, rep.Records)
	assert.Equal(t, 2, rep.Used)
	assert.Equal(t, 1, rep.BadAmount)
	assert.Equal(t, 1, rep.BadDate)
	assert.Equal(t, 2, rep.Skipped())
	assert.Equal(t, 1, rep.Days)
}

func TestAggregate_RupeeAbbreviation(t *testing.T) {
	recs := []model.Record{
		{"Date": model.Text("01/03/24"), "Withdrawal": model.Text("Rs. 1,200.50")},
		{"Date": model.Text("01/03/24"), "Withdrawal": model.Text("Rs.50")},
		{"Date": model.Text("02/03/24"), "Withdrawal": model.Text("Rs. 0.75")},
	}
	series, rep, err := Aggregate(recs, testCols, nil)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.True(t, dec("1250.50").Equal(series[0].Total), "got %s", series[0].Total)
	assert.True(t, dec("0.75").Equal(series[1].Total), "got %s", series[1].Total)
	assert.Zero(t, rep.Skipped())
}

func TestAggregate_MixedCellKinds(t *testing.T) {
	recs := []model.Record{
		{"Date": model.DateCell(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)), "Withdrawal": model.Text("10")},
		{"Date": model.Text("01/03/2024"), "Withdrawal": model.Text("5")},
		{"Date": model.Text("02/03/24")},
	}
	series, _, err := Aggregate(recs, testCols, nil)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.True(t, dec("15").Equal(series[0].Total))
}

func TestAggregate_NoValidSpends(t *testing.T) {
	recs := []model.Record{
		{"Date": model.Text("01/03/24"), "Withdrawal": model.Text("0")},
		{"Date": model.Text("not a date"), "Withdrawal": model.Text("10")},
	}
	_, rep, err := Aggregate(recs, testCols, nil)
	assert.ErrorIs(t, err, ErrNoValidSpends)
	assert.Equal(t, 2, rep.Skipped())
}

func TestAggregate_OrderInvariant(t *testing.T) {
	var recs []model.Record
	days := []string{"05/01/24", "01/01/24", "31/12/23", "15/02/2024", "01/01/2024", "05/01/2024"}
	amounts := []string{"10.10", "20", "0.05", "1,000", "3.33", "7"}
	for i := 0; i < 60; i++ {
		recs = append(recs, model.Record{
			"Date":       model.Text(days[i%len(days)]),
			"Withdrawal": model.Text(amounts[(i*7)%len(amounts)]),
		})
	}

	want, _, err := Aggregate(recs, testCols, nil)
	require.NoError(t, err)
	assertStrictlyAscending(t, want)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]model.Record, len(recs))
		copy(shuffled, recs)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got, _, err := Aggregate(shuffled, testCols, nil)
		require.NoError(t, err)
		assertStrictlyAscending(t, got)
		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].Date, got[i].Date)
			assert.True(t, want[i].Total.Equal(got[i].Total), "day %s: %s != %s", want[i].DisplayDate(), got[i].Total, want[i].Total)
		}
	}
}

func assertStrictlyAscending(t *testing.T, s model.Series) {
	t.Helper()
	for i := 1; i < len(s); i++ {
		assert.True(t, s[i-1].Date.Before(s[i].Date), "entry %d (%s) not after %s", i, s[i].DisplayDate(), s[i-1].DisplayDate())
	}
}

func TestProcess(t *testing.T) {
	rows := [][]model.Cell{
		textRow("HDFC BANK Ltd."),
		textRow(""),
		textRow("Statement From : 01/03/2024 To : 31/03/2024"),
		textRow("Date", "Narration", "Chq./Ref.No.", "Value Dt", "Withdrawal Amt.", "Deposit Amt.", "Closing Balance"),
		textRow("********", "********", "********", "********", "********", "********", "********"),
		textRow("02/03/24", "UPI-GROCER", "0001", "02/03/24", "1,250.00", "", "48,750.00"),
		textRow("01/03/24", "UPI-CAFE", "0002", "01/03/24", "120.50", "", "50,000.00"),
		textRow("02/03/24", "SALARY", "0003", "02/03/24", "", "90,000.00", "1,38,750.00"),
		textRow("02/03/24", "ATM", "0004", "02/03/24", "2,000.00", "", "1,36,750.00"),
		textRow("********", "********", "********", "********", "********", "********", "********"),
		textRow("STATEMENT SUMMARY :-"),
	}

	res, err := Process(rows, DefaultColumns(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.HeaderIndex)
	require.Len(t, res.Series, 2)
	assert.Equal(t, date(2024, 3, 1), res.Series[0].Date)
	assert.True(t, dec("120.50").Equal(res.Series[0].Total))
	assert.Equal(t, date(2024, 3, 2), res.Series[1].Date)
	assert.True(t, dec("3250").Equal(res.Series[1].Total))
	// STATEMENT SUMMARY has a non-empty Date cell but no parseable date.
	assert.Equal(t, 1, res.Report.BadDate)
	assert.Equal(t, 1, res.Report.BadAmount)
}

func TestProcess_StructuralErrors(t *testing.T) {
	cols := DefaultColumns()

	_, err := Process(nil, cols, nil)
	assert.ErrorIs(t, err, ErrEmptySheet)

	_, err = Process([][]model.Cell{textRow("Txn Date", "Amount")}, cols, nil)
	assert.ErrorIs(t, err, ErrHeaderNotFound)

	_, err = Process([][]model.Cell{textRow("Date", "Withdrawal Amt."), textRow("", "10")}, cols, nil)
	assert.ErrorIs(t, err, ErrNoTransactions)

	_, err = Process([][]model.Cell{textRow("Date", "Withdrawal Amt."), textRow("01/03/24", "0")}, cols, nil)
	assert.ErrorIs(t, err, ErrNoValidSpends)
	assert.False(t, errors.Is(err, ErrNoTransactions))
}
