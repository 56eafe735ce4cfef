// Package statement turns a decoded bank statement sheet into a daily spend
// series: locate the header, normalize rows, parse dates and amounts, and sum
// withdrawals per calendar date.
package statement

import (
	"fmt"
	"log/slog"

	"github.com/cleared-dev/dailyspend/internal/model"
)

// Columns names the statement columns the pipeline reads.
type Columns struct {
	Date       string
	Withdrawal string
}

// DefaultColumns matches the savings account statement layout the tool was
// built around.
func DefaultColumns() Columns {
	return Columns{Date: "Date", Withdrawal: "Withdrawal Amt."}
}

// Result is the outcome of processing one statement.
type Result struct {
	Series      model.Series
	HeaderIndex int
	Report      Report
}

// Process runs the full pipeline over a decoded sheet. Structural problems
// (empty sheet, missing header, nothing usable) return one of the package
// errors; bad rows are skipped and counted in Result.Report.
func Process(rows [][]model.Cell, cols Columns, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	header, err := LocateHeader(rows, cols.Date)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("located header", "row", header.Index, "columns", len(header.Columns))

	records, err := NormalizeRows(header, rows, cols.Date)
	if err != nil {
		return Result{}, fmt.Errorf("rows after header %d: %w", header.Index, err)
	}

	series, rep, err := Aggregate(records, cols, logger)
	if err != nil {
		return Result{}, fmt.Errorf("%d records: %w", len(records), err)
	}

	return Result{Series: series, HeaderIndex: header.Index, Report: rep}, nil
}
