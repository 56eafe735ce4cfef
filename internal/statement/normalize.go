package statement

import (
	"strings"

	"github.com/cleared-dev/dailyspend/internal/model"
)

// SentinelMarker flags footer and annotation rows (running totals, notes).
const SentinelMarker = "*"

// NormalizeRows aligns the rows below the header to its column names and keeps
// the records whose date cell is present and free of the sentinel marker.
func NormalizeRows(header Header, rows [][]model.Cell, dateColumn string) ([]model.Record, error) {
	var records []model.Record
	for i := header.Index + 1; i < len(rows); i++ {
		rec := alignRow(header.Columns, rows[i])
		date := rec[dateColumn]
		if date.IsEmpty() || strings.Contains(date.String(), SentinelMarker) {
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, ErrNoTransactions
	}
	return records, nil
}

// alignRow maps row[i] to columns[i], padding short rows with empty cells and
// dropping cells past the last column.
func alignRow(columns []string, row []model.Cell) model.Record {
	rec := make(model.Record, len(columns))
	for i, name := range columns {
		if name == "" {
			continue
		}
		var c model.Cell
		if i < len(row) {
			c = row[i]
		}
		// Later columns win when a name is repeated.
		rec[name] = c
	}
	return rec
}
