package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/cleared-dev/dailyspend/internal/model"
)

// CSVDecoder reads comma separated statement exports. Every non-blank field
// becomes a text cell; rows may have differing lengths.
type CSVDecoder struct{}

// Format returns the decoder name.
func (d *CSVDecoder) Format() string { return "csv" }

// Decode parses data as CSV.
func (d *CSVDecoder) Decode(data []byte) ([][]model.Cell, error) {
	cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}

	rows := make([][]model.Cell, len(records))
	for i, rec := range records {
		row := make([]model.Cell, len(rec))
		for j, field := range rec {
			row[j] = model.Text(field)
		}
		rows[i] = row
	}
	return rows, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}
