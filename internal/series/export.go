package series

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/cleared-dev/dailyspend/internal/model"
)

// ExportHeader is the first line of every export.
const ExportHeader = "Date,DailySpends (INR)"

type exportRow struct {
	Date   string `csv:"Date"`
	Amount string `csv:"DailySpends (INR)"`
}

// Export renders s as CSV text: ExportHeader, then one "DD-MM-YYYY,amount"
// line per entry in the order given. Amounts are plain decimals. There is no
// trailing newline and no total row.
func Export(s model.Series) (string, error) {
	if len(s) == 0 {
		return ExportHeader, nil
	}

	rows := make([]exportRow, len(s))
	for i, d := range s {
		rows[i] = exportRow{Date: d.DisplayDate(), Amount: d.Total.String()}
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", fmt.Errorf("marshaling export: %w", err)
	}
	return strings.TrimSuffix(out, "\n"), nil
}

// WriteExport writes Export(s) to w.
func WriteExport(w io.Writer, s model.Series) error {
	out, err := Export(s)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
