package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/extrame/xls"

	"github.com/cleared-dev/dailyspend/internal/model"
)

// XLSDecoder reads the first worksheet of a legacy BIFF8 (.xls) workbook.
//
// The library renders every cell as text. Numbers under a custom date format
// come back as RFC 3339 timestamps and are turned into date cells here. Cells
// under the built-in date formats are rendered as "2006.01" with the day
// dropped, and plain NUMBER records as the raw serial; neither can be
// recovered as a date and both stay text.
type XLSDecoder struct{}

// Format returns the decoder name.
func (d *XLSDecoder) Format() string { return "xls" }

// Decode parses data as an XLS workbook.
func (d *XLSDecoder) Decode(data []byte) ([][]model.Cell, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening XLS workbook: %w", err)
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, errors.New("no sheets found in workbook")
	}
	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, errors.New("could not read first sheet")
	}

	// MaxRow is the index of the last row, not a count.
	rows := make([][]model.Cell, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		r := xlsRow(ws, i)
		if r == nil {
			rows = append(rows, nil)
			continue
		}
		row := make([]model.Cell, r.LastCol())
		for j := r.FirstCol(); j < r.LastCol(); j++ {
			row[j] = xlsCell(r.Col(j))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// xlsRow returns row i, or nil when the sheet has no record for it.
// WorkSheet.Row dereferences missing rows, so that panic becomes nil.
func xlsRow(ws *xls.WorkSheet, i int) (r *xls.Row) {
	defer func() {
		if recover() != nil {
			r = nil
		}
	}()
	return ws.Row(i)
}

func xlsCell(text string) model.Cell {
	if t, err := time.Parse(time.RFC3339, text); err == nil {
		return model.DateCell(t)
	}
	return model.Text(text)
}
