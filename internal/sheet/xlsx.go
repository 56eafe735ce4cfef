package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/dailyspend/internal/model"
)

// XLSXDecoder reads the first worksheet of an Office Open XML workbook.
// Cells formatted as dates become date cells; everything else is the
// formatted text Excel would display.
type XLSXDecoder struct{}

// Format returns the decoder name.
func (d *XLSXDecoder) Format() string { return "xlsx" }

// Decode parses data as an XLSX workbook.
func (d *XLSXDecoder) Decode(data []byte) ([][]model.Cell, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening XLSX workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheets found in workbook")
	}
	sheetName := sheets[0]

	raw, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheetName, err)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	rows := make([][]model.Cell, len(raw))
	for i, rawRow := range raw {
		row := make([]model.Cell, len(rawRow))
		for j, text := range rawRow {
			if text == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("cell %d,%d: %w", i+1, j+1, err)
			}
			if t, ok := xlsxDate(f, sheetName, axis, date1904); ok {
				row[j] = model.DateCell(t)
				continue
			}
			row[j] = model.Text(text)
		}
		rows[i] = row
	}
	return rows, nil
}

// xlsxDate reports whether the cell at axis holds a date, either an ISO date
// cell or a serial number with a date number format.
func xlsxDate(f *excelize.File, sheetName, axis string, date1904 bool) (time.Time, bool) {
	rawValue, err := f.GetCellValue(sheetName, axis, excelize.Options{RawCellValue: true})
	if err != nil || rawValue == "" {
		return time.Time{}, false
	}

	if typ, err := f.GetCellType(sheetName, axis); err == nil && typ == excelize.CellTypeDate {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", model.ISODateFormat} {
			if t, err := time.Parse(layout, rawValue); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}

	idx, err := f.GetCellStyle(sheetName, axis)
	if err != nil {
		return time.Time{}, false
	}
	style, err := f.GetStyle(idx)
	if err != nil || style == nil || !isDateNumFmt(style) {
		return time.Time{}, false
	}

	serial, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Built-in number formats that render a date (ECMA-376 18.8.30).
var dateNumFmts = map[int]bool{14: true, 15: true, 16: true, 17: true, 22: true}

func isDateNumFmt(style *excelize.Style) bool {
	if dateNumFmts[style.NumFmt] {
		return true
	}
	if style.CustomNumFmt == nil {
		return false
	}
	raw := strings.ToLower(*style.CustomNumFmt)
	// Elapsed time never qualifies.
	if strings.Contains(raw, "[h") || strings.Contains(raw, "[m") || strings.Contains(raw, "[s") {
		return false
	}
	code := numFmtTokens(raw)
	if strings.Contains(code, "0") {
		return false
	}
	return strings.Contains(code, "yy") || (strings.Contains(code, "d") && strings.Contains(code, "m"))
}

// numFmtTokens drops the bracketed sections (locale, color, condition) and
// quoted literals of a number format code, leaving the format tokens.
func numFmtTokens(code string) string {
	var b strings.Builder
	depth := 0
	quoted := false
	for _, r := range code {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			depth++
		case r == ']' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
