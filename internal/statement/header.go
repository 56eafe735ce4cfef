package statement

import (
	"strings"

	"github.com/cleared-dev/dailyspend/internal/model"
)

// Header is the row that names the statement columns.
type Header struct {
	Index   int
	Columns []string
}

// LocateHeader returns the first row holding a text cell that is exactly
// dateColumn once trimmed. Non-text cells in that row become "" columns.
func LocateHeader(rows [][]model.Cell, dateColumn string) (Header, error) {
	if len(rows) == 0 {
		return Header{}, ErrEmptySheet
	}

	for i, row := range rows {
		if !hasColumn(row, dateColumn) {
			continue
		}
		cols := make([]string, len(row))
		for j, c := range row {
			if c.Kind == model.CellText {
				cols[j] = strings.TrimSpace(c.Text)
			}
		}
		return Header{Index: i, Columns: cols}, nil
	}
	return Header{}, ErrHeaderNotFound
}

func hasColumn(row []model.Cell, name string) bool {
	for _, c := range row {
		if c.Kind == model.CellText && strings.TrimSpace(c.Text) == name {
			return true
		}
	}
	return false
}
