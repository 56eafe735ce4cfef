package model

import (
	"strings"
	"time"
)

// CellKind tags the value held by a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellDate
)

// Cell is one decoded spreadsheet cell. Decoders may mix kinds within a column.
type Cell struct {
	Kind CellKind
	Text string    // set when Kind == CellText
	Date time.Time // set when Kind == CellDate
}

// Text returns a text cell. Blank input yields an empty cell.
func Text(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

// DateCell returns a cell holding an already decoded date.
func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Date: t}
}

// IsEmpty reports whether the cell holds nothing usable.
func (c Cell) IsEmpty() bool {
	switch c.Kind {
	case CellText:
		return strings.TrimSpace(c.Text) == ""
	case CellDate:
		return c.Date.IsZero()
	default:
		return true
	}
}

// String returns the textual form of the cell. Dates render as YYYY-MM-DD.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellDate:
		return c.Date.Format(ISODateFormat)
	default:
		return ""
	}
}

// Record maps trimmed column names to the cells of one data row.
type Record map[string]Cell
