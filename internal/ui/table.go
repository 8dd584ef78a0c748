package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	columnGap    = "  "
	cellEllipsis = "..."
)

var cellBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// Column is one column of a Table.
type Column struct {
	Header string

	// MaxWidth caps the display width of cells in the column, counting the
	// ellipsis added to truncated cells. Zero means unlimited.
	MaxWidth int
}

// Table lays out plain-text rows in left-aligned columns.
type Table struct {
	columns []Column
	rows    [][]string
}

// NewTable returns an empty table with the given columns.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row. Missing trailing cells render empty and extra cells
// are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.columns))
	for i := range row {
		if i < len(cells) {
			row[i] = t.cell(i, cells[i])
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) cell(column int, value string) string {
	value = cellBreaks.Replace(value)
	if limit := t.columns[column].MaxWidth; limit > 0 {
		value = runewidth.Truncate(value, limit, cellEllipsis)
	}
	return value
}

// String renders the header line followed by every row. The last column is
// not padded.
func (t *Table) String() string {
	header := make([]string, len(t.columns))
	widths := make([]int, len(t.columns))
	for i, column := range t.columns {
		header[i] = column.Header
		widths[i] = runewidth.StringWidth(column.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	for _, row := range append([][]string{header}, t.rows...) {
		last := len(row) - 1
		for i, cell := range row {
			if i == last {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString(columnGap)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
