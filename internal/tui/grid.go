package tui

import (
	"github.com/charmbracelet/bubbles/table"
)

// resultGrid adapts a bubbles table to querydesk.Grid. Every column gets the
// same fixed width.
type resultGrid struct {
	table       table.Model
	columnWidth int
	rows        []table.Row
}

func newResultGrid(columnWidth int) *resultGrid {
	t := table.New(
		table.WithFocused(false),
		table.WithHeight(defaultGridHeight),
	)
	t.SetStyles(gridStyles())
	return &resultGrid{table: t, columnWidth: columnWidth}
}

// Clear removes every column and row.
func (g *resultGrid) Clear() {
	g.rows = nil
	// Rows go first: the table renders a row cell by cell against the
	// current column set.
	g.table.SetRows(nil)
	g.table.SetColumns(nil)
}

// SetColumns replaces the column set and drops the rows.
func (g *resultGrid) SetColumns(names []string) {
	g.rows = nil
	g.table.SetRows(nil)
	columns := make([]table.Column, len(names))
	for i, name := range names {
		columns[i] = table.Column{Title: name, Width: g.columnWidth}
	}
	g.table.SetColumns(columns)
}

// AppendRow adds one row at the bottom.
func (g *resultGrid) AppendRow(cells []string) {
	row := make(table.Row, len(g.table.Columns()))
	copy(row, cells)
	g.rows = append(g.rows, row)
	g.table.SetRows(g.rows)
}

func (g *resultGrid) columnNames() []string {
	columns := g.table.Columns()
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Title
	}
	return names
}

func (g *resultGrid) rowCount() int {
	return len(g.rows)
}

func (g *resultGrid) empty() bool {
	return len(g.table.Columns()) == 0
}
