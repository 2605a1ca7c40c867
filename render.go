package querydesk

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nao1215/querydesk/domain/model"
)

// Grid is a tabular display that results are rendered into.
type Grid interface {
	// Clear removes all columns and rows
	Clear()
	// SetColumns replaces the column headings
	SetColumns(columns []string)
	// AppendRow adds one row of display values
	AppendRow(cells []string)
}

// Render clears grid and fills it with result: columns in result order,
// then one row per result row in result order. Values use their display form.
func Render(grid Grid, result *model.ResultTable) {
	grid.Clear()
	if result == nil {
		return
	}
	grid.SetColumns(append([]string(nil), result.Columns...))
	for _, cells := range result.Strings() {
		grid.AppendRow(cells)
	}
}

// TextGrid is a Grid that buffers a result and prints it as aligned text.
type TextGrid struct {
	columns []string
	rows    [][]string
}

// NewTextGrid creates an empty TextGrid
func NewTextGrid() *TextGrid {
	return &TextGrid{}
}

// Clear implements Grid
func (g *TextGrid) Clear() {
	g.columns = nil
	g.rows = nil
}

// SetColumns implements Grid
func (g *TextGrid) SetColumns(columns []string) {
	g.columns = columns
}

// AppendRow implements Grid
func (g *TextGrid) AppendRow(cells []string) {
	g.rows = append(g.rows, cells)
}

// Columns returns the current column headings
func (g *TextGrid) Columns() []string {
	return g.columns
}

// Rows returns the current rows
func (g *TextGrid) Rows() [][]string {
	return g.rows
}

// WriteTo prints the grid as tab-aligned columns followed by a row count.
// An empty grid prints nothing.
func (g *TextGrid) WriteTo(w io.Writer) (int64, error) {
	if len(g.columns) == 0 {
		return 0, nil
	}

	cw := &countingWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(g.columns, "\t"))
	separators := make([]string, len(g.columns))
	for i, col := range g.columns {
		separators[i] = strings.Repeat("-", max(len(col), 3))
	}
	fmt.Fprintln(tw, strings.Join(separators, "\t"))
	for _, row := range g.rows {
		fmt.Fprintln(tw, strings.Join(sanitizeCells(row), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return cw.n, err
	}

	suffix := "rows"
	if len(g.rows) == 1 {
		suffix = "row"
	}
	_, err := fmt.Fprintf(cw, "(%d %s)\n", len(g.rows), suffix)
	return cw.n, err
}

// sanitizeCells keeps tabs and newlines inside a cell from breaking alignment
func sanitizeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(c)
	}
	return out
}

// countingWriter counts the bytes written through it
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
