package model

// ResultTable is the materialized output of one query. It is discarded after rendering.
type ResultTable struct {
	// Columns are the result column names in engine order
	Columns []string
	// Rows are the result rows in engine order
	Rows [][]Value
}

// RowCount returns the number of result rows
func (r *ResultTable) RowCount() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Strings returns the display form of every row, as shown in a grid.
func (r *ResultTable) Strings() [][]string {
	if r == nil {
		return nil
	}
	out := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.String()
		}
		out[i] = cells
	}
	return out
}
