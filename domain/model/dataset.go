package model

import (
	"fmt"
)

// Dataset is the in-memory table built from one loaded file.
// It is read-only after construction.
type Dataset struct {
	name    string
	columns []Column
	rows    [][]Value
}

// NewDataset infers column types from the raw records and converts every cell
// into a typed Value. The header is normalized first. Records shorter than the
// header are padded with nulls; longer records are rejected.
func NewDataset(name string, header Header, records []Record) (*Dataset, error) {
	header = header.Normalize()
	for i, record := range records {
		if len(record) > len(header) {
			return nil, fmt.Errorf("%w: record %d: expected %d fields, saw %d",
				ErrFieldCount, i+1, len(header), len(record))
		}
	}

	columns := InferColumns(header, records)
	rows := make([][]Value, len(records))
	for i, record := range records {
		row := make([]Value, len(columns))
		for j, column := range columns {
			if j < len(record) {
				row[j] = ConvertCell(record[j], column.Type)
			}
		}
		rows[i] = row
	}

	return &Dataset{
		name:    name,
		columns: columns,
		rows:    rows,
	}, nil
}

// NewDatasetFromValues builds a dataset from already typed rows, as produced
// by columnar sources. Every row must have exactly len(columns) values.
// Column names are normalized the same way as a text header.
func NewDatasetFromValues(name string, columns []Column, rows [][]Value) (*Dataset, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d: expected %d fields, saw %d",
				ErrFieldCount, i+1, len(columns), len(row))
		}
	}
	header := make(Header, len(columns))
	for i, c := range columns {
		header[i] = c.Name
	}
	normalized := append([]Column(nil), columns...)
	for i, columnName := range header.Normalize() {
		normalized[i].Name = columnName
	}
	return &Dataset{
		name:    name,
		columns: normalized,
		rows:    rows,
	}, nil
}

// Name returns the table name the dataset is registered under
func (d *Dataset) Name() string {
	return d.name
}

// Columns returns a copy of the ordered column list
func (d *Dataset) Columns() []Column {
	return append([]Column(nil), d.columns...)
}

// ColumnNames returns the ordered column names
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Rows returns the rows. Callers must not modify them.
func (d *Dataset) Rows() [][]Value {
	return d.rows
}

// RowCount returns the number of data rows
func (d *Dataset) RowCount() int {
	return len(d.rows)
}

// ColumnCount returns the number of columns
func (d *Dataset) ColumnCount() int {
	return len(d.columns)
}
