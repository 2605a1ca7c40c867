// Package model provides the domain model for querydesk: datasets, typed
// values, query results, and the file types the loader understands.
package model

import (
	"strconv"
	"strings"
)

// Header is the raw first row of a file, one name per column.
type Header []string

// NewHeader create new Header.
func NewHeader(h []string) Header {
	return Header(h)
}

// Normalize returns a copy of the header where blank names become
// "Unnamed: <index>" and repeated names get ".1", ".2", ... suffixes.
// Names are compared case-insensitively, as SQL identifiers are.
func (h Header) Normalize() Header {
	out := make(Header, len(h))
	seen := make(map[string]int, len(h))
	for i, name := range h {
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		base := strings.ToLower(name)
		suffixed := name
		for {
			if _, dup := seen[strings.ToLower(suffixed)]; !dup {
				break
			}
			seen[base]++
			suffixed = name + "." + strconv.Itoa(seen[base])
		}
		seen[strings.ToLower(suffixed)] = 0
		out[i] = suffixed
	}
	return out
}

// Record is one raw data row as read from a file. It may be shorter than
// the header.
type Record []string

// NewRecord create new Record.
func NewRecord(r []string) Record {
	return Record(r)
}

// ColumnType represents the inferred column type
type ColumnType int

const (
	// ColumnTypeText represents TEXT column type
	ColumnTypeText ColumnType = iota
	// ColumnTypeInteger represents INTEGER column type
	ColumnTypeInteger
	// ColumnTypeReal represents REAL column type
	ColumnTypeReal
	// ColumnTypeDatetime represents datetime stored as TEXT in ISO8601 format
	ColumnTypeDatetime
	// ColumnTypeBoolean represents true/false columns
	ColumnTypeBoolean
)

// sqliteTypes maps each column type to its SQLite declared type. Datetimes
// stay TEXT.
var sqliteTypes = [...]string{
	ColumnTypeText:     "TEXT",
	ColumnTypeInteger:  "INTEGER",
	ColumnTypeReal:     "REAL",
	ColumnTypeDatetime: "TEXT",
	ColumnTypeBoolean:  "BOOLEAN",
}

// String returns the SQLite column type string
func (ct ColumnType) String() string {
	if ct < 0 || int(ct) >= len(sqliteTypes) {
		return sqliteTypes[ColumnTypeText]
	}
	return sqliteTypes[ct]
}

// Column is a named dataset column with its inferred type.
type Column struct {
	Name string
	Type ColumnType
}
