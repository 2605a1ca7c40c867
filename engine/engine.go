package engine

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/nao1215/querydesk/domain/model"
)

const (
	// NameSQLite selects the SQLite engine
	NameSQLite = "sqlite"
	// NameDuckDB selects the DuckDB engine
	NameDuckDB = "duckdb"
)

// Engine opens isolated in-memory databases holding one dataset.
type Engine interface {
	// Name returns the engine name as used in configuration
	Name() string
	// Open creates a fresh database, registers ds under ds.Name() and
	// returns a handle pinned to a single connection. The caller must Close it.
	Open(ctx context.Context, ds *model.Dataset) (*sql.DB, error)
}

// New returns the engine registered under name. An empty name selects SQLite.
func New(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameSQLite:
		return NewSQLite(), nil
	case NameDuckDB:
		eng, err := NewDuckDB()
		if err != nil {
			return nil, err
		}
		return eng, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

// Names lists the engine names New accepts
func Names() []string {
	return []string{NameSQLite, NameDuckDB}
}

var plainIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// QuoteIdent quotes an SQL identifier with double quotes.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// IsPlainIdentifier reports whether name can be used in SQL without quoting.
func IsPlainIdentifier(name string) bool {
	return plainIdentifier.MatchString(name)
}

// typeMapper maps an inferred column type to an engine column type
type typeMapper func(model.ColumnType) string

// sqliteColumnType maps an inferred column type to a SQLite type
func sqliteColumnType(ct model.ColumnType) string {
	return ct.String()
}

// duckdbColumnType maps an inferred column type to a DuckDB type
func duckdbColumnType(ct model.ColumnType) string {
	switch ct {
	case model.ColumnTypeInteger:
		return "BIGINT"
	case model.ColumnTypeReal:
		return "DOUBLE"
	case model.ColumnTypeBoolean:
		return "BOOLEAN"
	default:
		return "VARCHAR"
	}
}

// buildCreateTableQuery constructs a CREATE TABLE query for the dataset
func buildCreateTableQuery(ds *model.Dataset, columnType typeMapper) string {
	columns := ds.Columns()
	defs := make([]string, 0, len(columns))
	for _, col := range columns {
		defs = append(defs, QuoteIdent(col.Name)+" "+columnType(col.Type))
	}
	return fmt.Sprintf(
		`CREATE TABLE %s (%s)`,
		QuoteIdent(ds.Name()),
		strings.Join(defs, ", "),
	)
}

// buildInsertQuery constructs an INSERT query for the dataset
func buildInsertQuery(ds *model.Dataset) string {
	return fmt.Sprintf(
		`INSERT INTO %s VALUES (%s)`,
		QuoteIdent(ds.Name()),
		buildPlaceholders(ds.ColumnCount()),
	)
}

// buildPlaceholders creates placeholder string for prepared statements
func buildPlaceholders(count int) string {
	if count == 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", count), ", ")
}

// rowArgs converts a dataset row into statement arguments
func rowArgs(row []model.Value) []any {
	args := make([]any, len(row))
	for i, v := range row {
		args[i] = v.Any()
	}
	return args
}
