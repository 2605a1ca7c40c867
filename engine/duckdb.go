//go:build cgo

package engine

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/nao1215/querydesk/domain/model"
)

// DuckDB is the analytical engine backed by an in-memory DuckDB database.
type DuckDB struct{}

// NewDuckDB creates the DuckDB engine
func NewDuckDB() (*DuckDB, error) {
	return &DuckDB{}, nil
}

// Name implements Engine
func (d *DuckDB) Name() string {
	return NameDuckDB
}

// Open implements Engine
func (d *DuckDB) Open(ctx context.Context, ds *model.Dataset) (*sql.DB, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	// One connection for the lifetime of the handle
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := registerDataset(ctx, db, ds, duckdbColumnType); err != nil {
		_ = db.Close() // Ignore close error since we're already returning an error
		return nil, fmt.Errorf("failed to register table %s: %w", ds.Name(), err)
	}
	return db, nil
}
