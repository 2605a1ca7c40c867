//go:build !cgo

package engine

import (
	"context"
	"database/sql"

	"github.com/nao1215/querydesk/domain/model"
)

// DuckDB is unavailable in binaries built without cgo.
type DuckDB struct{}

// NewDuckDB reports that DuckDB is not compiled into this binary
func NewDuckDB() (*DuckDB, error) {
	return nil, ErrEngineUnavailable
}

// Name implements Engine
func (d *DuckDB) Name() string {
	return NameDuckDB
}

// Open implements Engine
func (d *DuckDB) Open(context.Context, *model.Dataset) (*sql.DB, error) {
	return nil, ErrEngineUnavailable
}
