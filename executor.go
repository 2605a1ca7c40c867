package querydesk

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/nao1215/querydesk/domain/model"
	"github.com/nao1215/querydesk/engine"
)

// Execute runs sqlText against the session dataset in a fresh engine
// instance and returns the complete result.
//
// The engine is opened for this call only and closed before Execute
// returns, on success and on failure. Statements that modify data
// therefore never change the session dataset.
//
// Execute returns ErrNoDataset when nothing is loaded and ErrEmptyQuery for
// blank text; the engine is not opened in either case. Engine failures are
// returned as *QueryError and no partial result is returned.
func Execute(ctx context.Context, eng engine.Engine, sess *Session, sqlText string) (result *model.ResultTable, err error) {
	if sess == nil || !sess.Loaded() {
		return nil, ErrNoDataset
	}
	if strings.TrimSpace(sqlText) == "" {
		return nil, ErrEmptyQuery
	}

	ds := sess.Dataset()
	db, err := eng.Open(ctx, ds)
	if err != nil {
		return nil, &QueryError{TableName: ds.Name(), Err: err}
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			result = nil
			err = &QueryError{TableName: ds.Name(), Err: closeErr}
		}
	}()

	rows, err := db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, &QueryError{TableName: ds.Name(), Err: err}
	}

	result, err = materialize(rows)
	if closeErr := rows.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	if err != nil {
		return nil, &QueryError{TableName: ds.Name(), Err: err}
	}
	return result, nil
}

// rowScanner is the part of *sql.Rows materialize needs
type rowScanner interface {
	Columns() ([]string, error)
	ColumnTypes() ([]*sql.ColumnType, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// materialize reads every row and normalizes each cell into a Value
func materialize(rows rowScanner) (*model.ResultTable, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	declared := make([]string, len(columns))
	for i, ct := range types {
		if i < len(declared) && ct != nil {
			declared[i] = strings.ToUpper(ct.DatabaseTypeName())
		}
	}

	result := &model.ResultTable{
		Columns: columns,
		Rows:    make([][]model.Value, 0),
	}
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, err
		}

		row := make([]model.Value, len(values))
		for i, v := range values {
			row[i] = convertCell(declared[i], v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// convertCell applies the declared column type before falling back to
// FromAny. SQLite stores BOOLEAN as 0/1 and DuckDB returns DATE as a
// midnight time.Time.
func convertCell(declared string, v any) model.Value {
	switch declared {
	case "BOOLEAN", "BOOL":
		if n, ok := model.FromAny(v).AsInt(); ok && (n == 0 || n == 1) {
			return model.Bool(n == 1)
		}
	case "DATE":
		if t, ok := v.(time.Time); ok {
			return model.Text(t.Format(time.DateOnly))
		}
	}
	return model.FromAny(v)
}
