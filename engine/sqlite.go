package engine

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/nao1215/querydesk/domain/model"
	"modernc.org/sqlite"
)

// SQLite is the default engine, an in-memory modernc.org/sqlite database.
type SQLite struct{}

// NewSQLite creates the SQLite engine
func NewSQLite() *SQLite {
	return &SQLite{}
}

// Name implements Engine
func (s *SQLite) Name() string {
	return NameSQLite
}

// Open implements Engine. The dataset is loaded when the single pooled
// connection is established, so a failed load surfaces here.
func (s *SQLite) Open(ctx context.Context, ds *model.Dataset) (*sql.DB, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	db := sql.OpenDB(&Connector{dataset: ds})
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close() // Ignore close error since we're already returning an error
		return nil, err
	}
	return db, nil
}

// Connector implements database/sql/driver.Connector interface.
// Each connection it creates is a new in-memory SQLite database holding the dataset.
type Connector struct {
	dataset *model.Dataset
}

// Connect implements driver.Connector interface
func (c *Connector) Connect(ctx context.Context) (driver.Conn, error) {
	sqliteDriver := &sqlite.Driver{}
	conn, err := sqliteDriver.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory database: %w", err)
	}

	if err := c.loadDataset(ctx, conn); err != nil {
		_ = conn.Close() // Ignore close error since we're already returning an error
		return nil, fmt.Errorf("failed to register table %s: %w", c.dataset.Name(), err)
	}
	return conn, nil
}

// Driver implements driver.Connector interface
func (c *Connector) Driver() driver.Driver {
	return &sqlite.Driver{}
}

// loadDataset creates the table and inserts every row inside one transaction
func (c *Connector) loadDataset(ctx context.Context, conn driver.Conn) error {
	if err := c.executeStatement(ctx, conn, buildCreateTableQuery(c.dataset, sqliteColumnType), nil); err != nil {
		return err
	}
	if c.dataset.RowCount() == 0 {
		return nil
	}

	beginner, ok := conn.(driver.ConnBeginTx)
	if !ok {
		return c.insertRows(ctx, conn)
	}
	tx, err := beginner.BeginTx(ctx, driver.TxOptions{})
	if err != nil {
		return err
	}
	if err := c.insertRows(ctx, conn); err != nil {
		_ = tx.Rollback() // Ignore rollback error, the insert error is reported
		return err
	}
	return tx.Commit()
}

// insertRows inserts all rows using one prepared statement
func (c *Connector) insertRows(ctx context.Context, conn driver.Conn) error {
	preparer, ok := conn.(driver.ConnPrepareContext)
	if !ok {
		return ErrPrepareContextNotSupported
	}
	stmt, err := preparer.PrepareContext(ctx, buildInsertQuery(c.dataset))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range c.dataset.Rows() {
		if err := c.executeStatement(ctx, stmt, "", rowArgs(row)); err != nil {
			return err
		}
	}
	return nil
}

// executeStatement executes a statement with proper context support
func (c *Connector) executeStatement(ctx context.Context, target any, query string, args []any) error {
	switch stmt := target.(type) {
	case driver.Conn:
		preparer, ok := stmt.(driver.ConnPrepareContext)
		if !ok {
			return ErrPrepareContextNotSupported
		}
		preparedStmt, err := preparer.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer preparedStmt.Close()
		return c.executeStatement(ctx, preparedStmt, "", args)

	case driver.Stmt:
		stmtExecCtx, ok := stmt.(driver.StmtExecContext)
		if !ok {
			return ErrStmtExecContextNotSupported
		}
		_, err := stmtExecCtx.ExecContext(ctx, toNamedValues(args))
		return err

	default:
		return fmt.Errorf("unsupported statement type %T", target)
	}
}

// toNamedValues converts arguments to driver.NamedValue slice
func toNamedValues(args []any) []driver.NamedValue {
	namedArgs := make([]driver.NamedValue, len(args))
	for i, arg := range args {
		namedArgs[i] = driver.NamedValue{
			Ordinal: i + 1,
			Value:   arg,
		}
	}
	return namedArgs
}
