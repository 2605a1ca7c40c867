// Package engine provides the embedded SQL engines a query runs against.
//
// Every call to Engine.Open creates a fresh, isolated in-memory database,
// registers the dataset as a single table and returns a *sql.DB pinned to one
// connection. Closing the *sql.DB discards the database, so statements that
// modify data only ever touch the copy held by that engine instance.
//
// Two engines are available:
//
//   - "sqlite" (default): modernc.org/sqlite, pure Go.
//   - "duckdb": github.com/marcboeker/go-duckdb/v2, requires cgo.
package engine
