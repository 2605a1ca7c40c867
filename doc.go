// Package querydesk loads a tabular file into memory and runs ad-hoc SQL
// against it through an embedded query engine.
//
// The flow has three steps:
//
//   - Load reads a CSV file (or TSV, LTSV, XLSX, Parquet, optionally
//     compressed) into a model.Dataset named after the file.
//   - Execute opens a fresh in-memory engine, registers the dataset as a
//     table, runs the SQL text verbatim and returns the whole result.
//   - Render clears a Grid and fills it with the result.
//
// # Basic Usage
//
//	ds, err := querydesk.Load(ctx, "students.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sess := querydesk.NewSession()
//	sess.Replace(ds)
//
//	result, err := querydesk.Execute(ctx, engine.NewSQLite(), sess, "SELECT * FROM students")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	grid := querydesk.NewTextGrid()
//	querydesk.Render(grid, result)
//	grid.WriteTo(os.Stdout)
//
// # Table Naming
//
// Table names are derived from file paths and are not sanitized:
//   - "students.csv" becomes table "students"
//   - "data.tsv.gz" becomes table "data"
//   - "/path/to/sales 2024.csv" becomes table "sales 2024"
//
// Names that are not plain identifiers must be double-quoted in SQL.
//
// # Data Modifications
//
// INSERT, UPDATE, DELETE and DDL statements are allowed. They only affect
// the engine instance opened for that one execution, which is discarded
// afterwards. The loaded dataset and the file on disk never change.
//
// # Controller
//
// Controller wraps the same steps as the two user actions of the
// interactive window and turns every outcome into a Notice.
package querydesk
