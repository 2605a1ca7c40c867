package engine

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nao1215/querydesk/domain/model"
)

// registerDataset creates the dataset table through database/sql and
// inserts every row in one transaction.
func registerDataset(ctx context.Context, db *sql.DB, ds *model.Dataset, columnType typeMapper) error {
	if _, err := db.ExecContext(ctx, buildCreateTableQuery(ds, columnType)); err != nil {
		return err
	}
	if ds.RowCount() == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, buildInsertQuery(ds))
	if err != nil {
		return errors.Join(err, tx.Rollback())
	}
	defer stmt.Close()

	for _, row := range ds.Rows() {
		if _, err := stmt.ExecContext(ctx, rowArgs(row)...); err != nil {
			return errors.Join(err, tx.Rollback())
		}
	}
	return tx.Commit()
}
