package engine

import (
	"context"
	"testing"

	"github.com/nao1215/querydesk/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_Open(t *testing.T) {
	t.Parallel()

	t.Run("registers the dataset", func(t *testing.T) {
		t.Parallel()

		db, err := NewSQLite().Open(context.Background(), newTestDataset(t, "students"))
		require.NoError(t, err)
		defer db.Close()

		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM students`).Scan(&count))
		assert.Equal(t, 3, count)

		var name string
		var grade float64
		require.NoError(t, db.QueryRow(`SELECT name, grade FROM students WHERE id = 2`).Scan(&name, &grade))
		assert.Equal(t, "Bob", name)
		assert.InDelta(t, 72.0, grade, 0.0001)

		var nulls int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM students WHERE name IS NULL AND grade IS NULL`).Scan(&nulls))
		assert.Equal(t, 1, nulls)
	})

	t.Run("table names are quoted", func(t *testing.T) {
		t.Parallel()

		db, err := NewSQLite().Open(context.Background(), newTestDataset(t, "sales 2024-q1"))
		require.NoError(t, err)
		defer db.Close()

		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "sales 2024-q1"`).Scan(&count))
		assert.Equal(t, 3, count)
	})

	t.Run("modifications stay inside one engine instance", func(t *testing.T) {
		t.Parallel()

		ds := newTestDataset(t, "students")
		eng := NewSQLite()

		first, err := eng.Open(context.Background(), ds)
		require.NoError(t, err)
		_, err = first.Exec(`DELETE FROM students`)
		require.NoError(t, err)

		var count int
		require.NoError(t, first.QueryRow(`SELECT COUNT(*) FROM students`).Scan(&count))
		assert.Equal(t, 0, count)
		require.NoError(t, first.Close())

		second, err := eng.Open(context.Background(), ds)
		require.NoError(t, err)
		defer second.Close()
		require.NoError(t, second.QueryRow(`SELECT COUNT(*) FROM students`).Scan(&count))
		assert.Equal(t, 3, count)
		assert.Equal(t, 3, ds.RowCount())
	})

	t.Run("header only dataset", func(t *testing.T) {
		t.Parallel()

		ds, err := model.NewDataset("empty", model.NewHeader([]string{"a", "b"}), nil)
		require.NoError(t, err)

		db, err := NewSQLite().Open(context.Background(), ds)
		require.NoError(t, err)
		defer db.Close()

		rows, err := db.Query(`SELECT * FROM empty`)
		require.NoError(t, err)
		defer rows.Close()
		columns, err := rows.Columns()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, columns)
		assert.False(t, rows.Next())
	})

	t.Run("nil dataset", func(t *testing.T) {
		t.Parallel()

		_, err := NewSQLite().Open(context.Background(), nil)
		require.ErrorIs(t, err, ErrNilDataset)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewSQLite().Open(ctx, newTestDataset(t, "students"))
		require.Error(t, err)
	})
}
