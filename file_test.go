package querydesk

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/nao1215/querydesk/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

// writeTestFile writes content to name inside a fresh temp directory
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_CSV(t *testing.T) {
	t.Parallel()

	t.Run("students fixture", func(t *testing.T) {
		t.Parallel()

		ds, err := Load(context.Background(), filepath.Join("testdata", "students.csv"))
		require.NoError(t, err)

		assert.Equal(t, "students", ds.Name())
		assert.Equal(t, []string{"id", "name", "grade"}, ds.ColumnNames())
		assert.Equal(t, 3, ds.RowCount())
		assert.Equal(t, model.ColumnTypeInteger, ds.Columns()[0].Type)
		assert.Equal(t, model.ColumnTypeText, ds.Columns()[1].Type)
		assert.True(t, ds.Rows()[2][1].Equal(model.Text("Charlie")))
	})

	t.Run("quoted fields", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "quotes.csv", "id,comment\n1,\"hello, world\"\n2,\"line one\nline two\"\n")
		ds, err := Load(context.Background(), path)
		require.NoError(t, err)
		require.Equal(t, 2, ds.RowCount())
		assert.True(t, ds.Rows()[0][1].Equal(model.Text("hello, world")))
		assert.True(t, ds.Rows()[1][1].Equal(model.Text("line one\nline two")))
	})

	t.Run("short rows are padded with nulls", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "short.csv", "a,b,c\n1,2\n3,4,5\n")
		ds, err := Load(context.Background(), path)
		require.NoError(t, err)
		assert.True(t, ds.Rows()[0][2].IsNull())
		assert.True(t, ds.Rows()[1][2].Equal(model.Int(5)))
	})

	t.Run("long rows are rejected with the line number", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "long.csv", "a,b\n1,2\n3,4,5\n")
		_, err := Load(context.Background(), path)
		require.ErrorIs(t, err, ErrLoad)
		require.ErrorIs(t, err, model.ErrFieldCount)
		assert.Contains(t, err.Error(), "line 3: expected 2 fields, saw 3")
		assert.Contains(t, err.Error(), "table: long")
		assert.Contains(t, err.Error(), "details: CSV")
	})

	t.Run("header only", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "empty_rows.csv", "id,name\n")
		ds, err := Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, 0, ds.RowCount())
		assert.Equal(t, []string{"id", "name"}, ds.ColumnNames())
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "empty.csv", "")
		_, err := Load(context.Background(), path)
		require.ErrorIs(t, err, ErrLoad)
		require.ErrorIs(t, err, ErrEmptyData)
	})

	t.Run("duplicate and blank headers are renamed", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "dups.csv", "x,x,\n1,2,3\n")
		ds, err := Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "x.1", "Unnamed: 2"}, ds.ColumnNames())
	})

	t.Run("headers differing only in case are renamed", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "people.csv", "id,ID,name\n1,2,x\n")
		ds, err := Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "ID.1", "name"}, ds.ColumnNames())
	})

	t.Run("byte order mark is stripped", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "bom.csv", "\ufeffid,name\n1,Alice\n")
		ds, err := Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name"}, ds.ColumnNames())
	})

	t.Run("unknown extension is read as CSV", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "export.txt", "a,b\n1,2\n")
		ds, err := Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "export", ds.Name())
		assert.Equal(t, 1, ds.RowCount())
	})

	t.Run("table name keeps special characters", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "sales 2024-q1.csv", "a\n1\n")
		ds, err := Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "sales 2024-q1", ds.Name())
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Load(ctx, filepath.Join("testdata", "students.csv"))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestLoad_FileSystemErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
		require.ErrorIs(t, err, ErrLoad)
		require.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, err := Load(context.Background(), t.TempDir())
		require.ErrorIs(t, err, ErrLoad)
		require.ErrorIs(t, err, ErrNotAFile)
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := Load(context.Background(), "  ")
		require.ErrorIs(t, err, ErrLoad)
	})

	t.Run("unreadable file", func(t *testing.T) {
		t.Parallel()
		if os.Getuid() == 0 {
			t.Skip("permission bits are not enforced for root")
		}

		path := writeTestFile(t, "secret.csv", "a\n1\n")
		require.NoError(t, os.Chmod(path, 0o000))
		_, err := Load(context.Background(), path)
		require.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestLoad_OtherFormats(t *testing.T) {
	t.Parallel()

	t.Run("TSV", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "people.tsv", "name\tage\nAlice\t30\nBob\t25\n")
		ds, err := Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "people", ds.Name())
		assert.Equal(t, []string{"name", "age"}, ds.ColumnNames())
		assert.Equal(t, model.ColumnTypeInteger, ds.Columns()[1].Type)
	})

	t.Run("LTSV keeps first seen label order", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "access.ltsv",
			"host:127.0.0.1\tstatus:200\tsize:512\n"+
				"\n"+
				"host:10.0.0.1\tstatus:404\treferer:-\n")
		ds, err := Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "access", ds.Name())
		assert.Equal(t, []string{"host", "status", "size", "referer"}, ds.ColumnNames())
		assert.Equal(t, 2, ds.RowCount())
		assert.True(t, ds.Rows()[0][3].IsNull())
		assert.True(t, ds.Rows()[1][2].IsNull())
	})

	t.Run("LTSV without records", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "blank.ltsv", "\n\n")
		_, err := Load(context.Background(), path)
		require.ErrorIs(t, err, ErrEmptyData)
	})
}

func TestLoad_Compressed(t *testing.T) {
	t.Parallel()

	const content = "id,name\n1,Alice\n2,Bob\n"

	tests := []struct {
		name  string
		file  string
		write func(t *testing.T, f *os.File)
	}{
		{
			name: "gzip",
			file: "users.csv.gz",
			write: func(t *testing.T, f *os.File) {
				t.Helper()
				w := gzip.NewWriter(f)
				_, err := w.Write([]byte(content))
				require.NoError(t, err)
				require.NoError(t, w.Close())
			},
		},
		{
			name: "xz",
			file: "users.csv.xz",
			write: func(t *testing.T, f *os.File) {
				t.Helper()
				w, err := xz.NewWriter(f)
				require.NoError(t, err)
				_, err = w.Write([]byte(content))
				require.NoError(t, err)
				require.NoError(t, w.Close())
			},
		},
		{
			name: "zstd",
			file: "users.csv.zst",
			write: func(t *testing.T, f *os.File) {
				t.Helper()
				w, err := zstd.NewWriter(f)
				require.NoError(t, err)
				_, err = w.Write([]byte(content))
				require.NoError(t, err)
				require.NoError(t, w.Close())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.file)
			f, err := os.Create(path)
			require.NoError(t, err)
			tt.write(t, f)
			require.NoError(t, f.Close())

			ds, err := Load(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, "users", ds.Name())
			assert.Equal(t, 2, ds.RowCount())
		})
	}

	t.Run("corrupt gzip", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "broken.csv.gz", "not gzip at all")
		_, err := Load(context.Background(), path)
		require.ErrorIs(t, err, ErrLoad)
		assert.Contains(t, err.Error(), "gzip")
		assert.Contains(t, err.Error(), "details: CSV, gzip")
	})
}
