package querydesk

import (
	"context"

	"github.com/nao1215/querydesk/domain/model"
)

// Load reads the file at path into an in-memory dataset. The dataset is
// named after the file: directory, compression extension and format
// extension are removed, and no other change is made to the name.
//
// CSV is the primary format. TSV, LTSV, XLSX (first sheet) and Parquet are
// recognized by extension, each optionally compressed with gzip, bzip2, xz or
// zstd. Any other extension is read as CSV.
//
// Every error matches ErrLoad. File system failures also match
// ErrFileNotFound or ErrPermissionDenied, and a file without a header row
// matches ErrEmptyData.
func Load(ctx context.Context, path string) (*model.Dataset, error) {
	ec := NewErrorContext("load", path)
	if err := validatePath(path); err != nil {
		return nil, ec.Wrap(ErrLoad, err)
	}

	f := model.NewFile(path)
	ds, err := loadFile(ctx, f)
	if err != nil {
		return nil, ec.WithTable(f.TableName()).WithDetails(describeFile(f)).Wrap(ErrLoad, err)
	}
	return ds, nil
}

// describeFile names the format the loader chose, e.g. "TSV" or "CSV, gzip"
func describeFile(f *model.File) string {
	if f.IsCompressed() {
		return f.Type().String() + ", " + f.Compression().String()
	}
	return f.Type().String()
}

// loadFile opens f, decompresses it and parses it by file type
func loadFile(ctx context.Context, f *model.File) (*model.Dataset, error) {
	input, err := openFile(f)
	if err != nil {
		return nil, classifyOpenError(err)
	}
	defer func() {
		_ = input.Close() // Ignore close error, the file was only read
	}()

	return newStreamingParser(f.Type(), f.TableName()).parseFromReader(ctx, input)
}
