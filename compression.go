package querydesk

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/nao1215/querydesk/domain/model"
	"github.com/ulikunitz/xz"
)

// decompressor wraps r with the decoder of one compression format
type decompressor func(r io.Reader) (io.ReadCloser, error)

var decompressors = map[model.CompressionType]decompressor{
	model.CompressionNone: func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	},
	model.CompressionGZ: func(r io.Reader) (io.ReadCloser, error) {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	},
	model.CompressionBZ2: func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(bzip2.NewReader(r)), nil
	},
	model.CompressionXZ: func(r io.Reader) (io.ReadCloser, error) {
		zr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(zr), nil
	},
	model.CompressionZSTD: func(r io.Reader) (io.ReadCloser, error) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	},
}

// decompress returns a reader of the decompressed content of r. Closing it
// releases the decoder only; r stays open.
func decompress(ct model.CompressionType, r io.Reader) (io.ReadCloser, error) {
	wrap, ok := decompressors[ct]
	if !ok {
		return nil, fmt.Errorf("unsupported compression type: %s", ct)
	}
	rc, err := wrap(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s reader: %w", ct, err)
	}
	return rc, nil
}

// inputFile is a decompressed view of an open file
type inputFile struct {
	io.ReadCloser
	file *os.File
}

// Close releases the decoder and the file
func (f *inputFile) Close() error {
	return errors.Join(f.ReadCloser.Close(), f.file.Close())
}

// openFile opens f and returns its decompressed content
func openFile(f *model.File) (io.ReadCloser, error) {
	file, err := os.Open(f.Path()) //nolint:gosec // User-selected path is necessary for file operations
	if err != nil {
		return nil, err
	}

	rc, err := decompress(f.Compression(), file)
	if err != nil {
		_ = file.Close() // Ignore close error during error handling
		return nil, err
	}
	return &inputFile{ReadCloser: rc, file: file}, nil
}
