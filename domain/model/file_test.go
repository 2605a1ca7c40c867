package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		path        string
		fileType    FileType
		compression CompressionType
	}{
		{"CSV file", "test.csv", FileTypeCSV, CompressionNone},
		{"TSV file", "test.tsv", FileTypeTSV, CompressionNone},
		{"LTSV file", "test.ltsv", FileTypeLTSV, CompressionNone},
		{"Parquet file", "test.parquet", FileTypeParquet, CompressionNone},
		{"XLSX file", "test.xlsx", FileTypeXLSX, CompressionNone},
		{"Compressed CSV file", "test.csv.gz", FileTypeCSV, CompressionGZ},
		{"Compressed TSV file", "test.tsv.bz2", FileTypeTSV, CompressionBZ2},
		{"Compressed LTSV file", "test.ltsv.xz", FileTypeLTSV, CompressionXZ},
		{"Zstd compressed CSV file", "test.csv.zst", FileTypeCSV, CompressionZSTD},
		{"Upper case extensions", "DATA.CSV.GZ", FileTypeCSV, CompressionGZ},
		{"Unknown extension reads as CSV", "test.txt", FileTypeCSV, CompressionNone},
		{"No extension reads as CSV", "README", FileTypeCSV, CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := NewFile(tt.path)
			assert.Equal(t, tt.path, f.Path())
			assert.Equal(t, tt.fileType, f.Type())
			assert.Equal(t, tt.compression, f.Compression())
			assert.Equal(t, tt.compression != CompressionNone, f.IsCompressed())
		})
	}
}

func TestIsSupportedFile(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSupportedFile("a.csv"))
	assert.True(t, IsSupportedFile("a.TSV"))
	assert.True(t, IsSupportedFile("a.parquet.zst"))
	assert.True(t, IsSupportedFile("a.xlsx"))
	assert.False(t, IsSupportedFile("a.txt"))
	assert.False(t, IsSupportedFile("a.gz"))
	assert.Equal(t, []string{".csv"}, SupportedExtensions())
}

func TestFileType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "CSV", FileTypeCSV.String())
	assert.Equal(t, "TSV", FileTypeTSV.String())
	assert.Equal(t, "LTSV", FileTypeLTSV.String())
	assert.Equal(t, "Parquet", FileTypeParquet.String())
	assert.Equal(t, "XLSX", FileTypeXLSX.String())
}

func TestTableFromFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filePath string
		expected string
	}{
		{"simple CSV file", "test.csv", "test"},
		{"file with path", "/path/to/students.csv", "students"},
		{"compressed file", "data.csv.gz", "data"},
		{"multiple dots", "sales.2024.csv", "sales.2024"},
		{"unknown extension", "notes.txt", "notes"},
		{"no extension", "README", "README"},
		{"name is not sanitized", "my data-file.csv", "my data-file"},
		{"relative path", "./fixtures/grades.tsv.zst", "grades"},
		{"extension only", ".csv", ".csv"},
		{"leading dots only", "..csv", "..csv"},
		{"hidden file with extension", ".grades.csv", ".grades"},
		{"compressed extension only", ".csv.gz", ".csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, TableFromFilePath(tt.filePath))
			assert.Equal(t, tt.expected, NewFile(tt.filePath).TableName())
		})
	}
}
