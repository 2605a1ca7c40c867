package model

import (
	"path/filepath"
	"strings"
)

// FileType represents the base format of an input file
type FileType int

const (
	// FileTypeCSV represents CSV file type
	FileTypeCSV FileType = iota
	// FileTypeTSV represents TSV file type
	FileTypeTSV
	// FileTypeLTSV represents LTSV file type
	FileTypeLTSV
	// FileTypeParquet represents Parquet file type
	FileTypeParquet
	// FileTypeXLSX represents Excel XLSX file type
	FileTypeXLSX
)

// String returns a short name of the file type
func (ft FileType) String() string {
	switch ft {
	case FileTypeTSV:
		return "TSV"
	case FileTypeLTSV:
		return "LTSV"
	case FileTypeParquet:
		return "Parquet"
	case FileTypeXLSX:
		return "XLSX"
	default:
		return "CSV"
	}
}

// CompressionType represents the compression wrapping an input file
type CompressionType int

const (
	// CompressionNone represents no compression
	CompressionNone CompressionType = iota
	// CompressionGZ represents gzip compression
	CompressionGZ
	// CompressionBZ2 represents bzip2 compression
	CompressionBZ2
	// CompressionXZ represents xz compression
	CompressionXZ
	// CompressionZSTD represents zstd compression
	CompressionZSTD
)

// String returns the compression format name, or "none"
func (ct CompressionType) String() string {
	switch ct {
	case CompressionNone:
		return "none"
	case CompressionGZ:
		return "gzip"
	case CompressionBZ2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	case CompressionZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

// File extensions
const (
	// ExtCSV is the CSV file extension
	ExtCSV = ".csv"
	// ExtTSV is the TSV file extension
	ExtTSV = ".tsv"
	// ExtLTSV is the LTSV file extension
	ExtLTSV = ".ltsv"
	// ExtParquet is the Parquet file extension
	ExtParquet = ".parquet"
	// ExtXLSX is the Excel XLSX file extension
	ExtXLSX = ".xlsx"
	// ExtGZ is the gzip compression extension
	ExtGZ = ".gz"
	// ExtBZ2 is the bzip2 compression extension
	ExtBZ2 = ".bz2"
	// ExtXZ is the xz compression extension
	ExtXZ = ".xz"
	// ExtZSTD is the zstd compression extension
	ExtZSTD = ".zst"
)

var compressionExts = []struct {
	ext         string
	compression CompressionType
}{
	{ExtGZ, CompressionGZ},
	{ExtBZ2, CompressionBZ2},
	{ExtXZ, CompressionXZ},
	{ExtZSTD, CompressionZSTD},
}

// File describes an input file: its path, base format and compression.
type File struct {
	path        string
	fileType    FileType
	compression CompressionType
}

// NewFile creates a new File. Paths without a recognized extension are
// treated as CSV, matching the "all files" option of the file dialog.
func NewFile(path string) *File {
	base, compression := splitCompression(path)
	return &File{
		path:        path,
		fileType:    detectFileType(base),
		compression: compression,
	}
}

// Path returns file path
func (f *File) Path() string {
	return f.path
}

// Type returns the base file type
func (f *File) Type() FileType {
	return f.fileType
}

// Compression returns the compression type
func (f *File) Compression() CompressionType {
	return f.compression
}

// IsCompressed returns true if file is compressed
func (f *File) IsCompressed() bool {
	return f.compression != CompressionNone
}

// TableName returns the table name derived from the file path
func (f *File) TableName() string {
	return TableFromFilePath(f.path)
}

// IsSupportedFile checks if the file has an extension the loader recognizes
func IsSupportedFile(fileName string) bool {
	base, _ := splitCompression(fileName)
	switch strings.ToLower(filepath.Ext(base)) {
	case ExtCSV, ExtTSV, ExtLTSV, ExtParquet, ExtXLSX:
		return true
	default:
		return false
	}
}

// SupportedExtensions lists the extensions offered by the file dialog filter
func SupportedExtensions() []string {
	return []string{ExtCSV}
}

// TableFromFilePath creates table name from file path: the directory and
// the extension (after any compression extension) are removed. The name is
// not sanitized. Leading dots never start an extension, so ".csv" stays
// ".csv".
func TableFromFilePath(filePath string) string {
	fileName, _ := splitCompression(filepath.Base(filePath))
	ext := filepath.Ext(strings.TrimLeft(fileName, "."))
	return fileName[:len(fileName)-len(ext)]
}

// splitCompression removes a trailing compression extension
func splitCompression(path string) (string, CompressionType) {
	lower := strings.ToLower(path)
	for _, c := range compressionExts {
		if strings.HasSuffix(lower, c.ext) {
			return path[:len(path)-len(c.ext)], c.compression
		}
	}
	return path, CompressionNone
}

// detectFileType detects file type from extension
func detectFileType(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtTSV:
		return FileTypeTSV
	case ExtLTSV:
		return FileTypeLTSV
	case ExtParquet:
		return FileTypeParquet
	case ExtXLSX:
		return FileTypeXLSX
	default:
		return FileTypeCSV
	}
}
