package querydesk

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/nao1215/querydesk/domain/model"
	"github.com/xuri/excelize/v2"
)

// File format delimiters
const (
	// csvDelimiter is the delimiter for CSV files
	csvDelimiter = ','
	// tsvDelimiter is the delimiter for TSV files
	tsvDelimiter = '\t'
)

// cancelCheckInterval is how many rows are read between context checks
const cancelCheckInterval = 1000

// utf8BOM is stripped from the first header cell
const utf8BOM = "\ufeff"

// streamingParser turns a decompressed reader into a dataset
type streamingParser struct {
	fileType  model.FileType
	tableName string
}

// newStreamingParser creates a new streaming parser
func newStreamingParser(fileType model.FileType, tableName string) *streamingParser {
	return &streamingParser{
		fileType:  fileType,
		tableName: tableName,
	}
}

// parseFromReader parses data from reader based on the file type
func (p *streamingParser) parseFromReader(ctx context.Context, reader io.Reader) (*model.Dataset, error) {
	switch p.fileType {
	case model.FileTypeTSV:
		return p.parseDelimitedStream(ctx, reader, tsvDelimiter, "TSV")
	case model.FileTypeLTSV:
		return p.parseLTSVStream(ctx, reader)
	case model.FileTypeXLSX:
		return p.parseXLSXStream(ctx, reader)
	case model.FileTypeParquet:
		return p.parseParquetStream(ctx, reader)
	default:
		return p.parseDelimitedStream(ctx, reader, csvDelimiter, "CSV")
	}
}

// parseDelimitedStream parses CSV or TSV data. The first record is the header.
// Records shorter than the header are padded later; longer ones are an error.
func (p *streamingParser) parseDelimitedStream(ctx context.Context, reader io.Reader, delimiter rune, fileTypeName string) (*model.Dataset, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.FieldsPerRecord = -1

	headerRow, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header row in %s data", ErrEmptyData, fileTypeName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fileTypeName, err)
	}
	headerRow[0] = strings.TrimPrefix(headerRow[0], utf8BOM)
	header := model.NewHeader(headerRow)

	var records []model.Record
	for {
		if len(records)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fileTypeName, err)
		}
		if len(row) > len(header) {
			line, _ := csvReader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: expected %d fields, saw %d",
				model.ErrFieldCount, line, len(header), len(row))
		}
		records = append(records, model.NewRecord(row))
	}

	return model.NewDataset(p.tableName, header, records)
}

// parseLTSVStream parses LTSV data. Columns appear in the order their labels
// are first seen; missing labels are null.
func (p *streamingParser) parseLTSVStream(ctx context.Context, reader io.Reader) (*model.Dataset, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		header     model.Header
		headerSeen = make(map[string]int)
		rows       []map[string]string
	)

	for scanner.Scan() {
		if len(rows)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		row := make(map[string]string)
		for _, pair := range strings.Split(line, "\t") {
			key, value, ok := strings.Cut(pair, ":")
			if !ok {
				continue
			}
			key = strings.TrimSpace(key)
			if _, exists := headerSeen[key]; !exists {
				headerSeen[key] = len(header)
				header = append(header, key)
			}
			row[key] = strings.TrimSpace(value)
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read LTSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no valid LTSV records found", ErrEmptyData)
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		record := make(model.Record, len(header))
		for i, key := range header {
			record[i] = row[key]
		}
		records = append(records, record)
	}
	return model.NewDataset(p.tableName, header, records)
}

// parseXLSXStream parses the first sheet of an XLSX workbook. Leading empty
// rows are skipped, the next row is the header. Cells to the right of the
// header get blank column names.
func (p *streamingParser) parseXLSXStream(ctx context.Context, reader io.Reader) (*model.Dataset, error) {
	xlsxFile, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, fmt.Errorf("%w: no sheets found in XLSX file", ErrEmptyData)
	}

	sheetName := sheetNames[0]
	iter, err := xlsxFile.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to open rows iterator for sheet %s: %w", sheetName, err)
	}
	defer func() {
		_ = iter.Close() // Ignore close error
	}()

	var (
		header  model.Header
		records []model.Record
		first   = true
		width   int
	)
	for iter.Next() {
		if len(records)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := iter.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row in sheet %s: %w", sheetName, err)
		}

		// Skip leading empty rows
		if first && len(row) == 0 {
			continue
		}
		if first {
			header = model.NewHeader(row)
			width = len(row)
			first = false
			continue
		}
		width = max(width, len(row))
		records = append(records, model.NewRecord(row))
	}

	if first {
		return nil, fmt.Errorf("%w: sheet %s is empty in XLSX file", ErrEmptyData, sheetName)
	}
	for len(header) < width {
		header = append(header, "")
	}
	return model.NewDataset(p.tableName, header, records)
}

// parseParquetStream parses Parquet data through Arrow. Column types come
// from the Parquet schema instead of inference.
func (p *streamingParser) parseParquetStream(ctx context.Context, reader io.Reader) (*model.Dataset, error) {
	// Read all data into memory (Parquet requires random access)
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty parquet file", ErrEmptyData)
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	defer table.Release()

	schema := table.Schema()
	names := make(model.Header, schema.NumFields())
	for i, field := range schema.Fields() {
		names[i] = field.Name
	}
	names = names.Normalize()

	columns := make([]model.Column, len(names))
	for i, field := range schema.Fields() {
		columns[i] = model.Column{Name: names[i], Type: arrowColumnType(field.Type)}
	}

	tableReader := array.NewTableReader(table, 0)
	defer tableReader.Release()

	rows := make([][]model.Value, 0, table.NumRows())
	for tableReader.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch := tableReader.Record()
		numRows := int(batch.NumRows())
		for i := range numRows {
			row := make([]model.Value, batch.NumCols())
			for j, col := range batch.Columns() {
				row[j] = arrowValue(col, i)
			}
			rows = append(rows, row)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, fmt.Errorf("error reading table records: %w", err)
	}

	return model.NewDatasetFromValues(p.tableName, columns, rows)
}

// arrowColumnType maps an Arrow type to the column type used for the table
func arrowColumnType(dt arrow.DataType) model.ColumnType {
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32:
		return model.ColumnTypeInteger
	case arrow.FLOAT32, arrow.FLOAT64:
		return model.ColumnTypeReal
	case arrow.BOOL:
		return model.ColumnTypeBoolean
	case arrow.DATE32, arrow.DATE64, arrow.TIMESTAMP, arrow.TIME32, arrow.TIME64:
		return model.ColumnTypeDatetime
	default:
		return model.ColumnTypeText
	}
}

// arrowValue extracts row i of an Arrow array as a Value
func arrowValue(col arrow.Array, i int) model.Value {
	if col.IsNull(i) {
		return model.Null()
	}

	switch a := col.(type) {
	case *array.Int8:
		return model.Int(int64(a.Value(i)))
	case *array.Int16:
		return model.Int(int64(a.Value(i)))
	case *array.Int32:
		return model.Int(int64(a.Value(i)))
	case *array.Int64:
		return model.Int(a.Value(i))
	case *array.Uint8:
		return model.Int(int64(a.Value(i)))
	case *array.Uint16:
		return model.Int(int64(a.Value(i)))
	case *array.Uint32:
		return model.Int(int64(a.Value(i)))
	case *array.Uint64:
		return model.Text(strconv.FormatUint(a.Value(i), 10))
	case *array.Float32:
		return model.Float(float64(a.Value(i)))
	case *array.Float64:
		return model.Float(a.Value(i))
	case *array.Boolean:
		return model.Bool(a.Value(i))
	case *array.String:
		return model.Text(a.Value(i))
	case *array.LargeString:
		return model.Text(a.Value(i))
	case *array.Binary:
		return model.Text(string(a.Value(i)))
	default:
		return model.Text(col.ValueStr(i))
	}
}
