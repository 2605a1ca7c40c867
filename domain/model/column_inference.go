package model

import (
	"strconv"
	"strings"
	"time"
)

// datetimeLayouts are the layouts a cell may use to count as a datetime.
// Fractional seconds are optional in every layout that has seconds.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"1/2/2006",
	"2.1.2006 15:04:05",
	"2.1.2006",
	"15:04:05.999999999",
	"15:04",
}

// isDatetime checks if a string value represents a datetime
func isDatetime(value string) bool {
	if value == "" || value[0] < '0' || value[0] > '9' {
		return false
	}
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

// cellKind is a bit set of the non-text kinds seen in a column
type cellKind uint8

const (
	kindInteger cellKind = 1 << iota
	kindReal
	kindBoolean
	kindDatetime
)

// classifyCell returns the kind of a trimmed, non-empty cell. ok is false
// for text.
func classifyCell(value string) (kind cellKind, ok bool) {
	switch {
	case isDatetime(value):
		return kindDatetime, true
	case strings.EqualFold(value, "true"), strings.EqualFold(value, "false"):
		return kindBoolean, true
	}
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return kindInteger, true
	}
	// ParseFloat accepts "Inf" and "NaN"; a number needs a digit.
	if strings.ContainsAny(value, "0123456789") {
		if _, err := strconv.ParseFloat(value, 64); err == nil {
			return kindReal, true
		}
	}
	return 0, false
}

// InferColumnType infers the column type from a slice of string values.
// Every non-empty value must conform to the chosen type, so the values can
// be converted without loss: booleans and datetimes never mix with other
// kinds, integers widen to real.
func InferColumnType(values []string) ColumnType {
	var seen cellKind
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		kind, ok := classifyCell(value)
		if !ok {
			return ColumnTypeText
		}
		seen |= kind
	}

	switch {
	case seen == kindBoolean:
		return ColumnTypeBoolean
	case seen == kindDatetime:
		return ColumnTypeDatetime
	case seen&(kindBoolean|kindDatetime) != 0:
		return ColumnTypeText
	case seen&kindReal != 0:
		return ColumnTypeReal
	case seen == kindInteger:
		return ColumnTypeInteger
	default:
		return ColumnTypeText
	}
}

// InferColumns infers column information from header and data records
func InferColumns(header Header, records []Record) []Column {
	columns := make([]Column, len(header))
	for i, name := range header {
		values := make([]string, 0, len(records))
		for _, record := range records {
			if i < len(record) {
				values = append(values, record[i])
			}
		}
		columns[i] = Column{Name: name, Type: InferColumnType(values)}
	}
	return columns
}

// ConvertCell converts a raw cell into a Value of the column type. Empty
// cells are null. Callers pass cells that InferColumnType accepted; a cell
// that does not parse falls back to text.
func ConvertCell(raw string, columnType ColumnType) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Null()
	}

	switch columnType {
	case ColumnTypeInteger:
		if v, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return Int(v)
		}
	case ColumnTypeReal:
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return Float(v)
		}
	case ColumnTypeBoolean:
		return Bool(strings.EqualFold(trimmed, "true"))
	}
	return Text(raw)
}
