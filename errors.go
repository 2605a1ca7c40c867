package querydesk

import (
	"errors"
	"fmt"
	"strings"
)

// Standard error messages and error creation functions for consistency
var (
	// ErrLoad wraps every failure to turn a file into a dataset
	ErrLoad = errors.New("querydesk: load failed")

	// ErrEmptyData indicates that the data source contains no header row
	ErrEmptyData = errors.New("querydesk: empty data source")

	// ErrFileNotFound indicates file not found
	ErrFileNotFound = errors.New("querydesk: file not found")

	// ErrPermissionDenied indicates permission denied
	ErrPermissionDenied = errors.New("querydesk: permission denied")

	// ErrNotAFile indicates the path is a directory or another non-regular file
	ErrNotAFile = errors.New("querydesk: not a regular file")

	// ErrNoDataset indicates a query was run before any file was loaded
	ErrNoDataset = errors.New("querydesk: no dataset loaded")

	// ErrEmptyQuery indicates the query text is empty or whitespace
	ErrEmptyQuery = errors.New("querydesk: empty query")

	// ErrQuery indicates the engine rejected or failed to run a query
	ErrQuery = errors.New("querydesk: query failed")
)

// QueryError is returned when the engine fails to execute a query.
// Its message is the raw engine message.
type QueryError struct {
	TableName string
	Err       error
}

// Error returns the engine message
func (e *QueryError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the engine error
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrQuery) true for every QueryError
func (e *QueryError) Is(target error) bool {
	return target == ErrQuery
}

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	FilePath  string
	TableName string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, filePath string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		FilePath:  filePath,
	}
}

// WithTable adds table context to the error
func (ec *ErrorContext) WithTable(tableName string) *ErrorContext {
	ec.TableName = tableName
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Wrap creates an error that matches both sentinel and baseErr with errors.Is.
// The sentinel message leads, followed by the context and the cause.
func (ec *ErrorContext) Wrap(sentinel, baseErr error) error {
	if baseErr == nil {
		return fmt.Errorf("%w%s", sentinel, ec.suffix())
	}
	return fmt.Errorf("%w%s: %w", sentinel, ec.suffix(), baseErr)
}

// suffix renders the non-empty context fields
func (ec *ErrorContext) suffix() string {
	var parts []string
	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
	}
	if ec.TableName != "" {
		parts = append(parts, "table: "+ec.TableName)
	}
	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}
	if len(parts) == 0 {
		return ""
	}
	return ", " + strings.Join(parts, ", ")
}
