package sqlframe

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchemaConflict indicates the destination table already exists
	ErrSchemaConflict = errors.New("sqlframe: table already exists")

	// ErrQueryExecution indicates the database engine rejected or failed to run a query
	ErrQueryExecution = errors.New("sqlframe: query execution failed")

	// ErrConnection indicates the database file could not be opened or written
	ErrConnection = errors.New("sqlframe: database connection failed")

	// ErrInvalidTable indicates a nil or malformed table
	ErrInvalidTable = errors.New("sqlframe: invalid table")

	// ErrInvalidIdentifier indicates a table or column name rejected by IdentifierStrict
	ErrInvalidIdentifier = errors.New("sqlframe: invalid identifier")

	// ErrUnsupportedFormat indicates an unsupported table file format
	ErrUnsupportedFormat = errors.New("sqlframe: unsupported file format")

	// ErrEmptyData indicates that a table file contains no header row
	ErrEmptyData = errors.New("sqlframe: empty data source")
)

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	Database  string
	TableName string
	FilePath  string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
	}
}

// WithDatabase adds database context to the error
func (ec *ErrorContext) WithDatabase(database string) *ErrorContext {
	ec.Database = database
	return ec
}

// WithTable adds table context to the error
func (ec *ErrorContext) WithTable(tableName string) *ErrorContext {
	ec.TableName = tableName
	return ec
}

// WithFile adds file context to the error
func (ec *ErrorContext) WithFile(filePath string) *ErrorContext {
	ec.FilePath = filePath
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context. The result wraps kind and
// cause so both errors.Is(err, kind) and errors.As on the engine error work.
func (ec *ErrorContext) Error(kind, cause error) error {
	var parts []string
	parts = append(parts, ec.Operation+" failed")

	if ec.Database != "" {
		parts = append(parts, "database: "+ec.Database)
	}
	if ec.TableName != "" {
		parts = append(parts, "table: "+ec.TableName)
	}
	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
	}
	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	switch {
	case kind != nil && cause != nil:
		return fmt.Errorf("%w: %s: %w", kind, context, cause)
	case kind != nil:
		return fmt.Errorf("%w: %s", kind, context)
	case cause != nil:
		return fmt.Errorf("sqlframe: %s: %w", context, cause)
	default:
		return fmt.Errorf("sqlframe: %s", context)
	}
}
