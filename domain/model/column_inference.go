package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InferColumnType infers the SQL column type from a slice of string values
func InferColumnType(values []string) ColumnType {
	if len(values) == 0 {
		return ColumnTypeText
	}

	hasReal := false
	hasInteger := false
	hasText := false

	for _, value := range values {
		// Skip empty values for type inference
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		// Try to parse as integer
		if _, err := strconv.ParseInt(value, 10, 64); err == nil {
			hasInteger = true
			continue
		}

		// Try to parse as float
		if _, err := strconv.ParseFloat(value, 64); err == nil {
			hasReal = true
			continue
		}

		// If it's not a number, it's text
		hasText = true
		break // If any value is text, the whole column is text
	}

	// Determine the most appropriate type
	// Priority: TEXT > REAL > INTEGER
	if hasText {
		return ColumnTypeText
	}
	if hasReal {
		return ColumnTypeReal
	}
	if hasInteger {
		return ColumnTypeInteger
	}

	// Default to TEXT if no values were found
	return ColumnTypeText
}

// InferValueType infers the SQL column type from already-typed values.
// nil values are ignored. Strings are TEXT whatever they contain, so values
// such as "01234" are stored unchanged.
func InferValueType(values []any) ColumnType {
	hasInteger := false
	hasReal := false
	hasText := false
	hasBlob := false

	for _, v := range values {
		switch v.(type) {
		case nil:
			continue
		case bool:
			hasInteger = true
		case float32, float64:
			hasReal = true
		case []byte:
			hasBlob = true
		case string, time.Time:
			hasText = true
		default:
			if _, ok := AsInt64(v); ok {
				hasInteger = true
				continue
			}
			hasText = true
		}
	}

	// Priority: BLOB > TEXT > REAL > INTEGER
	switch {
	case hasBlob:
		return ColumnTypeBlob
	case hasText:
		return ColumnTypeText
	case hasReal:
		return ColumnTypeReal
	case hasInteger:
		return ColumnTypeInteger
	default:
		return ColumnTypeText
	}
}

// InferColumnsInfo infers column information from header and rows
func InferColumnsInfo(header Header, rows []Row) []ColumnInfo {
	columnCount := len(header)
	if columnCount == 0 {
		return nil
	}

	columns := make([]ColumnInfo, columnCount)
	for i, name := range header {
		columns[i] = ColumnInfo{
			Name: name,
			Type: ColumnTypeText,
		}
	}

	if len(rows) == 0 {
		return columns
	}

	for i := range columnCount {
		values := make([]any, 0, len(rows))
		for _, row := range rows {
			if i < len(row) {
				values = append(values, row[i])
			}
		}
		columns[i].Type = InferValueType(values)
	}

	return columns
}

// InferStringColumns infers column types from raw string cells as read from
// text files and spreadsheets.
func InferStringColumns(header Header, records [][]string) []ColumnInfo {
	columns := make([]ColumnInfo, len(header))
	for i, name := range header {
		var values []string
		for _, record := range records {
			if i < len(record) {
				values = append(values, record[i])
			}
		}
		columns[i] = ColumnInfo{Name: name, Type: InferColumnType(values)}
	}
	return columns
}

// ConvertCell converts a raw string cell into a typed value for the given
// column type. Blank cells become nil.
func ConvertCell(value string, ct ColumnType) any {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}

	switch ct {
	case ColumnTypeInteger:
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
	case ColumnTypeReal:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	}
	return value
}

// FormatCell renders a value as a text cell. nil becomes the empty string.
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	if n, ok := AsInt64(v); ok {
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprint(v)
}
