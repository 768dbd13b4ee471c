// Package model provides domain model for sqlframe
package model

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Header is the ordered list of column names of a table.
type Header []string

// NewHeader create new Header.
func NewHeader(h []string) Header {
	return Header(h)
}

// Equal compare Header.
func (h Header) Equal(h2 Header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Validate checks for empty headers and duplicate column names.
// Column name comparison is case-sensitive after trimming whitespace.
func (h Header) Validate() error {
	if len(h) == 0 {
		return ErrNoColumns
	}
	seen := make(map[string]bool, len(h))
	for _, col := range h {
		trimmed := strings.TrimSpace(col)
		if trimmed == "" {
			return ErrEmptyColumnName
		}
		if seen[trimmed] {
			return fmt.Errorf("%w: %s", ErrDuplicateColumnName, col)
		}
		seen[trimmed] = true
	}
	return nil
}

// Row is one table row. Values are aligned positionally with the Header.
type Row []any

// NewRow create new Row.
func NewRow(values ...any) Row {
	return Row(values)
}

// Equal compare Row. Numeric values of different Go types compare by value,
// so int(1) equals int64(1) and float32(0.5) equals float64(0.5).
func (r Row) Equal(r2 Row) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if !ValueEqual(v, r2[i]) {
			return false
		}
	}
	return true
}

// ValueEqual reports whether two scalar values are equal.
func ValueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if ai, ok := AsInt64(a); ok {
		if bi, ok := AsInt64(b); ok {
			return ai == bi
		}
	}
	if af, ok := AsFloat64(a); ok {
		if bf, ok := AsFloat64(b); ok {
			return af == bf
		}
	}

	switch av := a.(type) {
	case []byte:
		bv, ok := b.([]byte)
		return ok && bytes.Equal(av, bv)
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	}
	return reflect.DeepEqual(a, b)
}

// AsInt64 converts any Go integer kind to int64.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true //nolint:gosec // sqlite integers are 64-bit signed
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true //nolint:gosec // sqlite integers are 64-bit signed
	default:
		return 0, false
	}
}

// AsFloat64 converts any Go numeric kind to float64.
func AsFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	if i, ok := AsInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

// ColumnType represents the SQL column type
type ColumnType int

const (
	// ColumnTypeText represents TEXT column type
	ColumnTypeText ColumnType = iota
	// ColumnTypeInteger represents INTEGER column type
	ColumnTypeInteger
	// ColumnTypeReal represents REAL column type
	ColumnTypeReal
	// ColumnTypeBlob represents BLOB column type
	ColumnTypeBlob
)

const (
	sqlTypeText    = "TEXT"
	sqlTypeInteger = "INTEGER"
	sqlTypeReal    = "REAL"
	sqlTypeBlob    = "BLOB"
)

// String returns the SQL column type string
func (ct ColumnType) String() string {
	switch ct {
	case ColumnTypeText:
		return sqlTypeText
	case ColumnTypeInteger:
		return sqlTypeInteger
	case ColumnTypeReal:
		return sqlTypeReal
	case ColumnTypeBlob:
		return sqlTypeBlob
	default:
		return sqlTypeText
	}
}

// ColumnInfo represents column information with name and inferred type
type ColumnInfo struct {
	Name string
	Type ColumnType
}
