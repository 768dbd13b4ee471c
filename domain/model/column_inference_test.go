package model

import (
	"testing"
	"time"
)

func TestInferColumnType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		values   []string
		expected ColumnType
	}{
		{
			name:     "all integers",
			values:   []string{"123", "456", "789"},
			expected: ColumnTypeInteger,
		},
		{
			name:     "mixed integers and floats",
			values:   []string{"123", "45.6", "789"},
			expected: ColumnTypeReal,
		},
		{
			name:     "all floats",
			values:   []string{"12.3", "45.6", "78.9"},
			expected: ColumnTypeReal,
		},
		{
			name:     "mixed numbers and text",
			values:   []string{"123", "hello", "789"},
			expected: ColumnTypeText,
		},
		{
			name:     "all text",
			values:   []string{"hello", "world", "test"},
			expected: ColumnTypeText,
		},
		{
			name:     "empty values",
			values:   []string{"", "", ""},
			expected: ColumnTypeText,
		},
		{
			name:     "integers with empty values",
			values:   []string{"123", "", "789"},
			expected: ColumnTypeInteger,
		},
		{
			name:     "negative integers",
			values:   []string{"-123", "456", "-789"},
			expected: ColumnTypeInteger,
		},
		{
			name:     "negative floats",
			values:   []string{"-12.3", "45.6", "-78.9"},
			expected: ColumnTypeReal,
		},
		{
			name:     "scientific notation",
			values:   []string{"1e10", "2.5e-3", "3.14e2"},
			expected: ColumnTypeReal,
		},
		{
			name:     "zero values",
			values:   []string{"0", "0.0", "000"},
			expected: ColumnTypeReal,
		},
		{
			name:     "dates are text",
			values:   []string{"2023-01-15", "2023-02-20T14:45:30Z", "10:30"},
			expected: ColumnTypeText,
		},
		{
			name:     "leading zeros parse as integers",
			values:   []string{"01234", "00501"},
			expected: ColumnTypeInteger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := InferColumnType(tt.values)
			if result != tt.expected {
				t.Errorf("InferColumnType(%v) = %v, want %v", tt.values, result, tt.expected)
			}
		})
	}
}

func TestInferColumnsInfo(t *testing.T) {
	t.Parallel()

	t.Run("mixed column types", func(t *testing.T) {
		t.Parallel()

		header := NewHeader([]string{"id", "name", "score", "note", "payload"})
		rows := []Row{
			NewRow(int64(1), "Alice", 9.5, nil, []byte{0x01}),
			NewRow(2, "Bob", 7, nil, nil),
		}

		result := InferColumnsInfo(header, rows)

		expected := []ColumnInfo{
			{Name: "id", Type: ColumnTypeInteger},
			{Name: "name", Type: ColumnTypeText},
			{Name: "score", Type: ColumnTypeReal},
			{Name: "note", Type: ColumnTypeText},
			{Name: "payload", Type: ColumnTypeBlob},
		}

		if len(result) != len(expected) {
			t.Fatalf("Expected %d columns, got %d", len(expected), len(result))
		}
		for i, exp := range expected {
			if result[i] != exp {
				t.Errorf("Column %d: expected %+v, got %+v", i, exp, result[i])
			}
		}
	})

	t.Run("empty rows", func(t *testing.T) {
		t.Parallel()

		result := InferColumnsInfo(NewHeader([]string{"col1", "col2"}), nil)

		if len(result) != 2 {
			t.Fatalf("Expected 2 columns, got %d", len(result))
		}
		for i, col := range result {
			if col.Type != ColumnTypeText {
				t.Errorf("Column %d: expected TEXT type for empty rows, got %s", i, col.Type)
			}
		}
	})

	t.Run("no header", func(t *testing.T) {
		t.Parallel()

		if result := InferColumnsInfo(nil, nil); result != nil {
			t.Errorf("expected nil, got %v", result)
		}
	})
}

func TestInferValueType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		values   []any
		expected ColumnType
	}{
		{"all nil", []any{nil, nil}, ColumnTypeText},
		{"ints of several kinds", []any{1, int32(2), uint8(3), int64(4)}, ColumnTypeInteger},
		{"ints and floats", []any{1, 2.5}, ColumnTypeReal},
		{"bools", []any{true, false}, ColumnTypeInteger},
		{"numeric strings stay text", []any{"1", "2"}, ColumnTypeText},
		{"zero padded strings stay text", []any{"01234", nil}, ColumnTypeText},
		{"decimal strings stay text", []any{"2.00"}, ColumnTypeText},
		{"ints and text", []any{1, "hello"}, ColumnTypeText},
		{"blob wins", []any{"x", []byte("y")}, ColumnTypeBlob},
		{"times", []any{time.Unix(0, 0), nil}, ColumnTypeText},
		{"times and ints", []any{time.Unix(0, 0), 1}, ColumnTypeText},
		{"unknown kind", []any{struct{}{}}, ColumnTypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := InferValueType(tt.values); got != tt.expected {
				t.Errorf("InferValueType(%v) = %v, want %v", tt.values, got, tt.expected)
			}
		})
	}
}

func TestInferStringColumns(t *testing.T) {
	t.Parallel()

	header := NewHeader([]string{"id", "name", "age", "salary", "hire_date"})
	records := [][]string{
		{"1", "Alice", "30", "95000.5", "2023-01-15"},
		{"2", "Bob", "", "78000", "2023-02-20"},
	}

	result := InferStringColumns(header, records)

	expected := []ColumnInfo{
		{Name: "id", Type: ColumnTypeInteger},
		{Name: "name", Type: ColumnTypeText},
		{Name: "age", Type: ColumnTypeInteger},
		{Name: "salary", Type: ColumnTypeReal},
		{Name: "hire_date", Type: ColumnTypeText},
	}
	for i, exp := range expected {
		if result[i] != exp {
			t.Errorf("Column %d: expected %+v, got %+v", i, exp, result[i])
		}
	}
}

func TestConvertCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		ct       ColumnType
		expected any
	}{
		{"integer", "42", ColumnTypeInteger, int64(42)},
		{"integer with spaces", " 42 ", ColumnTypeInteger, int64(42)},
		{"real", "2.5", ColumnTypeReal, 2.5},
		{"real from integer text", "3", ColumnTypeReal, float64(3)},
		{"blank is nil", "  ", ColumnTypeText, nil},
		{"text kept verbatim", " hi ", ColumnTypeText, " hi "},
		{"date kept as text", "2023-01-15", ColumnTypeText, "2023-01-15"},
		{"unparsable integer kept as text", "x", ColumnTypeInteger, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ConvertCell(tt.value, tt.ct)
			if !ValueEqual(got, tt.expected) {
				t.Errorf("ConvertCell(%q, %v) = %#v, want %#v", tt.value, tt.ct, got, tt.expected)
			}
		})
	}
}

func TestFormatCell(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"bytes", []byte("abc"), "abc"},
		{"int", 7, "7"},
		{"uint16", uint16(7), "7"},
		{"float", 2.5, "2.5"},
		{"float32", float32(0.25), "0.25"},
		{"bool", true, "true"},
		{"time", ts, "2024-05-01T12:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatCell(tt.value); got != tt.expected {
				t.Errorf("FormatCell(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}
