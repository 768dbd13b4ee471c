package model

import "fmt"

// Table is an ordered set of uniquely named columns plus ordered rows.
type Table struct {
	header Header
	rows   []Row
}

// NewTable creates a Table after checking that the header is valid and
// that every row carries exactly one value per column.
func NewTable(header Header, rows []Row) (*Table, error) {
	if err := header.Validate(); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRowWidth, i, len(row), len(header))
		}
	}
	if rows == nil {
		rows = []Row{}
	}
	return &Table{
		header: header,
		rows:   rows,
	}, nil
}

// Header return table header.
func (t *Table) Header() Header {
	return t.header
}

// Rows return table rows.
func (t *Table) Rows() []Row {
	return t.rows
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.header)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Column returns the values of the named column, or false if no such column exists.
func (t *Table) Column(name string) ([]any, bool) {
	idx := -1
	for i, col := range t.header {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	values := make([]any, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[idx]
	}
	return values, true
}

// ColumnInfo returns column information with inferred types
func (t *Table) ColumnInfo() []ColumnInfo {
	return InferColumnsInfo(t.header, t.rows)
}

// Equal compare Table.
func (t *Table) Equal(t2 *Table) bool {
	if t2 == nil {
		return false
	}
	if !t.header.Equal(t2.header) {
		return false
	}
	if len(t.rows) != len(t2.rows) {
		return false
	}
	for i, row := range t.rows {
		if !row.Equal(t2.rows[i]) {
			return false
		}
	}
	return true
}

// NewResultTable creates a Table from query result metadata. Unlike NewTable
// it accepts duplicate or blank labels and zero columns, since SQL allows
// `SELECT a, a` and statements that return no columns. Row widths are still checked.
func NewResultTable(header Header, rows []Row) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRowWidth, i, len(row), len(header))
		}
	}
	if header == nil {
		header = Header{}
	}
	if rows == nil {
		rows = []Row{}
	}
	return &Table{
		header: header,
		rows:   rows,
	}, nil
}
