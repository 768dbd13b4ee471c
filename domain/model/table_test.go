package model

import (
	"errors"
	"testing"
)

func TestNewTable(t *testing.T) {
	t.Parallel()

	t.Run("valid table", func(t *testing.T) {
		t.Parallel()

		header := NewHeader([]string{"col1", "col2"})
		rows := []Row{
			NewRow("val1", 1),
			NewRow("val3", nil),
		}

		table, err := NewTable(header, rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !table.Header().Equal(header) {
			t.Errorf("expected header %v, got %v", header, table.Header())
		}
		if table.NumRows() != 2 {
			t.Errorf("expected 2 rows, got %d", table.NumRows())
		}
		if table.NumColumns() != 2 {
			t.Errorf("expected 2 columns, got %d", table.NumColumns())
		}
		if !table.Rows()[0].Equal(rows[0]) {
			t.Errorf("expected first row %v, got %v", rows[0], table.Rows()[0])
		}
	})

	t.Run("nil rows become empty", func(t *testing.T) {
		t.Parallel()

		table, err := NewTable(NewHeader([]string{"a"}), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.Rows() == nil || table.NumRows() != 0 {
			t.Errorf("expected empty non-nil rows, got %v", table.Rows())
		}
	})

	t.Run("ragged row", func(t *testing.T) {
		t.Parallel()

		_, err := NewTable(NewHeader([]string{"a", "b"}), []Row{NewRow(1)})
		if !errors.Is(err, ErrRowWidth) {
			t.Errorf("expected ErrRowWidth, got %v", err)
		}
	})

	t.Run("duplicate column", func(t *testing.T) {
		t.Parallel()

		_, err := NewTable(NewHeader([]string{"a", "a"}), nil)
		if !errors.Is(err, ErrDuplicateColumnName) {
			t.Errorf("expected ErrDuplicateColumnName, got %v", err)
		}
	})
}

func TestTable_Column(t *testing.T) {
	t.Parallel()

	table, err := NewTable(NewHeader([]string{"a", "b"}), []Row{NewRow(1, "x"), NewRow(2, "y")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values, ok := table.Column("b")
	if !ok {
		t.Fatal("expected column b to exist")
	}
	if !Row(values).Equal(NewRow("x", "y")) {
		t.Errorf("unexpected column values: %v", values)
	}

	if _, ok := table.Column("missing"); ok {
		t.Error("expected missing column to be reported")
	}
}

func TestTable_Equal(t *testing.T) {
	t.Parallel()

	header := NewHeader([]string{"col1", "col2"})
	rows := []Row{NewRow("val1", 1), NewRow("val3", 2.5)}

	table1, _ := NewTable(header, rows)
	table2, _ := NewTable(header, []Row{NewRow("val1", int64(1)), NewRow("val3", 2.5)})
	table3, _ := NewTable(NewHeader([]string{"col1", "col3"}), rows)
	table4, _ := NewTable(header, rows[:1])

	if !table1.Equal(table2) {
		t.Error("expected tables to be equal")
	}
	if table1.Equal(table3) {
		t.Error("expected tables with different headers to be not equal")
	}
	if table1.Equal(table4) {
		t.Error("expected tables with different row counts to be not equal")
	}
	if table1.Equal(nil) {
		t.Error("expected table not to equal nil")
	}
}

func TestTable_ColumnInfo(t *testing.T) {
	t.Parallel()

	table, _ := NewTable(NewHeader([]string{"n", "s"}), []Row{NewRow(1, "a")})
	info := table.ColumnInfo()

	if info[0].Type != ColumnTypeInteger || info[1].Type != ColumnTypeText {
		t.Errorf("unexpected column info: %+v", info)
	}
}

func TestNewResultTable(t *testing.T) {
	t.Parallel()

	t.Run("duplicate labels allowed", func(t *testing.T) {
		t.Parallel()

		table, err := NewResultTable(NewHeader([]string{"a", "a"}), []Row{NewRow(1, 2)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		values, _ := table.Column("a")
		if !Row(values).Equal(NewRow(1)) {
			t.Errorf("expected first matching column, got %v", values)
		}
	})

	t.Run("zero columns", func(t *testing.T) {
		t.Parallel()

		table, err := NewResultTable(nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.NumColumns() != 0 || table.NumRows() != 0 {
			t.Errorf("expected empty table, got %d columns %d rows", table.NumColumns(), table.NumRows())
		}
	})

	t.Run("ragged row", func(t *testing.T) {
		t.Parallel()

		_, err := NewResultTable(NewHeader([]string{"a"}), []Row{NewRow(1, 2)})
		if !errors.Is(err, ErrRowWidth) {
			t.Errorf("expected ErrRowWidth, got %v", err)
		}
	})
}
