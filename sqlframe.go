package sqlframe

import (
	"errors"
	"fmt"

	"github.com/nao1215/sqlframe/domain/model"
)

const (
	// DefaultDatabase is the database file used when none is given
	DefaultDatabase = "default.db"

	// sqliteDriverName is the database/sql driver name registered by modernc.org/sqlite
	sqliteDriverName = "sqlite"
)

var errNilTable = errors.New("table is nil")

// Type aliases for table types from model package
type (
	// Table is an ordered set of uniquely named columns plus ordered rows
	Table = model.Table
	// Header is the ordered list of column names
	Header = model.Header
	// Row is one row of values aligned with the Header
	Row = model.Row
	// ColumnType represents the SQL column type
	ColumnType = model.ColumnType
)

// NewTable builds a Table from column names and row values.
// It fails with ErrInvalidTable when column names are blank or duplicated
// or when a row does not have one value per column.
//
//	t, err := sqlframe.NewTable([]string{"id", "score"}, [][]any{
//		{1, 9.5},
//		{2, nil},
//	})
func NewTable(columns []string, rows [][]any) (*Table, error) {
	data := make([]model.Row, len(rows))
	for i, r := range rows {
		data[i] = model.NewRow(r...)
	}

	t, err := model.NewTable(model.NewHeader(columns), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}
	return t, nil
}
