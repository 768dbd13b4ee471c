package sqlframe

import (
	"context"
	"database/sql"

	"github.com/nao1215/sqlframe/domain/model"
)

// Import runs query against the default database and returns the complete
// result set as a Table whose header is taken from the result metadata.
//
// The query is executed verbatim: no parameters, no validation. The whole
// result is read into memory.
//
// Example usage:
//
//	t, err := sqlframe.Import("SELECT name, age FROM users WHERE age > 25",
//		sqlframe.NewImportOptions().WithDatabase("app.db"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(t.Header(), t.NumRows())
func Import(query string, opts ...ImportOptions) (*Table, error) {
	return ImportContext(context.Background(), query, opts...)
}

// ImportContext is Import with context support.
func ImportContext(ctx context.Context, query string, opts ...ImportOptions) (*Table, error) {
	options := NewImportOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	database := databaseLabel(options.Database, options.Executor)
	errCtx := NewErrorContext("import").WithDatabase(database)

	exec := options.Executor
	if exec == nil {
		db, err := openDatabase(ctx, options.Database)
		if err != nil {
			return nil, errCtx.WithDetails("open database").Error(ErrConnection, err)
		}
		defer db.Close()
		exec = db

		notify(ctx, options.Observer, Event{Stage: StageConnected, Database: database})
	}

	notify(ctx, options.Observer, Event{Stage: StageBeforeQuery, Database: database, Statement: query})

	table, err := queryTable(ctx, exec, query)
	if err != nil {
		return nil, errCtx.Error(ErrQueryExecution, err)
	}

	notify(ctx, options.Observer, Event{
		Stage:     StageAfterQuery,
		Database:  database,
		Statement: query,
		Columns:   table.NumColumns(),
		Rows:      table.NumRows(),
	})
	return table, nil
}

// queryTable executes query and materializes every row.
func queryTable(ctx context.Context, exec Executor, query string) (*Table, error) {
	rows, err := exec.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var data []model.Row
	for rows.Next() {
		row, err := scanRow(rows, len(columns))
		if err != nil {
			return nil, err
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return model.NewResultTable(model.NewHeader(columns), data)
}

// scanRow scans the current row into driver-native values. []byte values
// are copied because the driver may reuse the buffer on the next call.
func scanRow(rows *sql.Rows, columnCount int) (model.Row, error) {
	values := make([]any, columnCount)
	ptrs := make([]any, columnCount)
	for i := range values {
		ptrs[i] = &values[i]
	}

	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	for i, v := range values {
		if b, ok := v.([]byte); ok {
			values[i] = append([]byte(nil), b...)
		}
	}
	return model.Row(values), nil
}
