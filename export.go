package sqlframe

import (
	"context"
	"database/sql"
	"fmt"
)

// exporter uploads one table into one new database table.
type exporter struct {
	table       *Table
	tableName   string
	database    string
	builder     *statementBuilder
	observer    Observer
	createQuery string
	insertQuery string
	errCtx      *ErrorContext
}

// newExporter validates the inputs and renders both statements up front, so
// nothing touches the database when the table or identifiers are invalid.
func newExporter(t *Table, tableName string, options ExportOptions) (*exporter, error) {
	errCtx := NewErrorContext("export").
		WithDatabase(databaseLabel(options.Database, options.Executor)).
		WithTable(tableName)

	if t == nil {
		return nil, errCtx.Error(ErrInvalidTable, errNilTable)
	}
	if err := t.Header().Validate(); err != nil {
		return nil, errCtx.Error(ErrInvalidTable, err)
	}

	builder := newStatementBuilder(options)
	createQuery, err := builder.buildCreateTableQuery(tableName, t)
	if err != nil {
		return nil, errCtx.Error(nil, err)
	}
	insertQuery, err := builder.buildInsertQuery(tableName, t.Header())
	if err != nil {
		return nil, errCtx.Error(nil, err)
	}

	return &exporter{
		table:       t,
		tableName:   tableName,
		database:    databaseLabel(options.Database, options.Executor),
		builder:     builder,
		observer:    options.Observer,
		createQuery: createQuery,
		insertQuery: insertQuery,
		errCtx:      errCtx,
	}, nil
}

// run creates the table and inserts every row through exec.
func (e *exporter) run(ctx context.Context, exec Executor) error {
	notify(ctx, e.observer, Event{
		Stage:     StageBeforeCreate,
		Database:  e.database,
		Table:     e.tableName,
		Statement: e.createQuery,
		Columns:   e.table.NumColumns(),
	})

	if _, err := exec.ExecContext(ctx, e.createQuery); err != nil {
		return e.createError(ctx, exec, err)
	}

	notify(ctx, e.observer, Event{
		Stage:     StageAfterCreate,
		Database:  e.database,
		Table:     e.tableName,
		Statement: e.createQuery,
		Columns:   e.table.NumColumns(),
	})

	if err := e.insertRows(ctx, exec); err != nil {
		return err
	}

	notify(ctx, e.observer, Event{
		Stage:     StageAfterInsert,
		Database:  e.database,
		Table:     e.tableName,
		Statement: e.insertQuery,
		Columns:   e.table.NumColumns(),
		Rows:      e.table.NumRows(),
	})
	return nil
}

// createError classifies a failed CREATE TABLE. An existing table or view of
// the same name is a schema conflict; anything else is reported as is.
func (e *exporter) createError(ctx context.Context, exec Executor, cause error) error {
	schema, name := e.builder.bareName(e.tableName)
	exists, err := tableExists(ctx, exec, schema, name)
	if err == nil && exists {
		return e.errCtx.Error(ErrSchemaConflict, cause)
	}
	return e.errCtx.WithDetails("create table").Error(ErrQueryExecution, cause)
}

// insertRows prepares the INSERT statement once and executes it per row.
func (e *exporter) insertRows(ctx context.Context, exec Executor) error {
	rows := e.table.Rows()
	if len(rows) == 0 {
		return nil
	}

	stmt, err := exec.PrepareContext(ctx, e.insertQuery)
	if err != nil {
		return e.errCtx.WithDetails("prepare insert").Error(ErrQueryExecution, err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return e.errCtx.WithDetails(fmt.Sprintf("insert row %d", i)).Error(ErrQueryExecution, err)
		}
	}
	return nil
}

// Export creates tableName in the default database and inserts every row of t.
//
// The generated statements are
//
//	CREATE TABLE {tableName} ({c1},{c2},...);
//	INSERT INTO {tableName} ({c1},{c2},...) VALUES (?,?,...);
//
// Values are bound as parameters; table and column names are placed in the
// statement text according to the IdentifierPolicy (verbatim by default).
// Export fails with ErrSchemaConflict when tableName already exists.
//
// Example usage:
//
//	t, err := sqlframe.NewTable([]string{"id", "name"}, [][]any{
//		{1, "Alice"},
//		{2, "Bob"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := sqlframe.Export(t, "users", sqlframe.NewExportOptions().WithDatabase("app.db")); err != nil {
//		log.Fatal(err)
//	}
func Export(t *Table, tableName string, opts ...ExportOptions) error {
	return ExportContext(context.Background(), t, tableName, opts...)
}

// ExportContext is Export with context support.
//
// When no Executor is configured, ExportContext opens the database file,
// runs CREATE TABLE and all inserts in one transaction, commits and closes
// the connection. Any failure rolls the transaction back, leaving the file
// as it was. With an Executor, statements run on the caller's handle and
// commit/close stay with the caller.
func ExportContext(ctx context.Context, t *Table, tableName string, opts ...ExportOptions) error {
	options := NewExportOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	e, err := newExporter(t, tableName, options)
	if err != nil {
		return err
	}

	if options.Executor != nil {
		return e.run(ctx, options.Executor)
	}

	db, err := openDatabase(ctx, options.Database)
	if err != nil {
		return e.errCtx.WithDetails("open database").Error(ErrConnection, err)
	}
	defer db.Close()

	notify(ctx, e.observer, Event{Stage: StageConnected, Database: e.database})

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return e.errCtx.WithDetails("begin transaction").Error(ErrConnection, err)
	}

	if err := e.run(ctx, tx); err != nil {
		_ = tx.Rollback() // Ignore rollback error since we're already returning an error
		return err
	}

	if err := tx.Commit(); err != nil {
		return e.errCtx.WithDetails("commit").Error(ErrConnection, err)
	}
	return nil
}

// compile-time checks
var (
	_ Executor = (*sql.DB)(nil)
	_ Executor = (*sql.Tx)(nil)
	_ Executor = (*sql.Conn)(nil)
)
