// Package sqlframe moves tabular data between an in-memory Table and an
// embedded SQLite database file.
//
// Two operations make up the core:
//
//   - Export creates a new database table from a Table and inserts every row.
//   - Import runs a query and returns the whole result as a Table whose
//     column labels come from the result metadata.
//
// Each call opens its own connection to the named database file (default
// "default.db"), does one unit of work and closes the connection. No state
// is shared between calls.
//
// # Basic Usage
//
//	t, err := sqlframe.NewTable([]string{"id", "name"}, [][]any{
//	    {1, "Alice"},
//	    {2, "Bob"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := sqlframe.Export(t, "users"); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := sqlframe.Import("SELECT name, id FROM users")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Header()) // [name id]
//
// # Generated Statements
//
// Export emits exactly
//
//	CREATE TABLE {table} ({c1},{c2},...);
//	INSERT INTO {table} ({c1},{c2},...) VALUES (?,?,...);
//
// Column types are omitted so SQLite's dynamic typing stores every value as
// given. SchemaInferred adds INTEGER, REAL, TEXT or BLOB declarations
// inferred from the data instead.
//
// # Identifiers
//
// Row values are always bound as parameters. Table and column names are
// placed in the statement text verbatim by default, so callers must only
// pass trusted names. IdentifierQuoted and IdentifierStrict change that
// explicitly.
//
// # Transactions
//
// By default each Export runs in its own transaction on its own connection.
// To batch several exports atomically, pass a caller-owned *sql.Tx through
// ExportOptions.WithExecutor and commit it yourself.
//
// # Observability
//
// Nothing here touches global logging. Pass an Observer (for example
// NewLogObserver(slog.Default())) to receive events before and after table
// creation and after the rows are inserted.
//
// # Table Files
//
// LoadFile and SaveFile read and write CSV, TSV, LTSV, Parquet and Excel
// (XLSX) files, optionally compressed with gzip, bzip2 (read only), xz or
// zstandard, so tables can travel between files and databases.
//
// For SQLite's SQL dialect, see: https://www.sqlite.org/lang.html
package sqlframe
