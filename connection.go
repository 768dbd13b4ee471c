package sqlframe

import (
	"context"
	"database/sql"
	"strings"

	// registers the "sqlite" database/sql driver
	_ "modernc.org/sqlite"
)

// Executor is the subset of database/sql used by Export and Import.
// *sql.DB, *sql.Tx and *sql.Conn all satisfy it.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// openDatabase opens path with the SQLite driver and verifies the file can
// be opened (and created if missing). The returned handle holds a single
// connection and must be closed by the caller.
func openDatabase(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = DefaultDatabase
	}

	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close() // Ignore close error since we're already returning an error
		return nil, err
	}
	return db, nil
}

// tableExists reports whether a table or view named name exists in schema,
// or in the main schema when schema is empty. SQLite object names are
// case-insensitive.
func tableExists(ctx context.Context, exec Executor, schema, name string) (bool, error) {
	master := "sqlite_master"
	if schema != "" {
		master = `"` + strings.ReplaceAll(schema, `"`, `""`) + `".sqlite_master`
	}
	rows, err := exec.QueryContext(ctx,
		"SELECT count(*) FROM "+master+" WHERE type IN ('table','view') AND name = ? COLLATE NOCASE",
		name)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return false, err
		}
	}
	if err := rows.Err(); err != nil {
		return false, err
	}
	return count > 0, nil
}
