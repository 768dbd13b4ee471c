package sqlframe

import "strings"

// SchemaMode selects how CREATE TABLE declares column types
type SchemaMode int

const (
	// SchemaUntyped emits bare column names and leaves typing to SQLite's
	// dynamic typing. This is the default.
	SchemaUntyped SchemaMode = iota
	// SchemaInferred annotates every column with the SQLite type inferred
	// from the table's values (INTEGER, REAL, TEXT or BLOB).
	SchemaInferred
)

// String returns the string representation of SchemaMode
func (m SchemaMode) String() string {
	switch m {
	case SchemaUntyped:
		return "untyped"
	case SchemaInferred:
		return "inferred"
	default:
		return "untyped"
	}
}

// ParseSchemaMode parses "untyped" or "inferred". The second result is false
// for unknown names.
func ParseSchemaMode(s string) (SchemaMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "untyped":
		return SchemaUntyped, true
	case "inferred", "typed":
		return SchemaInferred, true
	default:
		return SchemaUntyped, false
	}
}

// IdentifierPolicy controls how table and column names reach statement text
type IdentifierPolicy int

const (
	// IdentifierVerbatim splices names into statements unchanged. Callers
	// must supply trusted identifiers. This is the default.
	IdentifierVerbatim IdentifierPolicy = iota
	// IdentifierQuoted wraps every name in double quotes, doubling any
	// embedded quote characters.
	IdentifierQuoted
	// IdentifierStrict rejects names that are not plain
	// [A-Za-z_][A-Za-z0-9_]* identifiers, then splices them unchanged.
	IdentifierStrict
)

// String returns the string representation of IdentifierPolicy
func (p IdentifierPolicy) String() string {
	switch p {
	case IdentifierVerbatim:
		return "verbatim"
	case IdentifierQuoted:
		return "quoted"
	case IdentifierStrict:
		return "strict"
	default:
		return "verbatim"
	}
}

// ParseIdentifierPolicy parses "verbatim", "quoted" or "strict". The second
// result is false for unknown names.
func ParseIdentifierPolicy(s string) (IdentifierPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "verbatim":
		return IdentifierVerbatim, true
	case "quoted":
		return IdentifierQuoted, true
	case "strict":
		return IdentifierStrict, true
	default:
		return IdentifierVerbatim, false
	}
}

// ExportOptions configures Export.
//
// Example:
//
//	options := NewExportOptions().
//		WithDatabase("sales.db").
//		WithSchemaMode(SchemaInferred)
//
//	err := Export(table, "sales", options)
type ExportOptions struct {
	// Database is the SQLite file to write to. Ignored when Executor is set.
	Database string
	// Executor, when set, is used instead of opening Database. The caller
	// owns it: Export neither commits nor closes it.
	Executor Executor
	// Schema selects untyped or inferred column declarations
	Schema SchemaMode
	// Identifiers selects how names are placed in statements
	Identifiers IdentifierPolicy
	// Observer receives lifecycle events. nil means no events.
	Observer Observer
}

// NewExportOptions creates default export options: DefaultDatabase,
// untyped schema, verbatim identifiers, no observer.
func NewExportOptions() ExportOptions {
	return ExportOptions{
		Database:    DefaultDatabase,
		Schema:      SchemaUntyped,
		Identifiers: IdentifierVerbatim,
	}
}

// WithDatabase sets the SQLite database file.
func (o ExportOptions) WithDatabase(path string) ExportOptions {
	o.Database = path
	return o
}

// WithExecutor routes all statements through a caller-owned handle such as
// *sql.DB, *sql.Tx or *sql.Conn. Use a *sql.Tx to batch several exports in
// one transaction.
func (o ExportOptions) WithExecutor(exec Executor) ExportOptions {
	o.Executor = exec
	return o
}

// WithSchemaMode sets how column types are declared.
func (o ExportOptions) WithSchemaMode(mode SchemaMode) ExportOptions {
	o.Schema = mode
	return o
}

// WithIdentifierPolicy sets how identifiers are placed in statements.
func (o ExportOptions) WithIdentifierPolicy(policy IdentifierPolicy) ExportOptions {
	o.Identifiers = policy
	return o
}

// WithObserver sets the lifecycle observer.
func (o ExportOptions) WithObserver(observer Observer) ExportOptions {
	o.Observer = observer
	return o
}

// ImportOptions configures Import.
type ImportOptions struct {
	// Database is the SQLite file to query. Ignored when Executor is set.
	Database string
	// Executor, when set, is used instead of opening Database. The caller owns it.
	Executor Executor
	// Observer receives lifecycle events. nil means no events.
	Observer Observer
}

// NewImportOptions creates default import options: DefaultDatabase, no observer.
func NewImportOptions() ImportOptions {
	return ImportOptions{
		Database: DefaultDatabase,
	}
}

// WithDatabase sets the SQLite database file.
func (o ImportOptions) WithDatabase(path string) ImportOptions {
	o.Database = path
	return o
}

// WithExecutor routes the query through a caller-owned handle.
func (o ImportOptions) WithExecutor(exec Executor) ImportOptions {
	o.Executor = exec
	return o
}

// WithObserver sets the lifecycle observer.
func (o ImportOptions) WithObserver(observer Observer) ImportOptions {
	o.Observer = observer
	return o
}

// databaseLabel names the target for errors and events.
func databaseLabel(database string, exec Executor) string {
	if exec != nil {
		return "(external)"
	}
	if database == "" {
		return DefaultDatabase
	}
	return database
}
