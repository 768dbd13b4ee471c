package sqlframe

import (
	"fmt"
	"strings"

	"github.com/nao1215/sqlframe/domain/model"
)

// Character validation constants
const (
	firstDigitChar = '0'
	lastDigitChar  = '9'
	firstLowerChar = 'a'
	lastLowerChar  = 'z'
	firstUpperChar = 'A'
	lastUpperChar  = 'Z'
	underscoreChar = '_'
)

// statementBuilder renders the CREATE TABLE and INSERT statements for one export.
type statementBuilder struct {
	policy IdentifierPolicy
	schema SchemaMode
}

// newStatementBuilder creates a statementBuilder for the given options.
func newStatementBuilder(opts ExportOptions) *statementBuilder {
	return &statementBuilder{
		policy: opts.Identifiers,
		schema: opts.Schema,
	}
}

// identifier renders a single table or column name according to the policy.
func (b *statementBuilder) identifier(name string) (string, error) {
	switch b.policy {
	case IdentifierQuoted:
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`, nil
	case IdentifierStrict:
		if !isPlainIdentifier(name) {
			return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
		return name, nil
	default:
		return name, nil
	}
}

// columnList renders the comma separated column list, without spaces.
func (b *statementBuilder) columnList(header model.Header) (string, error) {
	cols := make([]string, 0, len(header))
	for _, col := range header {
		ident, err := b.identifier(col)
		if err != nil {
			return "", err
		}
		cols = append(cols, ident)
	}
	return strings.Join(cols, ","), nil
}

// buildCreateTableQuery constructs the CREATE TABLE statement.
//
//	CREATE TABLE {table} ({c1},{c2},...);
//
// With SchemaInferred each column carries its inferred SQLite type.
func (b *statementBuilder) buildCreateTableQuery(tableName string, t *model.Table) (string, error) {
	table, err := b.identifier(tableName)
	if err != nil {
		return "", err
	}

	if b.schema != SchemaInferred {
		cols, err := b.columnList(t.Header())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("CREATE TABLE %s (%s);", table, cols), nil
	}

	info := t.ColumnInfo()
	cols := make([]string, 0, len(info))
	for _, ci := range info {
		ident, err := b.identifier(ci.Name)
		if err != nil {
			return "", err
		}
		cols = append(cols, ident+" "+ci.Type.String())
	}
	return fmt.Sprintf("CREATE TABLE %s (%s);", table, strings.Join(cols, ",")), nil
}

// buildInsertQuery constructs the parameterized INSERT statement.
//
//	INSERT INTO {table} ({c1},{c2},...) VALUES (?,?,...);
func (b *statementBuilder) buildInsertQuery(tableName string, header model.Header) (string, error) {
	table, err := b.identifier(tableName)
	if err != nil {
		return "", err
	}
	cols, err := b.columnList(header)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", table, cols, buildPlaceholders(len(header))), nil
}

// bareName returns the schema (empty when unqualified) and the name SQLite
// stores in that schema's sqlite_master for tableName. Only verbatim names
// can carry a schema prefix such as main.t or "temp"."t".
func (b *statementBuilder) bareName(tableName string) (schema, name string) {
	switch b.policy {
	case IdentifierQuoted, IdentifierStrict:
		return "", tableName
	}
	if dot := qualifierDot(tableName); dot >= 0 {
		return unquoteIdentifier(tableName[:dot]), unquoteIdentifier(tableName[dot+1:])
	}
	return "", unquoteIdentifier(tableName)
}

// qualifierDot returns the index of the first '.' outside identifier quotes,
// or -1.
func qualifierDot(name string) int {
	var closing byte
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case closing != 0:
			if c == closing {
				closing = 0
			}
		case c == '"' || c == '`':
			closing = c
		case c == '[':
			closing = ']'
		case c == '.':
			return i
		}
	}
	return -1
}

// buildPlaceholders creates placeholder string for prepared statements
func buildPlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	return strings.Repeat("?,", count-1) + "?"
}

// isPlainIdentifier reports whether name matches [A-Za-z_][A-Za-z0-9_]*.
func isPlainIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= firstLowerChar && r <= lastLowerChar,
			r >= firstUpperChar && r <= lastUpperChar,
			r == underscoreChar:
		case r >= firstDigitChar && r <= lastDigitChar:
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// unquoteIdentifier strips one level of SQLite identifier quoting
// ("x", [x] or `x`) from a verbatim name.
func unquoteIdentifier(name string) string {
	if len(name) < 2 {
		return name
	}
	first, last := name[0], name[len(name)-1]
	switch {
	case first == '"' && last == '"':
		return strings.ReplaceAll(name[1:len(name)-1], `""`, `"`)
	case first == '`' && last == '`':
		return strings.ReplaceAll(name[1:len(name)-1], "``", "`")
	case first == '[' && last == ']':
		return name[1 : len(name)-1]
	default:
		return name
	}
}
