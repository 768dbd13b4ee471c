package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/sqlframe"
	"github.com/nao1215/sqlframe/internal/cli/config"
)

// execute runs cmd with cfg and a text logger writing to stderr.
func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&stderr, nil))
	ctx := config.WithLogger(config.WithConfig(context.Background(), cfg), logger)

	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Database = filepath.Join(t.TempDir(), "test.db")
	return cfg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// exportUsers uploads a two-row users table into cfg.Database.
func exportUsers(t *testing.T, cfg *config.Config) {
	t.Helper()
	path := writeFile(t, t.TempDir(), "users.csv", "name,age\nalice,30\nbob,25\n")
	_, _, err := execute(t, NewExportCommand(), cfg, path)
	require.NoError(t, err)
}

func TestExportCommand(t *testing.T) {
	t.Parallel()

	t.Run("table name from file", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		path := writeFile(t, t.TempDir(), "users.csv", "name,age\nalice,30\nbob,25\n")

		stdout, stderr, err := execute(t, NewExportCommand(), cfg, path)
		require.NoError(t, err)

		assert.Equal(t, "exported 2 rows to users in "+cfg.Database+"\n", stdout)
		assert.Contains(t, stderr, "SQL DB connected")
		assert.Contains(t, stderr, "SQL table created")
		assert.Contains(t, stderr, "rows uploaded")

		got, err := sqlframe.Import("SELECT name, age FROM users ORDER BY age", sqlframe.NewImportOptions().WithDatabase(cfg.Database))
		require.NoError(t, err)
		want, err := sqlframe.NewTable([]string{"name", "age"}, [][]any{{"bob", int64(25)}, {"alice", int64(30)}})
		require.NoError(t, err)
		assert.True(t, want.Equal(got))
	})

	t.Run("explicit table and inferred schema", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.Schema = "inferred"
		path := writeFile(t, t.TempDir(), "data.tsv", "id\tscore\n1\t1.5\n")

		_, _, err := execute(t, NewExportCommand(), cfg, "--table", "scores", path)
		require.NoError(t, err)

		got, err := sqlframe.Import("SELECT sql FROM sqlite_master WHERE name = 'scores'", sqlframe.NewImportOptions().WithDatabase(cfg.Database))
		require.NoError(t, err)
		require.Equal(t, 1, got.NumRows())
		assert.Equal(t, "CREATE TABLE scores (id INTEGER,score REAL)", got.Rows()[0][0])
	})

	t.Run("existing table", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		exportUsers(t, cfg)

		path := writeFile(t, t.TempDir(), "users.csv", "name\ncarol\n")
		_, _, err := execute(t, NewExportCommand(), cfg, path)
		assert.ErrorIs(t, err, sqlframe.ErrSchemaConflict)
	})

	t.Run("unsupported file", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		path := writeFile(t, t.TempDir(), "notes.txt", "hello\n")

		_, _, err := execute(t, NewExportCommand(), cfg, path)
		assert.ErrorIs(t, err, sqlframe.ErrUnsupportedFormat)
		assert.NoFileExists(t, cfg.Database)
	})

	t.Run("missing argument", func(t *testing.T) {
		t.Parallel()
		_, _, err := execute(t, NewExportCommand(), testConfig(t))
		assert.Error(t, err)
	})
}

func TestImportCommandFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		check  func(t *testing.T, out string)
	}{
		{
			name:   "table",
			format: "table",
			check: func(t *testing.T, out string) {
				t.Helper()
				assert.Contains(t, out, "alice")
				assert.Contains(t, out, "bob")
				assert.Contains(t, out, "(2 rows)")
			},
		},
		{
			name:   "csv",
			format: "csv",
			check: func(t *testing.T, out string) {
				t.Helper()
				assert.Equal(t, "name,age\nalice,30\nbob,25\n", out)
			},
		},
		{
			name:   "json",
			format: "json",
			check: func(t *testing.T, out string) {
				t.Helper()
				assert.JSONEq(t, `[{"name":"alice","age":30},{"name":"bob","age":25}]`, out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig(t)
			exportUsers(t, cfg)
			cfg.Format = tt.format

			stdout, _, err := execute(t, NewImportCommand(), cfg, "SELECT name, age FROM users ORDER BY name")
			require.NoError(t, err)
			tt.check(t, stdout)
		})
	}
}

func TestImportCommand(t *testing.T) {
	t.Parallel()

	t.Run("empty result", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		exportUsers(t, cfg)

		stdout, _, err := execute(t, NewImportCommand(), cfg, "SELECT * FROM users WHERE age > 100")
		require.NoError(t, err)
		assert.Equal(t, "(0 rows)\n", stdout)
	})

	t.Run("null and blob values", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)

		stdout, _, err := execute(t, NewImportCommand(), cfg, "SELECT NULL AS n, X'6869' AS b")
		require.NoError(t, err)
		assert.Contains(t, stdout, "NULL")
		assert.Contains(t, stdout, "hi")
	})

	t.Run("save to file", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		exportUsers(t, cfg)
		out := filepath.Join(t.TempDir(), "result.ltsv.gz")

		stdout, stderr, err := execute(t, NewImportCommand(), cfg, "--out", out, "SELECT name, age FROM users ORDER BY name")
		require.NoError(t, err)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "result saved")

		got, err := sqlframe.LoadFile(out)
		require.NoError(t, err)
		want, err := sqlframe.NewTable([]string{"name", "age"}, [][]any{{"alice", int64(30)}, {"bob", int64(25)}})
		require.NoError(t, err)
		assert.True(t, want.Equal(got))
	})

	t.Run("sql from input file", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.Format = "csv"
		exportUsers(t, cfg)
		input := writeFile(t, t.TempDir(), "query.sql", "SELECT count(*) AS total FROM users;\n")

		stdout, _, err := execute(t, NewImportCommand(), cfg, "--input", input)
		require.NoError(t, err)
		assert.Equal(t, "total\n2\n", stdout)
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)

		_, _, err := execute(t, NewImportCommand(), cfg, "SELECT * FROM missing")
		assert.ErrorIs(t, err, sqlframe.ErrQueryExecution)
	})

	t.Run("unsupported output", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		out := filepath.Join(t.TempDir(), "result.txt")

		_, _, err := execute(t, NewImportCommand(), cfg, "--out", out, "SELECT 1 AS one")
		assert.ErrorIs(t, err, sqlframe.ErrUnsupportedFormat)
	})
}

func TestReadQuery(t *testing.T) {
	t.Parallel()

	input := writeFile(t, t.TempDir(), "q.sql", "  SELECT 1\n\n")

	tests := []struct {
		name    string
		args    []string
		input   string
		want    string
		wantErr bool
	}{
		{name: "argument", args: []string{"SELECT 2"}, want: "SELECT 2"},
		{name: "input file", input: input, want: "SELECT 1"},
		{name: "both", args: []string{"SELECT 2"}, input: input, wantErr: true},
		{name: "neither", wantErr: true},
		{name: "missing file", input: filepath.Join(t.TempDir(), "none.sql"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := readQuery(tt.args, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderCSVQuotesCells(t *testing.T) {
	t.Parallel()

	tbl, err := sqlframe.NewTable([]string{"a", "b"}, [][]any{{"x,y", nil}, {`say "hi"`, 1.5}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderTable(&buf, tbl, "CSV"))
	assert.Equal(t, "a,b\n\"x,y\",\n\"say \"\"hi\"\"\",1.5\n", buf.String())
}

func TestRenderJSONDuplicateLabels(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	tbl, err := sqlframe.Import("SELECT 1 AS x, 2 AS x", cfg.ImportOptions(nil))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderTable(&buf, tbl, "json"))
	assert.JSONEq(t, `[{"x":2}]`, buf.String())
}

func TestNewVersionCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		version string
		wantOut []string
	}{
		{name: "default version", version: "0.1.0", wantOut: []string{"sqlframe v0.1.0", "modernc.org/sqlite"}},
		{name: "dev version", version: "dev", wantOut: []string{"sqlframe vdev"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cmd := NewVersionCommand(tt.version)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)

			require.NoError(t, cmd.Execute())
			for _, want := range tt.wantOut {
				assert.True(t, strings.Contains(buf.String(), want), "output should contain %q, got: %s", want, buf.String())
			}
		})
	}
}
