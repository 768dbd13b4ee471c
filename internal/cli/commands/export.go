// Package commands implements the sqlframe subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/sqlframe"
	"github.com/nao1215/sqlframe/internal/cli/config"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	Table string
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Upload a table file into a new database table",
		Long: `Load FILE into memory and upload it into a new table of the database.

The table must not exist yet. By default its name is the file name without
directory, compression suffix and extension.`,
		Example: `  # users.csv -> table users in default.db
  sqlframe export users.csv

  # Explicit table and database, typed columns
  sqlframe export --database app.db --schema inferred --table people data/users.tsv.gz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Table, "table", "t", "", "Destination table name (default: derived from FILE)")

	return cmd
}

func runExport(cmd *cobra.Command, path string, opts *ExportOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := config.GetLogger(ctx)

	tableName := opts.Table
	if tableName == "" {
		tableName = sqlframe.TableNameFromPath(path)
	}

	logger.Debug("loading file", slog.String("path", path))
	table, err := sqlframe.LoadFile(path)
	if err != nil {
		return err
	}

	if err := sqlframe.ExportContext(ctx, table, tableName, cfg.ExportOptions(sqlframe.NewLogObserver(logger))); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s in %s\n", table.NumRows(), tableName, cfg.Database)
	return nil
}
