package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/sqlframe"
	"github.com/nao1215/sqlframe/internal/cli/config"
)

// ImportOptions holds options for the import command.
type ImportOptions struct {
	Format string
	Input  string
	Out    string
}

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	opts := &ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import [SQL]",
		Short: "Run a query and print or save the result",
		Long: `Run SQL against the database and read the complete result.

The result is printed in the selected format, or written to --out in the
format given by the file extension.`,
		Example: `  # Print as a table
  sqlframe import "SELECT * FROM users"

  # Print as JSON
  sqlframe import "SELECT name, age FROM users" --format json

  # Save to a compressed parquet file
  sqlframe import "SELECT * FROM users" --out users.parquet.zst

  # Read SQL from a file
  sqlframe import --input report.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", config.DefaultFormat, "Output format: table, csv, json")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "Write the result to a table file instead of stdout")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "csv", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runImport(cmd *cobra.Command, args []string, opts *ImportOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := config.GetLogger(ctx)

	query, err := readQuery(args, opts.Input)
	if err != nil {
		return err
	}

	result, err := sqlframe.ImportContext(ctx, query, cfg.ImportOptions(sqlframe.NewLogObserver(logger)))
	if err != nil {
		return err
	}

	if opts.Out != "" {
		if err := sqlframe.SaveFile(result, opts.Out); err != nil {
			return err
		}
		logger.Info("result saved", slog.String("path", opts.Out), slog.Int("rows", result.NumRows()))
		return nil
	}

	return renderTable(cmd.OutOrStdout(), result, cfg.Format)
}

// readQuery returns the SQL from the positional argument or the --input file.
func readQuery(args []string, input string) (string, error) {
	switch {
	case len(args) == 1 && input != "":
		return "", errors.New("provide SQL as an argument or with --input, not both")
	case len(args) == 1:
		return args[0], nil
	case input != "":
		data, err := os.ReadFile(input) //nolint:gosec // User-provided path is necessary for file operations
		if err != nil {
			return "", fmt.Errorf("failed to read SQL file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	default:
		return "", errors.New("no SQL given: pass it as an argument or with --input")
	}
}
