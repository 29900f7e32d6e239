package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// ImportResult is the JSON payload of the import command.
type ImportResult struct {
	Database string         `json:"database"`
	Sources  []ImportSource `json:"sources"`
	Total    int            `json:"total"`
}

// ImportSource counts the records read from one source and how many of
// them were not already stored.
type ImportSource struct {
	Path     string `json:"path"`
	Read     int    `json:"read"`
	Inserted int    `json:"inserted"`
}

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <source>...",
		Short: "Load records into a record store",
		Long: `Load records from one or more sources into a SQLite record store,
creating the store if it does not exist.

Each source is imported in a single transaction. A record whose content
is already stored is skipped, so importing the same file twice is safe.

Example:
  yggdrasil import --db records.db files.jsonl more.parquet`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record store path (default $YGGDRASIL_DB)")

	return cmd
}

func runImport(opts *ImportOptions, paths []string, cmd *cobra.Command) error {
	formatter := newOutputFormatter(opts.RootOptions, cmd)

	dbPath := databasePath(opts.Database, opts.Config)
	if dbPath == "" {
		return formatter.Fail(ExitCommandError, ErrCodeStore, errors.New("no record store: give --db or set YGGDRASIL_DB"))
	}

	st, err := createStore(dbPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err)
	}
	defer closeStore(st)

	ctx := commandContext(cmd)
	result := ImportResult{Database: dbPath, Sources: make([]ImportSource, 0, len(paths))}

	for _, path := range paths {
		records, err := readRecords(cmd, path)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeSource, err)
		}

		inserted, err := st.PutAll(ctx, path, records)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Errorf("%s: %w", path, err))
		}
		slog.Debug("imported records", "source", path, "read", len(records), "inserted", inserted)

		result.Sources = append(result.Sources, ImportSource{Path: path, Read: len(records), Inserted: inserted})
	}

	if result.Total, err = st.Count(ctx); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err)
	}

	return outputImportResult(formatter, result)
}

func outputImportResult(formatter *OutputFormatter, result ImportResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, src := range result.Sources {
		fmt.Fprintf(formatter.Writer, "✓ %s: %d record(s) read, %d new\n", src.Path, src.Read, src.Inserted)
	}
	fmt.Fprintf(formatter.Writer, "%d record(s) in %s\n", result.Total, result.Database)
	return nil
}
