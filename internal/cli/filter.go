package cli

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wtsi-hgi/yggdrasil/internal/output"
	"github.com/wtsi-hgi/yggdrasil/internal/query"
	"github.com/wtsi-hgi/yggdrasil/internal/record"
	"github.com/wtsi-hgi/yggdrasil/internal/selection"
)

// FilterOptions holds flags for the filter command.
type FilterOptions struct {
	*RootOptions
	Query    string
	Keys     string
	Slice    string
	Output   string
	Database string
}

// NewFilterCommand creates the filter command.
func NewFilterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FilterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "filter [source]",
		Short: "Print the records that match a query",
		Long: `Compile a query and print the records that satisfy it.

Records come from source (a .jsonl, .ndjson, .json, .yaml, .yml or
.parquet file, or - for JSON Lines on stdin). Without a source they are
read from the record store named by --db or YGGDRASIL_DB. Without a
query every record matches.

Example:
  yggdrasil filter files.jsonl -q '(and(kind=cram)(size>=1000))'
  yggdrasil filter --db records.db -q '(name=sample_*)' --keys name,size --slice 0:10`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runFilter(opts, path, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "query expression")
	cmd.Flags().StringVarP(&opts.Keys, "keys", "k", "", "comma-separated keys to keep")
	cmd.Flags().StringVar(&opts.Slice, "slice", "", "min:max range of matches to print")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "record format (jsonl|json|csv|yaml)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record store to read when no source is given")

	return cmd
}

func runFilter(opts *FilterOptions, path string, cmd *cobra.Command) error {
	formatter := newOutputFormatter(opts.RootOptions, cmd)

	writer, err := output.New(opts.outputFormat(), cmd.OutOrStdout())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeOutput, err)
	}

	var predicate query.Predicate
	if opts.Query != "" {
		predicate, err = query.Compile(opts.Query)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidQuery, err)
		}
		formatter.VerboseLog("Compiled query: %s", predicate)
	}

	var matches []record.Record
	if path != "" {
		records, err := readRecords(cmd, path)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeSource, err)
		}
		matches = query.Filter(records, predicate)
		slog.Debug("filtered records", "source", path, "read", len(records), "matched", len(matches))
	} else {
		matches, err = opts.selectStored(cmd, predicate)
		if err != nil {
			return err
		}
	}

	matches = selection.Slice(matches, selection.ParseSlice(opts.Slice))
	if opts.Keys != "" {
		for i, rec := range matches {
			matches[i] = selection.SelectKeys(opts.Keys, rec)
		}
	}

	if err := writer.Format(matches); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeOutput, err)
	}
	return nil
}

// outputFormat prefers --output, then YGGDRASIL_OUTPUT, then JSON Lines.
func (opts *FilterOptions) outputFormat() string {
	switch {
	case opts.Output != "":
		return opts.Output
	case opts.Config.Output != "":
		return opts.Config.Output
	default:
		return "jsonl"
	}
}

func (opts *FilterOptions) selectStored(cmd *cobra.Command, p query.Predicate) ([]record.Record, error) {
	formatter := newOutputFormatter(opts.RootOptions, cmd)

	dbPath := databasePath(opts.Database, opts.Config)
	if dbPath == "" {
		return nil, formatter.Fail(ExitCommandError, ErrCodeSource,
			errors.New("no record source: give a file or --db"))
	}

	st, err := openStore(dbPath)
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeStore, err)
	}
	defer closeStore(st)

	matches, err := st.Select(commandContext(cmd), p)
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeStore, err)
	}
	slog.Debug("filtered stored records", "db", dbPath, "matched", len(matches))
	return matches, nil
}
