package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
	"github.com/wtsi-hgi/yggdrasil/internal/schema"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool            `json:"valid"`
	Records  int             `json:"records"`
	Failures []RecordFailure `json:"failures,omitempty"`
}

// RecordFailure lists the problems with one record. Index counts from 1.
type RecordFailure struct {
	Index  int                      `json:"index"`
	Errors []schema.ValidationError `json:"errors"`
}

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Database string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <schema> [source]",
		Short: "Check records against a schema",
		Long: `Check every record against a schema file.

The schema is YAML (.yaml, .yml) or CUE (.cue) and maps record keys to
type definitions:

  fields:
    size: {type: number, subtype: "int[0,)"}
    kind: {type: enum, options: {bam: BAM file, cram: CRAM file}}
  required: [size]

Records come from source, or from the record store named by --db or
YGGDRASIL_DB when source is omitted.

Exit codes:
  0 - every record is valid
  1 - at least one record is invalid
  2 - the schema or records could not be loaded`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			return runValidate(opts, args[0], path, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record store to read when no source is given")

	return cmd
}

func runValidate(opts *ValidateOptions, schemaPath, path string, cmd *cobra.Command) error {
	formatter := newOutputFormatter(opts.RootOptions, cmd)

	s, err := schema.Load(schemaPath)
	if err != nil {
		var loadErr *schema.LoadError
		if errors.As(err, &loadErr) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Error())
		}
		return outputValidateError(formatter, ErrCodeGeneric, err.Error())
	}
	formatter.VerboseLog("Loaded schema %s with %d field(s)", schemaPath, len(s.Fields))

	records, err := opts.records(cmd, path)
	if err != nil {
		return err
	}

	result := ValidationResult{Valid: true, Records: len(records)}
	for i, rec := range records {
		if errs := s.Validate(rec); len(errs) > 0 {
			result.Valid = false
			result.Failures = append(result.Failures, RecordFailure{Index: i + 1, Errors: errs})
		}
	}
	slog.Debug("validated records", "schema", schemaPath, "records", result.Records, "invalid", len(result.Failures))

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

func (opts *ValidateOptions) records(cmd *cobra.Command, path string) ([]record.Record, error) {
	formatter := newOutputFormatter(opts.RootOptions, cmd)

	if path != "" {
		records, err := readRecords(cmd, path)
		if err != nil {
			return nil, formatter.Fail(ExitCommandError, ErrCodeSource, err)
		}
		return records, nil
	}

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

	records, err := st.Select(commandContext(cmd), nil)
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeStore, err)
	}
	return records, nil
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %d record(s) valid\n", result.Records)
	return nil
}

// outputValidateError outputs a schema load error.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	// Load errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs every invalid record.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	failure := NewExitError(ExitFailure,
		fmt.Sprintf("validation failed: %d of %d record(s) invalid", len(result.Failures), result.Records))

	if formatter.Format == "json" {
		first := result.Failures[0].Errors[0]
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    first.Code,
				Message: failure.Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return failure
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")

	for _, f := range result.Failures {
		fmt.Fprintf(formatter.Writer, "\nrecord %d\n", f.Index)
		for _, err := range f.Errors {
			fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", err.Code, err.Field, err.Message)
		}
	}

	return failure
}
