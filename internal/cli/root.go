package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/wtsi-hgi/yggdrasil/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Config carries environment defaults. It is loaded before any
	// subcommand runs; commands built on their own see the zero value.
	Config config.Config
}

// ValidFormats defines the allowed diagnostic formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the yggdrasil CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "yggdrasil",
		Short: "Query and type-check record collections",
		Long: `yggdrasil filters collections of flat records with a small prefix query
language and checks record values against declared type definitions.

Records are read from JSON Lines, JSON, YAML or Parquet files, or from a
SQLite record store filled with the import command.

Query syntax:
  (key=value)  (key>=value)  (key<=value)  (key~=value)
  (and A B)    (or A B)      (not A)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				formatter := &OutputFormatter{Format: "text", Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr()}
				return formatter.Fail(ExitCommandError, ErrCodeGeneric,
					fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			cfg, err := config.Load()
			if err != nil {
				return newOutputFormatter(opts, cmd).Fail(ExitCommandError, ErrCodeGeneric, err)
			}
			opts.Config = cfg

			setupLogging(cmd.ErrOrStderr(), cfg, opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "diagnostic format (json|text)")

	cmd.AddCommand(NewFilterCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
