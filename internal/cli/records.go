package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wtsi-hgi/yggdrasil/internal/config"
	"github.com/wtsi-hgi/yggdrasil/internal/record"
	"github.com/wtsi-hgi/yggdrasil/internal/source"
	"github.com/wtsi-hgi/yggdrasil/internal/store"
)

// readRecords loads every record in path. "-" reads JSON Lines from the
// command's stdin.
func readRecords(cmd *cobra.Command, path string) ([]record.Record, error) {
	if path != source.Stdin {
		return source.Load(path)
	}

	r, err := source.NewReader(cmd.InOrStdin(), source.FormatJSONLines)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	records, err := source.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("stdin: %w", err)
	}
	return records, nil
}

// databasePath prefers the --db flag over YGGDRASIL_DB.
func databasePath(flag string, cfg config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Database
}

// openStore opens an existing record store.
func openStore(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found: %s", path)
	}
	return createStore(path)
}

// createStore opens the record store at path, creating it if needed.
func createStore(path string) (*store.Store, error) {
	slog.Debug("opening database", "path", path)
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
