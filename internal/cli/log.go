package cli

import (
	"io"
	"log/slog"

	"github.com/wtsi-hgi/yggdrasil/internal/config"
)

// setupLogging installs the default logger. --verbose forces debug level
// whatever YGGDRASIL_LOG_LEVEL says.
func setupLogging(w io.Writer, cfg config.Config, verbose bool) {
	slog.SetDefault(newLogger(w, cfg, verbose))
}

func newLogger(w io.Writer, cfg config.Config, verbose bool) *slog.Logger {
	level := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
