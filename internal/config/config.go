// Package config reads yggdrasil settings from the environment.
//
// Variables may also come from a .env file in the working directory or
// from files named explicitly; values already in the environment win.
//
//	YGGDRASIL_DB          record store path used when --db is not given
//	YGGDRASIL_OUTPUT      default filter output format (jsonl)
//	YGGDRASIL_LOG_LEVEL   debug, info, warn or error (info)
//	YGGDRASIL_LOG_FORMAT  text or json (text)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/wtsi-hgi/yggdrasil/internal/output"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidConfig is returned when a parsed value is out of range
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds settings that flags may override.
type Config struct {
	Database  string `env:"YGGDRASIL_DB"`
	Output    string `env:"YGGDRASIL_OUTPUT" envDefault:"jsonl"`
	LogLevel  string `env:"YGGDRASIL_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"YGGDRASIL_LOG_FORMAT" envDefault:"text"`
}

// Load reads envFiles, or ./.env when none are given, into the process
// environment and parses it. A missing default .env is not an error; a
// missing named file is.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("loading %v: %w", envFiles, err)
	}

	return parse(env.Options{})
}

// LoadFrom parses environ instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting has a usable value.
func (c Config) Validate() error {
	if !output.IsFormat(c.Output) {
		return fmt.Errorf("%w: YGGDRASIL_OUTPUT %q must be one of %v", ErrInvalidConfig, c.Output, output.Formats)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: YGGDRASIL_LOG_LEVEL: %v", ErrInvalidConfig, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: YGGDRASIL_LOG_FORMAT %q must be text or json", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// Level returns the configured log level, or info if it does not parse.
func (c Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(s)))
	return level, err
}
