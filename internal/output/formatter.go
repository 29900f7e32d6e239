// Package output writes records in the formats the filter command offers.
//
// Supported formats:
//   - jsonl: One canonical JSON object per line
//   - json: A single indented JSON array
//   - csv: Header row of the sorted union of keys, then one row per record
//   - yaml: A YAML sequence of mappings
//
// Example usage:
//
//	formatter, err := output.New("csv", os.Stdout)
//	if err != nil {
//	    return err
//	}
//	return formatter.Format(records)
package output

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// Format writes records in the formatter's format.
	Format(records []record.Record) error

	// SetOutput changes the output writer.
	SetOutput(w io.Writer)
}

// ErrUnknownFormat is returned by New for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the names New accepts.
var Formats = []string{"jsonl", "json", "csv", "yaml"}

// New returns the formatter named by format, writing to w.
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "jsonl":
		return NewJSONLinesFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "yaml":
		return NewYAMLFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w %q (valid: %v)", ErrUnknownFormat, format, Formats)
	}
}

// IsFormat reports whether New accepts format.
func IsFormat(format string) bool {
	return slices.Contains(Formats, format)
}
