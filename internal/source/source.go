// Package source reads records from files.
//
// Supported formats are chosen by extension:
//
//	.jsonl .ndjson   one JSON object per line
//	.json            an array of objects, or a single object
//	.yaml .yml       a sequence of mappings, or a mapping, per document
//	.parquet         one record per row
//
// The path "-" reads JSON Lines from standard input. Every record is
// normalized with record.Normalize, so numbers are float64.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// Format identifies a record file format.
type Format string

const (
	FormatJSONLines Format = "jsonl"
	FormatJSON      Format = "json"
	FormatYAML      Format = "yaml"
	FormatParquet   Format = "parquet"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// ErrUnknownFormat is returned for a path whose extension names no format.
var ErrUnknownFormat = errors.New("unknown record format")

// Reader yields records in file order.
type Reader interface {
	// Next returns the next record, or io.EOF when there are no more.
	Next() (record.Record, error)

	// Close releases the underlying file.
	Close() error
}

// FormatOf returns the format selected by path's extension.
func FormatOf(path string) (Format, error) {
	if path == Stdin {
		return FormatJSONLines, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return FormatJSONLines, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Open opens path for reading in the format its extension selects.
func Open(path string) (Reader, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	if path == Stdin {
		return NewReader(os.Stdin, format)
	}
	if format == FormatParquet {
		return openParquet(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r, err := NewReader(f, format)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// NewReader reads records of a streaming format from r. Closing the
// returned Reader closes r if it is an io.Closer. Parquet needs random
// access and is only available through Open.
func NewReader(r io.Reader, format Format) (Reader, error) {
	switch format {
	case FormatJSONLines:
		return newLineReader(r), nil
	case FormatJSON:
		return newJSONReader(r)
	case FormatYAML:
		return newYAMLReader(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ReadAll drains r. It does not close r.
func ReadAll(r Reader) ([]record.Record, error) {
	records := make([]record.Record, 0)
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// Load reads every record in path.
func Load(path string) ([]record.Record, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	records, err := ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func closeIfCloser(r io.Reader) error {
	if c, ok := r.(io.Closer); ok && r != os.Stdin {
		return c.Close()
	}
	return nil
}
