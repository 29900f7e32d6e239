package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// YAMLFormatter outputs records as a YAML sequence.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// SetOutput sets the output writer
func (y *YAMLFormatter) SetOutput(w io.Writer) {
	y.writer = w
}

// Format writes records as one YAML document. Keys are sorted.
func (y *YAMLFormatter) Format(records []record.Record) error {
	items := make([]map[string]any, len(records))
	for i, rec := range records {
		items[i] = rec
	}

	enc := yaml.NewEncoder(y.writer)
	enc.SetIndent(2)
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
