package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// JSONLinesFormatter outputs records as JSON Lines.
type JSONLinesFormatter struct {
	writer io.Writer
}

// NewJSONLinesFormatter creates a new JSON Lines formatter
func NewJSONLinesFormatter(w io.Writer) *JSONLinesFormatter {
	return &JSONLinesFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONLinesFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes each record as canonical JSON on its own line.
func (j *JSONLinesFormatter) Format(records []record.Record) error {
	for _, rec := range records {
		data, err := record.MarshalCanonical(rec)
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		data = append(data, '\n')
		if _, err := j.writer.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter outputs records as one JSON array.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON array formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes records as an indented JSON array with canonical key order.
func (j *JSONFormatter) Format(records []record.Record) error {
	items := make([]any, len(records))
	for i, rec := range records {
		items[i] = rec
	}

	data, err := record.MarshalCanonical(items)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')

	_, err = buf.WriteTo(j.writer)
	return err
}
