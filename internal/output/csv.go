package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// CSVFormatter outputs records as CSV
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes records as CSV. The header is the sorted union of every
// record's keys; a record without a key leaves its cell empty.
func (c *CSVFormatter) Format(records []record.Record) error {
	csvWriter := csv.NewWriter(c.writer)

	if len(records) == 0 {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			return fmt.Errorf("failed to flush CSV writer: %w", err)
		}
		return nil
	}

	columnSet := make(map[string]bool)
	for _, rec := range records {
		for col := range rec {
			columnSet[col] = true
		}
	}
	columns := make([]string, 0, len(columnSet))
	for col := range columnSet {
		columns = append(columns, col)
	}
	slices.Sort(columns)

	if err := csvWriter.Write(columns); err != nil {
		return err
	}

	for _, rec := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = formatValue(rec[col])
		}
		if err := csvWriter.Write(row); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// formatValue converts a value to text for a CSV cell.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		// Sanitize against CSV injection by prefixing characters that
		// spreadsheet applications treat as the start of a formula
		if len(val) > 0 && strings.ContainsRune("=+-@\t\r\n|", rune(val[0])) {
			return "'" + strings.ReplaceAll(val, "'", "''")
		}
		return val
	case bool:
		return strconv.FormatBool(val)
	}

	if f, ok := record.ToFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// Nested values are written as JSON
	if data, err := record.MarshalCanonical(v); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", v)
}
