package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// sliceReader serves records already decoded from a whole document.
type sliceReader struct {
	src     io.Reader
	records []record.Record
}

func (r *sliceReader) Next() (record.Record, error) {
	if len(r.records) == 0 {
		return nil, io.EOF
	}
	rec := r.records[0]
	r.records = r.records[1:]
	return rec, nil
}

func (r *sliceReader) Close() error { return closeIfCloser(r.src) }

// appendRecords adds doc to records: a mapping is one record and a
// sequence must hold only mappings.
func appendRecords(records []record.Record, doc any) ([]record.Record, error) {
	items, ok := doc.([]any)
	if !ok {
		rec, err := record.FromValue(doc)
		if err != nil {
			return nil, err
		}
		return append(records, rec), nil
	}

	for i, item := range items {
		rec, err := record.FromValue(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func newJSONReader(r io.Reader) (*sliceReader, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("failed to parse JSON: trailing data after document")
	}

	records, err := appendRecords(make([]record.Record, 0), doc)
	if err != nil {
		return nil, err
	}
	return &sliceReader{src: r, records: records}, nil
}

func newYAMLReader(r io.Reader) (*sliceReader, error) {
	dec := yaml.NewDecoder(r)

	records := make([]record.Record, 0)
	for doc := 1; ; doc++ {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		if v == nil {
			continue
		}

		if records, err = appendRecords(records, v); err != nil {
			return nil, fmt.Errorf("document %d: %w", doc, err)
		}
	}
	return &sliceReader{src: r, records: records}, nil
}
