package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotRecord is returned when decoded data is not a JSON object.
var ErrNotRecord = errors.New("not a record")

// Unmarshal decodes a single JSON object into a Record.
// Numbers are decoded exactly and then normalized to float64.
func Unmarshal(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	return FromValue(raw)
}

// FromValue converts a decoded JSON or YAML value into a Record.
// Anything other than a string-keyed mapping yields ErrNotRecord.
func FromValue(v any) (Record, error) {
	switch m := v.(type) {
	case map[string]any:
		return Normalize(Record(m)), nil
	case Record:
		return Normalize(m), nil
	case map[any]any:
		rec := make(Record, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-text key %v", ErrNotRecord, k)
			}
			rec[key] = val
		}
		return Normalize(rec), nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotRecord, v)
	}
}
