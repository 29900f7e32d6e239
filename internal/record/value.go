package record

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"unicode/utf16"
)

// Record is a mapping from text keys to scalar values.
type Record map[string]any

// Kind classifies a record value.
type Kind int

const (
	KindOther Kind = iota
	KindNull
	KindString
	KindNumber
	KindBool
)

// String returns the kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "other"
	}
}

// KindOf returns the scalar kind of v.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case bool:
		return KindBool
	case float64, float32, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber
	default:
		return KindOther
	}
}

// AsRecord reports whether input is record-shaped and returns it as a Record.
// Both Record and map[string]any qualify; a nil map does not.
func AsRecord(input any) (Record, bool) {
	switch rec := input.(type) {
	case Record:
		return rec, rec != nil
	case map[string]any:
		return Record(rec), rec != nil
	default:
		return nil, false
	}
}

// ToFloat converts a numeric value to float64.
// json.Number values that do not parse yield NaN.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return math.NaN(), true
		}
		return f, true
	default:
		return 0, false
	}
}

// Normalize converts every numeric value in rec to float64 in place and
// returns rec. Non-scalar values are left untouched.
func Normalize(rec Record) Record {
	for k, v := range rec {
		if KindOf(v) == KindNumber {
			rec[k], _ = ToFloat(v)
		}
	}
	return rec
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings orders by UTF-8 bytes, which differs for astral runes.
func (r Record) SortedKeys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	for i := 0; i < len(a16) && i < len(b16); i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}
