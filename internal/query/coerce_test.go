package query

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name   string
		source string
		target any
		want   any
	}{
		{"text stays text", "123", "anything", "123"},
		{"integer", "42", 0.0, 42.0},
		{"decimal", "3.5", 1, 3.5},
		{"exponent", "1e3", 1, 1000.0},
		{"surrounding space", " 7 ", 1, 7.0},
		{"leading sign", "+5", 1, 5.0},
		{"leading point", ".5", 1, 0.5},
		{"trailing point", "5.", 1, 5.0},
		{"negative exponent", "-2.5E-1", 1, -0.25},
		{"blank is zero", "", 1, 0.0},
		{"json number target", "2", json.Number("1"), 2.0},
		{"false keyword", "false", true, false},
		{"false keyword any case", "FaLsE", true, false},
		{"null keyword", "null", true, false},
		{"no", "no", true, false},
		{"f", "F", true, false},
		{"n", "n", true, false},
		{"zero", "0", true, false},
		{"empty", "", true, false},
		{"yes is true", "yes", true, true},
		{"anything else is true", "maybe", false, true},
		{"empty to null", "", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.source, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_NumberFailureIsNaN(t *testing.T) {
	for _, source := range []string{"bar", "inf", "+Inf", "-infinity", "nan", "NaN", "0x1p3", "0x10", "1_000", "1e", "."} {
		t.Run(source, func(t *testing.T) {
			got, err := Coerce(source, 1.0)
			require.NoError(t, err)
			f, ok := got.(float64)
			require.True(t, ok)
			assert.True(t, math.IsNaN(f))
		})
	}
}

func TestCoerce_HugeNumberIsInfinite(t *testing.T) {
	got, err := Coerce("1e400", 1.0)
	require.NoError(t, err)
	assert.Equal(t, math.Inf(1), got)

	got, err = Coerce("-1e400", 1.0)
	require.NoError(t, err)
	assert.Equal(t, math.Inf(-1), got)
}

func TestCoerce_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		source string
		target any
	}{
		{"non-empty text to null", "x", nil},
		{"collection target", "x", []any{"x"}},
		{"mapping target", "x", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Coerce(tt.source, tt.target)
			assert.ErrorIs(t, err, ErrInvalidCoercion)
		})
	}
}

func TestCompareScalars(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		literal any
		cmp     int
		ok      bool
	}{
		{"strings ordered bytewise", "bar", "baz", -1, true},
		{"equal strings", "bar", "bar", 0, true},
		{"false before true", false, true, -1, true},
		{"equal booleans", true, true, 0, true},
		{"null equals null", nil, nil, 0, true},
		{"integer against float", 5, 5.0, 0, true},
		{"float ordering", 2.5, 1.0, 1, true},
		{"nan value", math.NaN(), 1.0, 0, false},
		{"nan literal", 1.0, math.NaN(), 0, false},
		{"mismatched kinds", "1", 1.0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp, ok := compareScalars(tt.value, tt.literal)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.cmp, cmp)
			}
		})
	}
}

func TestFormatScalar(t *testing.T) {
	for value, want := range map[any]string{
		"text": "text",
		true:   "true",
		123:    "123",
		1.5:    "1.5",
	} {
		got, ok := formatScalar(value)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	got, ok := formatScalar(nil)
	assert.True(t, ok)
	assert.Equal(t, "null", got)

	_, ok = formatScalar([]any{1})
	assert.False(t, ok)
}
