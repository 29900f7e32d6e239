package record

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Kind
	}{
		{"nil", nil, KindNull},
		{"string", "foo", KindString},
		{"empty string", "", KindString},
		{"float", 1.5, KindNumber},
		{"int", 3, KindNumber},
		{"uint8", uint8(3), KindNumber},
		{"json number", json.Number("12"), KindNumber},
		{"bool", false, KindBool},
		{"slice", []any{1}, KindOther},
		{"map", map[string]any{}, KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.value))
		})
	}
}

func TestAsRecord(t *testing.T) {
	rec, ok := AsRecord(map[string]any{"foo": "bar"})
	require.True(t, ok)
	assert.Equal(t, "bar", rec["foo"])

	_, ok = AsRecord(Record{})
	assert.True(t, ok, "empty record is still a record")

	_, ok = AsRecord(Record(nil))
	assert.False(t, ok)

	_, ok = AsRecord("foo")
	assert.False(t, ok)

	_, ok = AsRecord([]any{"foo"})
	assert.False(t, ok)
}

func TestToFloat(t *testing.T) {
	f, ok := ToFloat(int64(-7))
	require.True(t, ok)
	assert.Equal(t, -7.0, f)

	f, ok = ToFloat(json.Number("not-a-number"))
	require.True(t, ok)
	assert.True(t, math.IsNaN(f))

	_, ok = ToFloat("7")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	rec := Normalize(Record{
		"a": 1,
		"b": json.Number("2.5"),
		"c": "3",
		"d": []any{1},
	})

	assert.Equal(t, 1.0, rec["a"])
	assert.Equal(t, 2.5, rec["b"])
	assert.Equal(t, "3", rec["c"])
	assert.Equal(t, []any{1}, rec["d"])
}

func TestSortedKeys_UTF16Order(t *testing.T) {
	// U+1F600 encodes as surrogates 0xD83D 0xDE00, which sort before U+FF61
	// in UTF-16 but after it in UTF-8.
	rec := Record{"\uff61": 1, "\U0001F600": 2, "a": 3}
	assert.Equal(t, []string{"a", "\U0001F600", "\uff61"}, rec.SortedKeys())
}

func TestUnmarshal(t *testing.T) {
	rec, err := Unmarshal([]byte(`{"foo":"bar","n":42,"ok":true,"nothing":null}`))
	require.NoError(t, err)

	assert.Equal(t, Record{"foo": "bar", "n": 42.0, "ok": true, "nothing": nil}, rec)

	_, err = Unmarshal([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrNotRecord)

	_, err = Unmarshal([]byte(`{`))
	assert.Error(t, err)
}

func TestFromValue_YAMLStyleMap(t *testing.T) {
	rec, err := FromValue(map[any]any{"size": 10})
	require.NoError(t, err)
	assert.Equal(t, 10.0, rec["size"])

	_, err = FromValue(map[any]any{1: "x"})
	assert.ErrorIs(t, err, ErrNotRecord)
}
