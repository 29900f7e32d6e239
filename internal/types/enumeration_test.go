package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnumeration(t *testing.T) {
	tests := []struct {
		name  string
		spec  any
		names []string
	}{
		{"ordered options", []Option{{"foo", "bar"}, {"baz", "quux"}}, []string{"foo", "baz"}},
		{"string map is sorted", map[string]string{"foo": "bar", "baz": "quux"}, []string{"baz", "foo"}},
		{"any map", map[string]any{"b": "B", "a": "A"}, []string{"a", "b"}},
		{"non-text label", map[string]any{"a": "A", "b": 2}, []string{}},
		{"plain text", "foo bar", []string{}},
		{"nil", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.names, ParseEnumeration(tt.spec).Names())
		})
	}
}

func TestEnumeration_Test(t *testing.T) {
	e := ParseEnumeration([]Option{{"foo", "bar"}, {"baz", "quux"}})

	for x, want := range map[any]bool{
		"foo":    true,
		"baz":    true,
		"foobar": false,
		"Foo":    false,
		"bar":    false,
		1:        false,
	} {
		ok, err := e.Test(x)
		require.NoError(t, err)
		assert.Equal(t, want, ok, "%v", x)
	}
}

func TestEnumeration_EmptyAcceptsNothing(t *testing.T) {
	e := ParseEnumeration("foo bar")
	for _, x := range []any{"foo", "", "foo bar"} {
		ok, err := e.Test(x)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestEnumeration_String(t *testing.T) {
	assert.Equal(t, "{foo,baz}", ParseEnumeration([]Option{{"foo", "bar"}, {"baz", "quux"}}).String())
	assert.Equal(t, "{}", ParseEnumeration(nil).String())
}
