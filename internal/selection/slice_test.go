package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSlice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"defined endpoints", "1:5", []int{1, 5}},
		{"omitted start", ":5", []int{0, 5}},
		{"omitted end", "1:", []int{1}},
		{"whole collection", ":", []int{}},
		{"top-heavy mirrored", "5:1", []int{1, 5}},
		{"equal bounds open-ended", "1:1", []int{1}},
		{"zero to zero", "0:0", []int{}},
		{"zero start explicit", "0:", []int{}},
		{"nonsense", "foo:bar", []int{}},
		{"negative", "-1:2", []int{}},
		{"no colon", "5", []int{}},
		{"overflow", "99999999999999999999999:1", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSlice(tt.input))
		})
	}
}

func TestSlice(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f"}

	tests := []struct {
		spec string
		want []string
	}{
		{":", items},
		{"1:", []string{"b", "c", "d", "e", "f"}},
		{":2", []string{"a", "b"}},
		{"4:2", []string{"c", "d"}},
		{"2:2", []string{"c", "d", "e", "f"}},
		{"4:100", []string{"e", "f"}},
		{"10:", []string{}},
		{"10:20", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.want, Slice(items, ParseSlice(tt.spec)))
		})
	}
}
