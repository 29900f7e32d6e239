package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func delim(v string) Token { return Token{Delimiter: true, Value: v} }
func lit(v string) Token   { return Token{Value: v} }

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:     "simple equality",
			input:    "(foo=bar)",
			expected: []Token{delim("("), lit("foo"), delim("="), lit("bar"), delim(")")},
		},
		{
			name:     "greater or equal merges",
			input:    "(a>=1)",
			expected: []Token{delim("("), lit("a"), delim(">="), lit("1"), delim(")")},
		},
		{
			name:     "less or equal merges",
			input:    "(a<=1)",
			expected: []Token{delim("("), lit("a"), delim("<="), lit("1"), delim(")")},
		},
		{
			name:     "similarity merges",
			input:    "(a~=b)",
			expected: []Token{delim("("), lit("a"), delim("~="), lit("b"), delim(")")},
		},
		{
			name:     "bare less than stays single",
			input:    "a<b",
			expected: []Token{lit("a"), delim("<"), lit("b")},
		},
		{
			name:     "double equals does not merge",
			input:    "==",
			expected: []Token{delim("="), delim("=")},
		},
		{
			name:     "only one equals merges",
			input:    "<==",
			expected: []Token{delim("<="), delim("=")},
		},
		{
			name:     "junction keeps keyword as literal",
			input:    "(and(a=b)(c=d))",
			expected: []Token{delim("("), lit("and"), delim("("), lit("a"), delim("="), lit("b"), delim(")"), delim("("), lit("c"), delim("="), lit("d"), delim(")"), delim(")")},
		},
		{
			name:     "spaces are literal characters",
			input:    "(a b=c d)",
			expected: []Token{delim("("), lit("a b"), delim("="), lit("c d"), delim(")")},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestTokenize_Escapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{"newline", `a\nb`, []Token{lit("a\nb")}},
		{"carriage return", `a\rb`, []Token{lit("a\rb")}},
		{"tab", `a\tb`, []Token{lit("a\tb")}},
		{"escaped delimiter joins literal", `a\(b\=c`, []Token{lit("a(b=c")}},
		{"escaped delimiter starts literal", `(\(x=1)`, []Token{delim("("), lit("(x"), delim("="), lit("1"), delim(")")}},
		{"other escapes pass through", `\q`, []Token{lit("q")}},
		{"escaped star is marked", `a\*b`, []Token{lit(`a\*b`)}},
		{"escaped question mark is marked", `a\?b`, []Token{lit(`a\?b`)}},
		{"escaped backslash is marked", `a\\b`, []Token{lit(`a\\b`)}},
		{"trailing escape truncates", `a\`, []Token{lit("a")}},
		{"trailing escape drops the rest", `(foo=bar\`, []Token{delim("("), lit("foo"), delim("="), lit("bar")}},
		{"lone trailing escape", `(\`, []Token{delim("(")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "plain", unescape("plain"))
	assert.Equal(t, "a*b", unescape(`a\*b`))
	assert.Equal(t, "a?b", unescape(`a\?b`))
	assert.Equal(t, `a\b`, unescape(`a\\b`))
}

func TestEscape_RoundTrip(t *testing.T) {
	for _, literal := range []string{"a(b)c", "x<=y", "tab\there", "line\nbreak", `star\*`, "~="} {
		tokens := Tokenize(escape(literal))
		if assert.Len(t, tokens, 1, literal) {
			assert.Equal(t, literal, tokens[0].Value)
		}
	}
}
