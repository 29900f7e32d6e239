package query

import (
	"regexp"
	"strings"
)

// hasWildcards reports whether literal contains an unescaped * or ?.
func hasWildcards(literal string) bool {
	for i := 0; i < len(literal); i++ {
		switch literal[i] {
		case '\\':
			i++
		case '*', '?':
			return true
		}
	}
	return false
}

// compileWildcard converts an equality literal into an anchored regular
// expression. * matches any run of characters (including none), ? matches
// exactly one character and everything else, escaped wildcards included,
// matches itself.
func compileWildcard(literal string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString(`^(?s:`)

	for i := 0; i < len(literal); i++ {
		switch literal[i] {
		case '\\':
			if i+1 < len(literal) {
				i++
			}
			b.WriteString(regexp.QuoteMeta(literal[i : i+1]))
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		default:
			// Bytes of a multibyte character are copied one at a time.
			b.WriteString(regexp.QuoteMeta(literal[i : i+1]))
		}
	}

	b.WriteString(`)$`)
	return regexp.Compile(b.String())
}
