package query

import "strings"

// delimiters are the single-character tokens of the query language.
const delimiters = "()<>~="

// Token is a lexical token of a query.
//
// Literal values have their escapes resolved, except that an escaped star,
// question mark or backslash is kept as a two-character marker (\*, \?, \\)
// so that wildcard compilation can tell it apart from an operative one.
type Token struct {
	Delimiter bool
	Value     string
}

func isDelimiter(c byte) bool {
	return strings.IndexByte(delimiters, c) >= 0
}

// Tokenize splits source into delimiter and literal tokens.
//
// Adjacent non-delimiter characters merge into one literal. An = directly
// after a <, > or ~ token extends it into <=, >= or ~=. A backslash with
// nothing after it silently ends tokenization.
func Tokenize(source string) []Token {
	var tokens []Token
	var literal strings.Builder
	inLiteral := false

	flush := func() {
		if inLiteral {
			tokens = append(tokens, Token{Value: literal.String()})
			literal.Reset()
			inLiteral = false
		}
	}

	for i := 0; i < len(source); i++ {
		c := source[i]

		if c == '\\' {
			if i+1 >= len(source) {
				break
			}
			i++
			inLiteral = true
			switch next := source[i]; next {
			case 'n':
				literal.WriteByte('\n')
			case 'r':
				literal.WriteByte('\r')
			case 't':
				literal.WriteByte('\t')
			case '*', '?', '\\':
				literal.WriteByte('\\')
				literal.WriteByte(next)
			default:
				literal.WriteByte(next)
			}
			continue
		}

		if !isDelimiter(c) {
			literal.WriteByte(c)
			inLiteral = true
			continue
		}

		flush()

		if c == '=' && len(tokens) > 0 {
			last := &tokens[len(tokens)-1]
			if last.Delimiter && (last.Value == "<" || last.Value == ">" || last.Value == "~") {
				last.Value += "="
				continue
			}
		}
		tokens = append(tokens, Token{Delimiter: true, Value: string(c)})
	}
	flush()

	return tokens
}

// unescape resolves the escape markers the lexer leaves in literals.
func unescape(literal string) string {
	if strings.IndexByte(literal, '\\') < 0 {
		return literal
	}

	var b strings.Builder
	b.Grow(len(literal))
	for i := 0; i < len(literal); i++ {
		if literal[i] == '\\' && i+1 < len(literal) {
			i++
		}
		b.WriteByte(literal[i])
	}
	return b.String()
}

// escape renders a literal so that Tokenize reads it back unchanged.
func escape(literal string) string {
	var b strings.Builder
	b.Grow(len(literal))
	for i := 0; i < len(literal); i++ {
		switch c := literal[i]; {
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case isDelimiter(c):
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
