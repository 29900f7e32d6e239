package query

import (
	"strings"
)

// parser holds the token sequence of one compilation. Rules take a
// position and return the position after what they consumed; on failure
// they return the position they were given and ok == false.
type parser struct {
	tokens []Token
	depth  int

	// furthest is the highest position any rule failed at, for diagnostics.
	furthest int
	// tooDeep is set once nesting exceeds MaxExpressionDepth.
	tooDeep bool
}

func newParser(tokens []Token) *parser {
	return &parser{tokens: tokens}
}

// at returns the token at pos, skipping blank literals between tokens.
func (p *parser) at(pos int) (Token, int, bool) {
	for pos < len(p.tokens) {
		tok := p.tokens[pos]
		if tok.Delimiter || strings.TrimSpace(tok.Value) != "" {
			return tok, pos, true
		}
		pos++
	}
	return Token{}, pos, false
}

// delimiter consumes the delimiter d at pos.
func (p *parser) delimiter(pos int, d string) (int, bool) {
	tok, at, ok := p.at(pos)
	if !ok || !tok.Delimiter || tok.Value != d {
		return p.fail(pos)
	}
	return at + 1, true
}

func (p *parser) fail(pos int) (int, bool) {
	p.furthest = max(p.furthest, pos)
	return pos, false
}

// expression := "(" (clause | predicate) ")"
func (p *parser) expression(pos int) (Predicate, int, bool) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxExpressionDepth {
		p.tooDeep = true
		return nil, pos, false
	}

	next, ok := p.delimiter(pos, "(")
	if !ok {
		return nil, pos, false
	}

	pred, next, ok := p.clause(next)
	if !ok {
		pred, next, ok = p.predicate(next)
	}
	if !ok {
		return nil, pos, false
	}

	if next, ok = p.delimiter(next, ")"); !ok {
		return nil, pos, false
	}
	return pred, next, true
}

// clause := junction | negation
//
// Both alternatives share one rule, driven by the prefix operator table:
// a keyword followed by exactly as many expressions as its arity.
func (p *parser) clause(pos int) (Predicate, int, bool) {
	tok, at, ok := p.at(pos)
	if !ok || tok.Delimiter {
		return nil, pos, false
	}

	op, ok := prefixOperators[strings.TrimSpace(tok.Value)]
	if !ok {
		return nil, pos, false
	}

	next := at + 1
	operands := make([]Predicate, 0, op.arity)
	for range op.arity {
		var operand Predicate
		if operand, next, ok = p.expression(next); !ok {
			return nil, pos, false
		}
		operands = append(operands, operand)
	}

	return op.build(operands), next, true
}

// predicate := key comparator value
//
// The value may be empty, as in (key=), which compares against "".
func (p *parser) predicate(pos int) (Predicate, int, bool) {
	if pos >= len(p.tokens) || p.tokens[pos].Delimiter {
		p.fail(pos)
		return nil, pos, false
	}
	key := p.tokens[pos]

	if pos+1 >= len(p.tokens) || !isComparator(p.tokens[pos+1]) {
		p.fail(pos + 1)
		return nil, pos, false
	}
	op := Operator(p.tokens[pos+1].Value)

	next := pos + 2
	literal := ""
	if next < len(p.tokens) && !p.tokens[next].Delimiter {
		literal = p.tokens[next].Value
		next++
	}

	c, err := NewCompare(op, unescape(key.Value), literal)
	if err != nil {
		p.fail(pos)
		return nil, pos, false
	}
	return c, next, true
}
