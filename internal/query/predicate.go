package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// Predicate is a compiled boolean test over a record.
//
// This is a sealed interface: only And, Or, Not and Compare implement it.
type Predicate interface {
	// Match reports whether input satisfies the predicate. Input that is
	// not record-shaped never matches.
	Match(input any) bool

	// String renders the predicate in query syntax. Compiling the result
	// yields an equivalent predicate.
	String() string

	eval(rec record.Record) bool
}

func match(p Predicate, input any) bool {
	rec, ok := record.AsRecord(input)
	return ok && p.eval(rec)
}

// And is true when both operands are. Right is not evaluated when Left is false.
type And struct {
	Left, Right Predicate
}

func (p *And) Match(input any) bool { return match(p, input) }

func (p *And) eval(rec record.Record) bool { return p.Left.eval(rec) && p.Right.eval(rec) }

func (p *And) String() string { return "(and" + p.Left.String() + p.Right.String() + ")" }

// Or is true when either operand is. Right is not evaluated when Left is true.
type Or struct {
	Left, Right Predicate
}

func (p *Or) Match(input any) bool { return match(p, input) }

func (p *Or) eval(rec record.Record) bool { return p.Left.eval(rec) || p.Right.eval(rec) }

func (p *Or) String() string { return "(or" + p.Left.String() + p.Right.String() + ")" }

// Not negates its operand.
type Not struct {
	Inner Predicate
}

func (p *Not) Match(input any) bool { return match(p, input) }

func (p *Not) eval(rec record.Record) bool { return !p.Inner.eval(rec) }

func (p *Not) String() string { return "(not" + p.Inner.String() + ")" }

// Compare tests the value at Key against Literal. It is false when the
// record has no Key.
type Compare struct {
	Op  Operator
	Key string

	// Literal is the right-hand side as lexed: escaped wildcards are still
	// marked with a backslash.
	Literal string

	value   string
	pattern *regexp.Regexp
}

// NewCompare builds a comparison. key is the plain key name; literal is in
// lexed form, so an unescaped * or ? is a wildcard for OpEqual.
func NewCompare(op Operator, key, literal string) (*Compare, error) {
	if _, ok := infixOperators[op]; !ok {
		return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidQuery, op)
	}

	c := &Compare{
		Op:      op,
		Key:     key,
		Literal: literal,
		value:   unescape(literal),
	}

	if op == OpEqual && hasWildcards(literal) {
		re, err := compileWildcard(literal)
		if err != nil {
			return nil, fmt.Errorf("%w: wildcard %q: %v", ErrInvalidQuery, literal, err)
		}
		c.pattern = re
	}

	return c, nil
}

func (p *Compare) Match(input any) bool { return match(p, input) }

func (p *Compare) eval(rec record.Record) bool {
	value, ok := rec[p.Key]
	return ok && infixOperators[p.Op](p, value)
}

func (p *Compare) String() string {
	return "(" + escape(markEscapes(p.Key)) + string(p.Op) + escape(p.Literal) + ")"
}

// markEscapes is the inverse of unescape for plain text.
func markEscapes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`).Replace(s)
}
