package query

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Operator is the spelling of an infix comparator.
type Operator string

const (
	OpEqual        Operator = "="
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpSimilar      Operator = "~="
)

// SimilarityThreshold is the least similarity accepted by ~=.
const SimilarityThreshold = 0.75

// prefixOperator builds a junction from its already-compiled operands.
type prefixOperator struct {
	arity int
	build func(operands []Predicate) Predicate
}

var prefixOperators = map[string]prefixOperator{
	"and": {arity: 2, build: func(ops []Predicate) Predicate { return &And{Left: ops[0], Right: ops[1]} }},
	"or":  {arity: 2, build: func(ops []Predicate) Predicate { return &Or{Left: ops[0], Right: ops[1]} }},
	"not": {arity: 1, build: func(ops []Predicate) Predicate { return &Not{Inner: ops[0]} }},
}

// infixOperators tests a record value, known to be present, against a
// comparison's literal.
var infixOperators = map[Operator]func(c *Compare, value any) bool{
	OpEqual:        matchEqual,
	OpGreaterEqual: func(c *Compare, value any) bool { return matchOrder(c, value, func(cmp int) bool { return cmp >= 0 }) },
	OpLessEqual:    func(c *Compare, value any) bool { return matchOrder(c, value, func(cmp int) bool { return cmp <= 0 }) },
	OpSimilar:      matchSimilar,
}

func matchEqual(c *Compare, value any) bool {
	if c.pattern != nil {
		text, ok := formatScalar(value)
		return ok && c.pattern.MatchString(text)
	}
	return matchOrder(c, value, func(cmp int) bool { return cmp == 0 })
}

func matchOrder(c *Compare, value any, accept func(cmp int) bool) bool {
	literal, err := Coerce(c.value, value)
	if err != nil {
		return false
	}
	cmp, ok := compareScalars(value, literal)
	return ok && accept(cmp)
}

func matchSimilar(c *Compare, value any) bool {
	text, ok := value.(string)
	return ok && Similarity(text, c.value) >= SimilarityThreshold
}

// Similarity returns 1 - levenshtein(a, b) / max(len(a), len(b)), with
// lengths counted in runes. Two empty strings are fully similar.
func Similarity(a, b string) float64 {
	denominator := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if denominator == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(denominator)
}

// isComparator reports whether tok spells an infix operator.
func isComparator(tok Token) bool {
	if !tok.Delimiter {
		return false
	}
	_, ok := infixOperators[Operator(tok.Value)]
	return ok
}
