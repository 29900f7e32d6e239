// Package query compiles the record query language into predicates.
//
// A query is a parenthesized expression:
//
//	(key=value)          equality; * and ? in value are wildcards
//	(key>=value)         ordering, value coerced to the record value's type
//	(key<=value)
//	(key~=value)         similarity: 1 - levenshtein/maxlen >= 0.75
//	(and A B)            conjunction of two expressions
//	(or A B)             disjunction of two expressions
//	(not A)              negation
//
// The escape character is the backslash. \n, \r and \t stand for newline,
// carriage return and tab; \*, \? and \\ are a literal star, question mark
// and backslash; any other escaped character (a delimiter, for instance)
// stands for itself. A trailing backslash ends the query.
//
// PIPELINE:
//
//	source ─Tokenize→ []Token ─parser→ Predicate
//
// The parser is a recursive-descent backtracking parser. Each rule takes a
// token position and returns the position after what it consumed; a rule
// that fails returns the position it was given, so an alternative can be
// tried from the same place.
//
// EVALUATION:
//
// Predicate is a sealed interface implemented by And, Or, Not and Compare.
// Evaluation is pure: a compiled predicate holds no mutable state and may be
// shared between goroutines. Match on anything that is not record-shaped
// returns false for every predicate, including negations.
//
// Example:
//
//	p, err := query.Compile("(and(type=cram)(size>=1000))")
//	if err != nil {
//	    return err
//	}
//	matched := query.Filter(records, p)
package query
