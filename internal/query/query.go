package query

import (
	"fmt"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// Limits that bound the cost of compiling untrusted queries.
const (
	// MaxQueryLength is the maximum query length in bytes (1MB).
	MaxQueryLength = 1024 * 1024

	// MaxTokens is the maximum number of tokens in a query.
	MaxTokens = 10000

	// MaxExpressionDepth is the maximum nesting depth of expressions.
	MaxExpressionDepth = 100
)

// Compile turns source into a Predicate.
//
// Compilation succeeds only when a single expression consumes every token.
// On failure the predicate is nil and the error is a *SyntaxError, which
// matches ErrInvalidQuery under errors.Is.
func Compile(source string) (Predicate, error) {
	if len(source) > MaxQueryLength {
		return nil, &SyntaxError{
			Query:   source,
			Token:   -1,
			Message: fmt.Sprintf("%d bytes (max %d)", len(source), MaxQueryLength),
			Err:     ErrQueryTooLong,
		}
	}

	tokens := Tokenize(source)
	if len(tokens) > MaxTokens {
		return nil, &SyntaxError{
			Query:   source,
			Token:   -1,
			Message: fmt.Sprintf("%d tokens (max %d)", len(tokens), MaxTokens),
			Err:     ErrTooManyTokens,
		}
	}

	p := newParser(tokens)
	pred, next, ok := p.expression(0)
	if p.tooDeep {
		return nil, &SyntaxError{
			Query:   source,
			Token:   -1,
			Message: fmt.Sprintf("max depth %d", MaxExpressionDepth),
			Err:     ErrExpressionTooDeep,
		}
	}
	if !ok {
		return nil, &SyntaxError{Query: source, Token: p.furthest, Message: "malformed expression"}
	}

	if _, at, trailing := p.at(next); trailing {
		return nil, &SyntaxError{Query: source, Token: at, Message: "unexpected trailing tokens"}
	}

	return pred, nil
}

// MustCompile is like Compile but panics if source does not compile.
func MustCompile(source string) Predicate {
	p, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return p
}

// Filter returns the records that satisfy p, in their original order.
// A nil predicate matches everything.
func Filter(records []record.Record, p Predicate) []record.Record {
	if p == nil {
		return records
	}

	filtered := make([]record.Record, 0)
	for _, rec := range records {
		if p.Match(rec) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
