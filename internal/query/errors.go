package query

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery is wrapped by every compilation failure.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidCoercion is returned when a literal cannot take the type of
	// the value it is compared with.
	ErrInvalidCoercion = errors.New("invalid coercion")

	// ErrQueryTooLong is returned when a query exceeds MaxQueryLength.
	ErrQueryTooLong = errors.New("query too long")

	// ErrTooManyTokens is returned when a query has more than MaxTokens tokens.
	ErrTooManyTokens = errors.New("too many tokens in query")

	// ErrExpressionTooDeep is returned when nesting exceeds MaxExpressionDepth.
	ErrExpressionTooDeep = errors.New("expression nesting too deep")
)

// SyntaxError describes why a query failed to compile.
type SyntaxError struct {
	// Query is the source that failed.
	Query string

	// Token is the index of the first token that could not be consumed,
	// or -1 when the failure is not tied to a token.
	Token int

	// Message is a human-readable description.
	Message string

	// Err is an underlying limit error, if any.
	Err error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Token >= 0 {
		return fmt.Sprintf("invalid query %q: %s (token %d)", e.Query, e.Message, e.Token)
	}
	return fmt.Sprintf("invalid query %q: %s", e.Query, e.Message)
}

// Is makes every SyntaxError match ErrInvalidQuery.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrInvalidQuery
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
