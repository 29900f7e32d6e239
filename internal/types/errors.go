package types

import (
	"errors"
	"fmt"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

var (
	// ErrTypeMismatch is wrapped by every TypeError.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnknownPrimitive is returned for a primitive name with no validator.
	ErrUnknownPrimitive = errors.New("unknown primitive")

	// ErrInvalidSubtype is returned when a subtype has the wrong shape for
	// its primitive, such as a mapping given for a number.
	ErrInvalidSubtype = errors.New("invalid subtype")
)

// TypeError reports a value whose nominal type does not suit the validator.
type TypeError struct {
	Expected string
	Got      record.Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Got)
}

func (e *TypeError) Unwrap() error { return ErrTypeMismatch }

func mismatch(expected string, x any) error {
	return &TypeError{Expected: expected, Got: record.KindOf(x)}
}
