package types

import (
	"fmt"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// Primitive names the nominal type of a value.
type Primitive string

const (
	PrimitiveNull   Primitive = "null"
	PrimitiveText   Primitive = "text"
	PrimitiveNumber Primitive = "number"
	PrimitiveBool   Primitive = "bool"
	PrimitiveEnum   Primitive = "enum"
)

// Primitives lists every primitive ParseDefinition accepts.
var Primitives = []Primitive{PrimitiveNull, PrimitiveText, PrimitiveNumber, PrimitiveBool, PrimitiveEnum}

// Definition declares the type of a record field.
type Definition struct {
	Primitive Primitive `json:"type" yaml:"type"`

	// Subtype is a specification string for text and number, or the
	// option mapping for enum. It is ignored for null and bool.
	Subtype any `json:"subtype,omitempty" yaml:"subtype,omitempty"`
}

// Validator parses the definition.
func (d Definition) Validator() (Validator, error) {
	return ParseDefinition(string(d.Primitive), d.Subtype)
}

// ParseDefinition returns the validator for a primitive and its subtype.
func ParseDefinition(primitive string, subtype any) (Validator, error) {
	switch Primitive(primitive) {
	case PrimitiveNull:
		return nullType{}, nil
	case PrimitiveBool:
		return boolType{}, nil
	case PrimitiveEnum:
		return ParseEnumeration(subtype), nil
	case PrimitiveText:
		spec, err := subtypeString(primitive, subtype)
		if err != nil {
			return nil, err
		}
		return ParseTextual(spec), nil
	case PrimitiveNumber:
		spec, err := subtypeString(primitive, subtype)
		if err != nil {
			return nil, err
		}
		return ParseNumeric(spec), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrimitive, primitive)
	}
}

func subtypeString(primitive string, subtype any) (string, error) {
	switch s := subtype.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %s subtype must be text, got %s", ErrInvalidSubtype, primitive, record.KindOf(subtype))
	}
}

type nullType struct{}

func (nullType) Test(x any) (bool, error) {
	if x != nil {
		return false, mismatch("null", x)
	}
	return true, nil
}

func (nullType) String() string { return "" }

type boolType struct{}

func (boolType) Test(x any) (bool, error) {
	if _, ok := x.(bool); !ok {
		return false, mismatch("boolean", x)
	}
	return true, nil
}

func (boolType) String() string { return "" }
