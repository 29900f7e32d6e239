// Package schema declares the expected shape of records and validates
// records against it.
//
// A schema names fields, gives each a type definition and lists the
// fields every record must carry:
//
//	fields:
//	  size: {type: number, subtype: "int[0,)"}
//	  name: {type: text, subtype: "/^[a-z]+$"}
//	  kind: {type: enum, options: {bam: BAM file, cram: CRAM file}}
//	required: [name]
//
// Schemas are read from YAML or CUE files. Keys a record carries that the
// schema does not name are ignored.
package schema

import (
	"errors"
	"fmt"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
	"github.com/wtsi-hgi/yggdrasil/internal/types"
)

// Validation error codes (E200-E209)
const (
	ErrMissingRequired = "E201" // required field absent
	ErrInvalidValue    = "E202" // value fails its subtype
	ErrWrongType       = "E203" // value has another primitive type
)

// ValidationError describes one way a record fails its schema.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Field is a named type definition.
type Field struct {
	Name       string
	Definition types.Definition

	validator types.Validator
}

// Schema is a parsed record schema.
type Schema struct {
	// Fields are kept in declaration order.
	Fields   []Field
	Required []string
}

// New builds a schema from field definitions, parsing every subtype.
func New(fields []Field, required []string) (*Schema, error) {
	s := &Schema{Fields: make([]Field, 0, len(fields)), Required: required}
	seen := make(map[string]bool, len(fields))

	for _, f := range fields {
		if seen[f.Name] {
			return nil, fmt.Errorf("field %q: declared twice", f.Name)
		}
		seen[f.Name] = true

		v, err := f.Definition.Validator()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		f.validator = v
		s.Fields = append(s.Fields, f)
	}

	for _, name := range required {
		if !seen[name] {
			return nil, fmt.Errorf("required field %q is not declared", name)
		}
	}

	return s, nil
}

// Validate checks rec against the schema. It returns every problem found,
// or nil when the record conforms.
func (s *Schema) Validate(rec record.Record) []ValidationError {
	var errs []ValidationError

	// E201: required fields present
	for _, name := range s.Required {
		if _, ok := rec[name]; !ok {
			errs = append(errs, ValidationError{
				Field:   name,
				Message: "required field is missing",
				Code:    ErrMissingRequired,
			})
		}
	}

	// E202/E203: present fields satisfy their definitions
	for _, f := range s.Fields {
		value, ok := rec[f.Name]
		if !ok {
			continue
		}

		valid, err := f.validator.Test(value)
		var typeErr *types.TypeError
		switch {
		case errors.As(err, &typeErr):
			errs = append(errs, ValidationError{
				Field:   f.Name,
				Message: typeErr.Error(),
				Code:    ErrWrongType,
			})
		case err != nil:
			errs = append(errs, ValidationError{
				Field:   f.Name,
				Message: err.Error(),
				Code:    ErrInvalidValue,
			})
		case !valid:
			errs = append(errs, ValidationError{
				Field:   f.Name,
				Message: fmt.Sprintf("%v is not a valid %s", value, describe(f)),
				Code:    ErrInvalidValue,
			})
		}
	}

	return errs
}

// describe renders a field's type for diagnostics, e.g. "number int[0,)".
func describe(f Field) string {
	if spec := f.validator.String(); spec != "" {
		return string(f.Definition.Primitive) + " " + spec
	}
	return string(f.Definition.Primitive)
}
