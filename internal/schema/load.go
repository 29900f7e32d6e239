package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/wtsi-hgi/yggdrasil/internal/types"
)

// Load error codes (E210-E219)
const (
	ErrCodeNotFound          = "E210" // schema file missing or unreadable
	ErrCodeParseFailed       = "E211" // not valid YAML or CUE
	ErrCodeInvalidDefinition = "E212" // well-formed but not a valid schema
)

// LoadError represents an error that occurred while loading a schema.
type LoadError struct {
	Code    string
	Message string

	// Path, Line and Column locate the problem when known.
	Path         string
	Line, Column int
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Path, e.Line, e.Column, e.Code, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load reads a schema file. The format follows the extension: .yaml and
// .yml are YAML, .cue is CUE.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		msg := fmt.Sprintf("reading schema: %v", err)
		if errors.Is(err, fs.ErrNotExist) {
			msg = "schema file not found"
		}
		return nil, &LoadError{Code: ErrCodeNotFound, Message: msg, Path: path}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	case ".cue":
		return ParseCUE(path, data)
	default:
		return nil, &LoadError{
			Code:    ErrCodeParseFailed,
			Message: fmt.Sprintf("unsupported schema format %q (want .yaml, .yml or .cue)", ext),
			Path:    path,
		}
	}
}

// yamlDocument is the top level of a YAML schema. Fields stay as a node so
// that declaration order survives decoding.
type yamlDocument struct {
	Fields   yaml.Node `yaml:"fields"`
	Required []string  `yaml:"required"`
}

type yamlField struct {
	Type    string    `yaml:"type"`
	Subtype yaml.Node `yaml:"subtype"`
	Options yaml.Node `yaml:"options"`
}

// ParseYAML parses a YAML schema. path is used only in errors.
func ParseYAML(path string, data []byte) (*Schema, error) {
	var doc yamlDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: err.Error(), Path: path}
	}

	if doc.Fields.Kind != yaml.MappingNode {
		return nil, &LoadError{Code: ErrCodeInvalidDefinition, Message: "fields must be a mapping", Path: path}
	}

	var fields []Field
	for i := 0; i+1 < len(doc.Fields.Content); i += 2 {
		name, body := doc.Fields.Content[i], doc.Fields.Content[i+1]
		invalid := func(format string, args ...any) error {
			return &LoadError{
				Code:    ErrCodeInvalidDefinition,
				Message: fmt.Sprintf("field %q: ", name.Value) + fmt.Sprintf(format, args...),
				Path:    path,
				Line:    body.Line,
				Column:  body.Column,
			}
		}

		var f yamlField
		if err := body.Decode(&f); err != nil {
			return nil, invalid("%v", err)
		}

		def := types.Definition{Primitive: types.Primitive(f.Type)}
		switch {
		case !f.Options.IsZero():
			opts, err := yamlOptions(&f.Options)
			if err != nil {
				return nil, invalid("%v", err)
			}
			def.Subtype = opts
		case f.Subtype.Kind == yaml.MappingNode:
			opts, err := yamlOptions(&f.Subtype)
			if err != nil {
				return nil, invalid("%v", err)
			}
			def.Subtype = opts
		case !f.Subtype.IsZero():
			var subtype any
			if err := f.Subtype.Decode(&subtype); err != nil {
				return nil, invalid("%v", err)
			}
			def.Subtype = subtype
		}
		if _, err := def.Validator(); err != nil {
			return nil, invalid("%v", err)
		}

		fields = append(fields, Field{Name: name.Value, Definition: def})
	}

	s, err := New(fields, doc.Required)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidDefinition, Message: err.Error(), Path: path}
	}
	return s, nil
}

// yamlOptions reads an enumeration mapping, keeping declaration order.
func yamlOptions(node *yaml.Node) ([]types.Option, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("options must be a mapping of names to labels")
	}

	opts := make([]types.Option, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, label := node.Content[i], node.Content[i+1]
		if label.Kind != yaml.ScalarNode || label.Tag != "!!str" {
			return nil, fmt.Errorf("option %q: label must be text", name.Value)
		}
		opts = append(opts, types.Option{Name: name.Value, Label: label.Value})
	}
	return opts, nil
}

// ParseCUE parses a CUE schema. path is used only in errors.
func ParseCUE(path string, data []byte) (*Schema, error) {
	v := cuecontext.New().CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, cueLoadError(ErrCodeParseFailed, path, err)
	}

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return nil, &LoadError{Code: ErrCodeInvalidDefinition, Message: "fields is required", Path: path}
	}

	iter, err := fieldsVal.Fields()
	if err != nil {
		return nil, cueLoadError(ErrCodeInvalidDefinition, path, err)
	}

	var fields []Field
	for iter.Next() {
		f, err := cueField(iter.Label(), iter.Value())
		if err != nil {
			return nil, cueLoadError(ErrCodeInvalidDefinition, path, err)
		}
		fields = append(fields, f)
	}

	var required []string
	if req := v.LookupPath(cue.ParsePath("required")); req.Exists() {
		if err := req.Decode(&required); err != nil {
			return nil, cueLoadError(ErrCodeInvalidDefinition, path, err)
		}
	}

	s, err := New(fields, required)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidDefinition, Message: err.Error(), Path: path}
	}
	return s, nil
}

func cueField(name string, v cue.Value) (Field, error) {
	typ, err := v.LookupPath(cue.ParsePath("type")).String()
	if err != nil {
		return Field{}, fieldError(name, v, err)
	}
	def := types.Definition{Primitive: types.Primitive(typ)}

	options := v.LookupPath(cue.ParsePath("options"))
	subtype := v.LookupPath(cue.ParsePath("subtype"))
	switch {
	case options.Exists():
		opts, err := cueOptions(options)
		if err != nil {
			return Field{}, fieldError(name, options, err)
		}
		def.Subtype = opts
	case subtype.Exists() && subtype.IncompleteKind() == cue.StructKind:
		opts, err := cueOptions(subtype)
		if err != nil {
			return Field{}, fieldError(name, subtype, err)
		}
		def.Subtype = opts
	case subtype.Exists():
		s, err := subtype.String()
		if err != nil {
			return Field{}, fieldError(name, subtype, err)
		}
		def.Subtype = s
	}
	if _, err := def.Validator(); err != nil {
		return Field{}, fieldError(name, v, err)
	}

	return Field{Name: name, Definition: def}, nil
}

func cueOptions(v cue.Value) ([]types.Option, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, err
	}

	var opts []types.Option
	for iter.Next() {
		label, err := iter.Value().String()
		if err != nil {
			return nil, fmt.Errorf("option %q: label must be text", iter.Label())
		}
		opts = append(opts, types.Option{Name: iter.Label(), Label: label})
	}
	return opts, nil
}

// fieldError attaches a field name and the value's position to err.
func fieldError(name string, v cue.Value, err error) error {
	return cueerrors.Newf(v.Pos(), "field %q: %v", name, err)
}

// cueLoadError converts a CUE error into a LoadError, keeping the first
// position the error reports.
func cueLoadError(code, path string, err error) *LoadError {
	le := &LoadError{Code: code, Message: err.Error(), Path: path}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return le
	}
	le.Message = errs[0].Error()
	for _, pos := range cueerrors.Positions(errs[0]) {
		if pos.IsValid() {
			le.Line, le.Column = pos.Line(), pos.Column()
			break
		}
	}
	return le
}
