package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
	"github.com/wtsi-hgi/yggdrasil/internal/types"
)

func TestLoad_Formats(t *testing.T) {
	for _, path := range []string{"testdata/files.yaml", "testdata/files.cue"} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			s, err := Load(path)
			require.NoError(t, err)

			var names []string
			for _, f := range s.Fields {
				names = append(names, f.Name)
			}
			assert.Equal(t, []string{"name", "size", "kind", "created", "owner", "archived"}, names)
			assert.Equal(t, []string{"name", "size"}, s.Required)

			kind := s.Fields[2].Definition
			assert.Equal(t, types.PrimitiveEnum, kind.Primitive)
			assert.Equal(t, []types.Option{{Name: "cram", Label: "CRAM file"}, {Name: "bam", Label: "BAM file"}}, kind.Subtype)

			assert.Empty(t, s.Validate(record.Record{
				"name":     "sample_1.cram",
				"size":     1024.0,
				"kind":     "cram",
				"created":  "2015-04-13T10:00:00Z",
				"owner":    "someone@example.com",
				"archived": false,
			}))

			errs := s.Validate(record.Record{"name": "x", "created": "yesterday", "archived": "no"})
			var codes []string
			for _, e := range errs {
				codes = append(codes, e.Code)
			}
			assert.Equal(t, []string{ErrMissingRequired, ErrInvalidValue, ErrWrongType}, codes)
		})
	}
}

func writeSchema(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    string
	}{
		{"unsupported extension", "schema.json", `{}`, ErrCodeParseFailed},
		{"bad yaml", "schema.yaml", "fields: [unclosed", ErrCodeParseFailed},
		{"unknown yaml key", "schema.yaml", "fields: {}\nrequried: [a]\n", ErrCodeParseFailed},
		{"fields not a mapping", "schema.yaml", "fields: [a, b]\n", ErrCodeInvalidDefinition},
		{"unknown primitive", "schema.yaml", "fields:\n  a: {type: blob}\n", ErrCodeInvalidDefinition},
		{"numeric subtype not text", "schema.yaml", "fields:\n  a: {type: number, subtype: 5}\n", ErrCodeInvalidDefinition},
		{"option label not text", "schema.yaml", "fields:\n  a: {type: enum, options: {x: 1}}\n", ErrCodeInvalidDefinition},
		{"undeclared required", "schema.yaml", "fields:\n  a: {type: bool}\nrequired: [b]\n", ErrCodeInvalidDefinition},
		{"bad cue", "schema.cue", "fields: {", ErrCodeParseFailed},
		{"cue without fields", "schema.cue", "required: []\n", ErrCodeInvalidDefinition},
		{"cue type not text", "schema.cue", "fields: a: type: 5\n", ErrCodeInvalidDefinition},
		{"cue unknown primitive", "schema.cue", "fields: a: type: \"blob\"\n", ErrCodeInvalidDefinition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeSchema(t, tt.file, tt.content))
			require.Error(t, err)

			var le *LoadError
			require.True(t, errors.As(err, &le), "got %T: %v", err, err)
			assert.Equal(t, tt.code, le.Code, le.Error())
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeNotFound, le.Code)
	assert.Contains(t, le.Error(), "schema file not found")
}

func TestLoad_YAMLPosition(t *testing.T) {
	path := writeSchema(t, "schema.yaml", "fields:\n  ok: {type: bool}\n  bad: {type: number, subtype: [1]}\n")
	_, err := Load(path)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeInvalidDefinition, le.Code)
	assert.Equal(t, 3, le.Line)
	assert.Contains(t, le.Message, `field "bad"`)
}

func TestLoad_CUEPosition(t *testing.T) {
	path := writeSchema(t, "schema.cue", "fields: {\n\tok: {type: \"bool\"}\n\tbad: {type: 5}\n}\n")
	_, err := Load(path)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeInvalidDefinition, le.Code)
	assert.Equal(t, 3, le.Line)
}
