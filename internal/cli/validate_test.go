package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtsi-hgi/yggdrasil/internal/schema"
	"github.com/wtsi-hgi/yggdrasil/internal/testutil"
)

const schemaFile = "testdata/schema.yaml"

func TestValidate_FailuresGolden(t *testing.T) {
	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), schemaFile, recordsFile)

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "2 of 5 record(s) invalid")
	testutil.AssertGolden(t, "validate_failures", []byte(out))
}

func TestValidate_FailuresJSON(t *testing.T) {
	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), schemaFile, recordsFile)
	require.Error(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	assert.Equal(t, 5, resp.Data.Records)
	require.Len(t, resp.Data.Failures, 2)
	assert.Equal(t, 4, resp.Data.Failures[0].Index)
	assert.Equal(t, 5, resp.Data.Failures[1].Index)
	assert.Equal(t, schema.ValidationError{
		Field:   "name",
		Message: "required field is missing",
		Code:    schema.ErrMissingRequired,
	}, resp.Data.Failures[1].Errors[0])
	require.NotNil(t, resp.Error)
	assert.Equal(t, schema.ErrInvalidValue, resp.Error.Code)
}

func TestValidate_Valid(t *testing.T) {
	path := writeRecords(t)

	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), schemaFile, path)
	require.NoError(t, err)
	assert.Equal(t, "✓ 2 record(s) valid\n", out)
}

func TestValidate_ValidJSON(t *testing.T) {
	path := writeRecords(t)

	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), schemaFile, path)
	require.NoError(t, err)
	assert.Equal(t, `{"status":"ok","data":{"valid":true,"records":2}}`+"\n", out)
}

func TestValidate_CUESchema(t *testing.T) {
	cueSchema := testutil.TempFile(t, "schema.cue", `
fields: {
	name: {type: "text", subtype: "/^[a-z0-9_]+$"}
	size: {type: "number", subtype: "int[0,)"}
}
required: ["name"]
`)

	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), cueSchema, writeRecords(t))
	require.NoError(t, err)
	assert.Equal(t, "✓ 2 record(s) valid\n", out)
}

func TestValidate_SchemaErrors(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		code   string
	}{
		{"missing schema", filepath.Join(t.TempDir(), "missing.yaml"), schema.ErrCodeNotFound},
		{"malformed schema", testutil.TempFile(t, "bad.yaml", "fields: [\n"), schema.ErrCodeParseFailed},
		{"unknown primitive", testutil.TempFile(t, "bad.yaml", "fields:\n  x:\n    type: collection\n"), schema.ErrCodeInvalidDefinition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), tt.schema, recordsFile)

			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.code)
			assert.Contains(t, errOut, "Error ["+tt.code+"]")
		})
	}
}

func TestValidate_SourceErrors(t *testing.T) {
	_, errOut, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), schemaFile, "testdata/missing.jsonl")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E302]")

	_, errOut, err = execute(NewValidateCommand(&RootOptions{Format: "text"}), schemaFile)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "no record source")
}
