package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
	"github.com/wtsi-hgi/yggdrasil/internal/selection"
	"github.com/wtsi-hgi/yggdrasil/internal/types"
)

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Type   string       `json:"type"`
	Valid  bool         `json:"valid"`
	Values []CheckValue `json:"values"`
}

// CheckValue is the outcome for one value.
type CheckValue struct {
	Value any    `json:"value"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <primitive> <subtype> <value>...",
		Short: "Test values against a type definition",
		Long: `Test literal values against a type definition.

primitive is one of null, text, number, bool or enum. subtype is the
specification for that primitive and may be empty:

  number  int[0,)/2   float(0,1]   int
  text    /^[a-z]+$   datetime   email   iri   image/png
  enum    bam,cram    {"bam":"BAM file","cram":"CRAM file"}

Values for text and enum are taken as written. Values for other
primitives are read as JSON literals (12, 1.5, true, null), falling back
to text when they do not parse.

Exits 1 if any value fails.

Example:
  yggdrasil check number 'int(0,8]' 1 8 9
  yggdrasil check text datetime 2024-02-29T12:00:00Z`,
		Args:          cobra.MinimumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], args[1], args[2:], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, primitive, subtype string, values []string, cmd *cobra.Command) error {
	formatter := newOutputFormatter(opts, cmd)

	validator, err := types.ParseDefinition(primitive, checkSubtype(primitive, subtype))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidType, err)
	}

	result := CheckResult{
		Type:   strings.TrimSpace(primitive + " " + validator.String()),
		Valid:  true,
		Values: make([]CheckValue, 0, len(values)),
	}
	formatter.VerboseLog("Checking %d value(s) against %s", len(values), result.Type)

	for _, arg := range values {
		value := checkLiteral(primitive, arg)
		outcome := CheckValue{Value: value}

		ok, err := validator.Test(value)
		var typeErr *types.TypeError
		switch {
		case errors.As(err, &typeErr):
			outcome.Error = typeErr.Error()
		case err != nil:
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, err)
		default:
			outcome.Valid = ok
		}

		result.Valid = result.Valid && outcome.Valid
		result.Values = append(result.Values, outcome)
	}

	if err := outputCheckResult(formatter, result); err != nil {
		return err
	}
	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: not every value is valid", result.Type))
	}
	return nil
}

// checkSubtype turns the subtype argument into what ParseDefinition wants.
// An enum subtype is either a JSON object of labels or a list of names.
func checkSubtype(primitive, subtype string) any {
	if types.Primitive(primitive) != types.PrimitiveEnum {
		return subtype
	}

	if options, ok := labelledOptions(subtype); ok {
		return options
	}

	names := selection.ParseKeys(subtype)
	options := make([]types.Option, 0, len(names))
	for _, name := range names {
		if name != "" {
			options = append(options, types.Option{Name: name, Label: name})
		}
	}
	return options
}

// labelledOptions reads a JSON object of option labels, keeping the order
// the names are written in. A repeated name keeps its first position and
// its last label. Any label that is not text leaves no options. ok is
// false when subtype is not a single JSON object.
func labelledOptions(subtype string) (options []types.Option, ok bool) {
	dec := json.NewDecoder(strings.NewReader(subtype))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, false
	}

	options = []types.Option{}
	index := make(map[string]int)
	textual := true
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		name, _ := tok.(string)

		var label any
		if err := dec.Decode(&label); err != nil {
			return nil, false
		}
		text, isText := label.(string)
		if !isText {
			textual = false
			continue
		}
		if i, seen := index[name]; seen {
			options[i].Label = text
			continue
		}
		index[name] = len(options)
		options = append(options, types.Option{Name: name, Label: text})
	}

	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	if !textual {
		return []types.Option{}, true
	}
	return options, true
}

func checkLiteral(primitive, arg string) any {
	switch types.Primitive(primitive) {
	case types.PrimitiveText, types.PrimitiveEnum:
		return arg
	}

	var value any
	if err := json.Unmarshal([]byte(arg), &value); err != nil {
		return arg
	}
	return value
}

func outputCheckResult(formatter *OutputFormatter, result CheckResult) error {
	if formatter.Format == "json" {
		status := "ok"
		if !result.Valid {
			status = "error"
		}
		return json.NewEncoder(formatter.Writer).Encode(CLIResponse{Status: status, Data: result})
	}

	for _, v := range result.Values {
		mark := "✓"
		if !v.Valid {
			mark = "✗"
		}
		line := fmt.Sprintf("%s %s", mark, describeValue(v.Value))
		if v.Error != "" {
			line += ": " + v.Error
		}
		fmt.Fprintln(formatter.Writer, line)
	}
	return nil
}

func describeValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := record.MarshalCanonical(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
