package query

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// falsy holds the lower-cased texts that coerce to false.
var falsy = map[string]struct{}{
	"false": {},
	"null":  {},
	"no":    {},
	"f":     {},
	"n":     {},
	"0":     {},
	"":      {},
}

// Coerce converts source into the type of target.
//
//	text     source unchanged
//	number   source parsed as a float; unparsable text yields NaN
//	boolean  false for false/null/no/f/n/0/"" (any case), otherwise true
//	null     nil for "", otherwise ErrInvalidCoercion
//
// Any other target yields ErrInvalidCoercion.
func Coerce(source string, target any) (any, error) {
	switch record.KindOf(target) {
	case record.KindString:
		return source, nil

	case record.KindNumber:
		return parseNumber(source), nil

	case record.KindBool:
		_, isFalse := falsy[strings.ToLower(strings.TrimSpace(source))]
		return !isFalse, nil

	case record.KindNull:
		if source == "" {
			return nil, nil
		}
		return nil, ErrInvalidCoercion

	default:
		return nil, ErrInvalidCoercion
	}
}

// decimalNumber is the only literal form a numeric coercion accepts.
// Infinities, NaN and hex floats are text.
var decimalNumber = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?$`)

// parseNumber parses text the way a numeric coercion does: surrounding
// space is ignored, blank text is zero and anything that is not a decimal
// literal is NaN. Literals too large for a float64 become infinities.
func parseNumber(source string) float64 {
	s := strings.TrimSpace(source)
	if s == "" {
		return 0
	}
	if !decimalNumber.MatchString(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

// compareScalars orders a record value against a coerced literal of the
// same kind. ok is false when the pair has no defined order, which is the
// case whenever a NaN is involved.
func compareScalars(value, literal any) (cmp int, ok bool) {
	switch v := value.(type) {
	case string:
		l, isString := literal.(string)
		if !isString {
			return 0, false
		}
		return strings.Compare(v, l), true

	case bool:
		l, isBool := literal.(bool)
		if !isBool {
			return 0, false
		}
		switch {
		case v == l:
			return 0, true
		case !v:
			return -1, true
		default:
			return 1, true
		}

	case nil:
		if literal != nil {
			return 0, false
		}
		return 0, true
	}

	v, isNumber := record.ToFloat(value)
	l, litNumber := record.ToFloat(literal)
	if !isNumber || !litNumber || math.IsNaN(v) || math.IsNaN(l) {
		return 0, false
	}
	switch {
	case v < l:
		return -1, true
	case v > l:
		return 1, true
	default:
		return 0, true
	}
}

// formatScalar renders a scalar as text for wildcard matching.
func formatScalar(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case nil:
		return "null", true
	}
	if f, ok := record.ToFloat(value); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}
