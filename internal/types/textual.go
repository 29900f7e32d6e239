package types

import (
	"net/mail"
	"regexp"
)

// TextKind classifies a text subtype.
type TextKind string

const (
	TextFree      TextKind = "free"
	TextRegexp    TextKind = "regexp"
	TextMediaType TextKind = "mediaType"
	TextDatetime  TextKind = "datetime"
	TextIRI       TextKind = "iri"
	TextEmail     TextKind = "email"
)

var (
	// mediaTypeName follows the restricted-name rule of RFC 6838.
	mediaTypeName = regexp.MustCompile(`(?i)^[a-z0-9][a-z0-9!#$&^_.+-]{0,126}/[a-z0-9][a-z0-9!#$&^_.+-]{0,126}$`)

	base64Data = regexp.MustCompile(`(?i)^(?:[a-z0-9+/]{4})*(?:[a-z0-9+/]{2}==|[a-z0-9+/]{3}=)?$`)
)

// textClassifiers are tried in order; the first that accepts the subtype
// decides its kind and pattern.
var textClassifiers = []struct {
	kind     TextKind
	classify func(spec string) (pattern string, ok bool)
}{
	{TextRegexp, func(spec string) (string, bool) {
		if len(spec) > 0 && spec[0] == '/' {
			return spec[1:], true
		}
		return "", false
	}},
	{TextMediaType, func(spec string) (string, bool) { return spec, mediaTypeName.MatchString(spec) }},
	{TextDatetime, keyword(string(TextDatetime))},
	{TextIRI, keyword(string(TextIRI))},
	{TextEmail, keyword(string(TextEmail))},
}

func keyword(word string) func(string) (string, bool) {
	return func(spec string) (string, bool) { return spec, spec == word }
}

// Textual is a parsed text subtype.
type Textual struct {
	Kind TextKind

	// Pattern is the classified part of the subtype: the expression for
	// TextRegexp, the media type for TextMediaType, the keyword otherwise.
	// It is empty for free text.
	Pattern string

	valid func(string) bool
}

// ParseTextual classifies a text subtype. Anything unrecognised, the
// empty string included, is free text.
func ParseTextual(spec string) *Textual {
	for _, c := range textClassifiers {
		if pattern, ok := c.classify(spec); ok {
			return &Textual{Kind: c.kind, Pattern: pattern, valid: textValidator(c.kind, pattern)}
		}
	}
	return &Textual{Kind: TextFree, valid: acceptAny}
}

func textValidator(kind TextKind, pattern string) func(string) bool {
	switch kind {
	case TextRegexp:
		re, err := regexp.Compile(`^(?:` + pattern + `)$`)
		if err != nil {
			return func(string) bool { return false }
		}
		return re.MatchString
	case TextMediaType:
		return base64Data.MatchString
	case TextDatetime:
		return IsDatetime
	case TextEmail:
		return isEmail
	default:
		return acceptAny
	}
}

func acceptAny(string) bool { return true }

// isEmail accepts a bare RFC 5322 address without a display name.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Name == "" && addr.Address == s
}

// Test reports whether x, which must be text, is valid.
func (t *Textual) Test(x any) (bool, error) {
	s, ok := x.(string)
	if !ok {
		return false, mismatch("text", x)
	}
	return t.valid(s), nil
}

// String renders the subtype as it would be written.
func (t *Textual) String() string {
	switch t.Kind {
	case TextFree:
		return ""
	case TextRegexp:
		return "/" + t.Pattern
	default:
		return t.Pattern
	}
}
