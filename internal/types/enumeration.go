package types

import (
	"slices"
	"strings"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// Option is one member of an enumeration.
type Option struct {
	Name  string
	Label string
}

// Enumeration accepts exactly the names of its options.
type Enumeration struct {
	Options []Option
}

// ParseEnumeration builds an enumeration from a mapping of option names to
// text labels. A []Option keeps its order; the names of a Go map are
// sorted. A spec of any other shape, or a mapping with a non-text label,
// yields an enumeration with no options.
func ParseEnumeration(spec any) *Enumeration {
	switch s := spec.(type) {
	case []Option:
		return &Enumeration{Options: slices.Clone(s)}

	case map[string]string:
		e := &Enumeration{}
		for name, label := range s {
			e.Options = append(e.Options, Option{Name: name, Label: label})
		}
		e.sort()
		return e

	case record.Record:
		return ParseEnumeration(map[string]any(s))

	case map[string]any:
		e := &Enumeration{}
		for name, label := range s {
			text, ok := label.(string)
			if !ok {
				return &Enumeration{}
			}
			e.Options = append(e.Options, Option{Name: name, Label: text})
		}
		e.sort()
		return e

	default:
		return &Enumeration{}
	}
}

func (e *Enumeration) sort() {
	slices.SortFunc(e.Options, func(a, b Option) int { return strings.Compare(a.Name, b.Name) })
}

// Names returns the option names in order.
func (e *Enumeration) Names() []string {
	names := make([]string, len(e.Options))
	for i, o := range e.Options {
		names[i] = o.Name
	}
	return names
}

// Test reports whether x is the name of an option. Comparison is case
// sensitive. Values that are not text are never members; this is not an
// error.
func (e *Enumeration) Test(x any) (bool, error) {
	s, ok := x.(string)
	if !ok {
		return false, nil
	}
	return slices.ContainsFunc(e.Options, func(o Option) bool { return o.Name == s }), nil
}

func (e *Enumeration) String() string {
	return "{" + strings.Join(e.Names(), ",") + "}"
}
