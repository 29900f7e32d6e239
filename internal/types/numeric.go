package types

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// NumberSet names the set a numeric type draws from.
type NumberSet string

const (
	SetInt   NumberSet = "int"
	SetFloat NumberSet = "float"
)

var (
	numericSet    = regexp.MustCompile(`^(int|float)\b`)
	numericRange  = regexp.MustCompile(`([[(])(.*),(.*)([\])])`)
	numericStep   = regexp.MustCompile(`/(.+)$`)
	numericNumber = regexp.MustCompile(`(?i)^-?\d+(?:\.\d+)?(?:e-?\d+)?$`)
)

// extractNumber parses s if it is an integer, decimal or exponential
// literal and returns fallback otherwise. Literals beyond float64 range
// become infinities of the same sign.
func extractNumber(s string, fallback float64) float64 {
	if !numericNumber.MatchString(s) {
		return fallback
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return fallback
	}
	return f
}

// Interval is a real interval whose ends are each open or closed.
//
// Min <= Max always holds, and an infinite end is never closed.
type Interval struct {
	Min, Max                   float64
	MinInclusive, MaxInclusive bool
}

// Unbounded is the interval (-inf, +inf).
var Unbounded = Interval{Min: math.Inf(-1), Max: math.Inf(1)}

// NewInterval builds an interval from its bracket spellings. When max is
// below min the whole interval is mirrored: each endpoint keeps its own
// bracket while trading sides.
func NewInterval(left byte, min, max float64, right byte) Interval {
	minClosed, maxClosed := left == '[', right == ']'
	if max < min {
		min, max = max, min
		minClosed, maxClosed = maxClosed, minClosed
	}

	return Interval{
		Min:          min,
		Max:          max,
		MinInclusive: minClosed && !math.IsInf(min, -1),
		MaxInclusive: maxClosed && !math.IsInf(max, 1),
	}
}

// Contains reports whether x lies in the interval.
func (iv Interval) Contains(x float64) bool {
	return (x > iv.Min || (iv.MinInclusive && x == iv.Min)) &&
		(x < iv.Max || (iv.MaxInclusive && x == iv.Max))
}

// Width is Max - Min.
func (iv Interval) Width() float64 { return iv.Max - iv.Min }

// String renders the interval in subtype syntax. Infinite ends are left
// empty, so [0,) is the non-negative reals.
func (iv Interval) String() string {
	var b strings.Builder
	if iv.MinInclusive {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	if !math.IsInf(iv.Min, 0) {
		b.WriteString(formatNumber(iv.Min))
	}
	b.WriteByte(',')
	if !math.IsInf(iv.Max, 0) {
		b.WriteString(formatNumber(iv.Max))
	}
	if iv.MaxInclusive {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Numeric is a parsed number subtype.
type Numeric struct {
	Set      NumberSet
	Interval Interval

	// Step, when non-zero, restricts members to Min + k*Step.
	Step float64

}

// ParseNumeric parses a number subtype of the form
//
//	set (min,max)/step
//
// Every part is optional. An omitted or unparsable endpoint is infinite
// and the set defaults to float. A step is kept only when the minimum is
// finite and 0 < step <= max-min.
func ParseNumeric(spec string) *Numeric {
	n := &Numeric{Set: SetFloat, Interval: Unbounded}

	if m := numericSet.FindStringSubmatch(spec); m != nil {
		n.Set = NumberSet(m[1])
	}

	m := numericRange.FindStringSubmatch(spec)
	if m == nil {
		return n
	}
	n.Interval = NewInterval(
		m[1][0],
		extractNumber(m[2], math.Inf(-1)),
		extractNumber(m[3], math.Inf(1)),
		m[4][0],
	)

	if math.IsInf(n.Interval.Min, -1) {
		return n
	}
	if s := numericStep.FindStringSubmatch(spec); s != nil {
		step := extractNumber(s[1], 0)
		if step > 0 && step <= n.Interval.Width() {
			n.Step = step
		}
	}

	return n
}

// Test reports whether x, which must be a number, is a member.
//
// The step check divides in floating point, so steps that are not exact
// binary fractions can reject values that are members on paper.
func (n *Numeric) Test(x any) (bool, error) {
	if record.KindOf(x) != record.KindNumber {
		return false, mismatch("number", x)
	}
	f, _ := record.ToFloat(x)

	if n.Set == SetInt && !isInteger(f) {
		return false, nil
	}
	if !n.Interval.Contains(f) {
		return false, nil
	}
	if n.Step > 0 && !isInteger((f-n.Interval.Min)/n.Step) {
		return false, nil
	}
	return true, nil
}

// String renders the parsed subtype in canonical form.
func (n *Numeric) String() string {
	s := string(n.Set)
	if n.Interval != Unbounded {
		s += n.Interval.String()
	}
	if n.Step > 0 {
		s += "/" + formatNumber(n.Step)
	}
	return s
}

func isInteger(f float64) bool {
	return math.Floor(f) == f
}
