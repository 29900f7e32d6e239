package selection

import (
	"regexp"
	"strconv"
)

var sliceFormat = regexp.MustCompile(`^(\d*):(\d*)$`)

// ParseSlice reads a "min:max" range into zero, one or two bounds.
//
//	":"    []        the whole sequence
//	"1:"   [1]       from index 1 to the end
//	":5"   [0 5]
//	"5:1"  [1 5]     inverted bounds are swapped
//	"1:1"  [1]       equal bounds leave the end open
//
// Text in any other form, or bounds too large to index with, select the
// whole sequence.
func ParseSlice(s string) []int {
	m := sliceFormat.FindStringSubmatch(s)
	if m == nil {
		return []int{}
	}

	lo, open := 0, true
	hi := 0
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return []int{}
		}
		lo = n
	}
	if m[2] != "" {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return []int{}
		}
		hi, open = n, false
	}

	if !open && lo > hi {
		lo, hi = hi, lo
	}
	if !open && lo == hi {
		open = true
	}

	switch {
	case open && lo == 0:
		return []int{}
	case open:
		return []int{lo}
	default:
		return []int{lo, hi}
	}
}

// Slice applies bounds from ParseSlice to items. Bounds past the end are
// clamped, so the result may be shorter than asked for or empty.
func Slice[T any](items []T, bounds []int) []T {
	lo, hi := 0, len(items)
	if len(bounds) > 0 {
		lo = min(bounds[0], len(items))
	}
	if len(bounds) > 1 {
		hi = min(bounds[1], len(items))
	}
	return items[lo:hi]
}
