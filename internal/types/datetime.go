package types

import (
	"regexp"
	"strconv"
	"time"
)

// datetimePattern matches a calendar date, optionally followed by a time
// with a zone. The zone is Z, an offset, or Z followed by an offset.
var datetimePattern = regexp.MustCompile(
	`^(\d{4})-(\d{2})-(\d{2})` +
		`(?:[Tt](\d{2}):(\d{2}):(\d{2})(?:\.\d+)?` +
		`(?:[Zz]|[Zz]?[+-](\d{2}):(\d{2})))?$`)

// IsDatetime reports whether s is an ISO 8601 date (YYYY-MM-DD) or a full
// date-time with a zone, such as 1981-09-25T05:55:00Z or
// 1981-09-25t05:55:00.123z+00:00. Every field is range checked; the day
// must exist in its month.
func IsDatetime(s string) bool {
	m := datetimePattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}

	year, month, day := atoi(m[1]), atoi(m[2]), atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > daysIn(year, time.Month(month)) {
		return false
	}

	if m[4] == "" {
		return true
	}
	if atoi(m[4]) > 23 || atoi(m[5]) > 59 || atoi(m[6]) > 59 {
		return false
	}
	if m[7] != "" && (atoi(m[7]) > 23 || atoi(m[8]) > 59) {
		return false
	}
	return true
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// atoi parses a run of ASCII digits already vetted by the pattern.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
