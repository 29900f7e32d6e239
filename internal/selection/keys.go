// Package selection narrows filter results: SelectKeys projects a record
// onto a comma-separated key list and Slice windows an ordered result set.
package selection

import (
	"regexp"
	"strings"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

var keySeparator = regexp.MustCompile(`\s*,\s*`)

// ParseKeys splits a comma-separated key list, dropping empty entries and
// repeats.
func ParseKeys(query string) []string {
	var keys []string
	seen := make(map[string]struct{})
	for _, key := range keySeparator.Split(strings.TrimSpace(query), -1) {
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// SelectKeys returns the sub-record of rec holding the keys named in query.
// When none of the keys is present the whole record is returned.
func SelectKeys(query string, rec record.Record) record.Record {
	out := make(record.Record)
	for _, key := range ParseKeys(query) {
		if v, ok := rec[key]; ok {
			out[key] = v
		}
	}
	if len(out) == 0 {
		return rec
	}
	return out
}
