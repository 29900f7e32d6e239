// Package record defines the keyed records that queries are evaluated
// against and the helpers that decode and encode them.
//
// A record is a string-keyed map of scalar values. Scalars are one of:
//
//	text     string
//	number   float64 (integer kinds and json.Number are normalized to it)
//	boolean  bool
//	null     nil
//
// Values of any other shape may appear in a decoded record (nested objects
// or arrays from a JSON source, for example). They are carried through
// unchanged but classify as KindOther, which no comparator ever matches.
//
// ENCODING:
//
// MarshalCanonical produces deterministic JSON for records: object keys are
// sorted by UTF-16 code units (RFC 8785), strings are NFC normalized and
// HTML characters are not escaped. The store and the JSON Lines writer use
// it so that the same record always serializes to the same bytes.
package record
