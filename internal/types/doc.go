// Package types validates scalar values against declared type subtypes.
//
// A subtype specification is a short string bound to a primitive:
//
//	number  int(0,8]   float[-5,5]/0.25   int[0,)/2
//	text    ""  /^[a-z]+$  image/png  datetime  iri  email
//	enum    a mapping of option names to display labels
//
// Parsing never fails: malformed parts fall back to the widest reading
// (an unbounded float, free text, or an enumeration with no options).
// Parsed validators are immutable and safe for concurrent use.
package types
