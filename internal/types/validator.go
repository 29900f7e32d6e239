package types

// Validator tests candidate values against a parsed subtype.
type Validator interface {
	// Test reports whether x belongs to the type. Validators for numbers
	// and text return a *TypeError when x has a different nominal type.
	Test(x any) (bool, error)

	// String renders the subtype specification.
	String() string
}
