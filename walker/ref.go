package walker

// RefInfo contains information about a $ref encountered during traversal.
type RefInfo struct {
	// Ref is the $ref value (e.g., "#/components/schemas/User")
	Ref string

	// JSONPath is the pointer of the object holding the $ref
	JSONPath string

	// Local is true when the reference stays inside the document ("#/...")
	Local bool

	// Line is the source line of the value, 0 for JSON input
	Line int
}

// RefHandler is called when a $ref is encountered during traversal.
// Return Stop to halt traversal, Continue to proceed.
type RefHandler func(wc *WalkContext, ref *RefInfo) Action
