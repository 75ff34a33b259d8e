package document

// Encoding is the surface syntax of a document.
type Encoding int

const (
	// EncodingYAML is the default for anything not starting with '{'.
	EncodingYAML Encoding = iota
	// EncodingJSON is used when the trimmed text starts with '{'.
	EncodingJSON
)

// String returns the string representation of the encoding.
func (e Encoding) String() string {
	if e == EncodingJSON {
		return "json"
	}
	return "yaml"
}

// MarshalText implements encoding.TextMarshaler.
func (e Encoding) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Family is the specification family of a document.
type Family int

const (
	// FamilyUnknown means neither discriminator was found or the text did not parse.
	FamilyUnknown Family = iota
	// FamilySwagger2 is Swagger / OpenAPI 2.0.
	FamilySwagger2
	// FamilyOpenAPI3 is OpenAPI 3.x.
	FamilyOpenAPI3
)

// String returns the string representation of the family.
func (f Family) String() string {
	switch f {
	case FamilySwagger2:
		return "swagger2"
	case FamilyOpenAPI3:
		return "openapi3"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Other returns the opposite family, used for the wrong-family fallback.
// FamilyUnknown has no opposite.
func (f Family) Other() Family {
	switch f {
	case FamilySwagger2:
		return FamilyOpenAPI3
	case FamilyOpenAPI3:
		return FamilySwagger2
	default:
		return FamilyUnknown
	}
}

// Discriminator returns the top-level key that identifies the family.
func (f Family) Discriminator() string {
	switch f {
	case FamilySwagger2:
		return "swagger"
	case FamilyOpenAPI3:
		return "openapi"
	default:
		return ""
	}
}

// Label returns the human-readable family name used in messages.
func (f Family) Label() string {
	switch f {
	case FamilySwagger2:
		return "Swagger"
	case FamilyOpenAPI3:
		return "OpenAPI"
	default:
		return "API"
	}
}
