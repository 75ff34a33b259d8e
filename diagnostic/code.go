package diagnostic

// Kind groups codes into the failure categories of a document check.
type Kind string

const (
	KindDocumentUnparsable Kind = "DOCUMENT_UNPARSABLE"
	KindFamilyUnrecognized Kind = "FAMILY_UNRECOGNIZED"
	KindTitleMissing       Kind = "TITLE_MISSING"
	KindWrongFamily        Kind = "WRONG_FAMILY"
	KindResolver           Kind = "RESOLVER_DIAGNOSTIC"
	KindSemantic           Kind = "SEMANTIC_VIOLATION"
	KindIOFailure          Kind = "IO_FAILURE"
)

// Code identifies one diagnostic in the closed taxonomy.
type Code string

const (
	// Classification
	CodeDocumentUnparsable Code = "DOCUMENT_UNPARSABLE"
	CodeFamilyUnrecognized Code = "FAMILY_UNRECOGNIZED"
	CodeTitleMissing       Code = "TITLE_MISSING"

	// Wrong family, reported by the resolver of the other family
	CodeSwaggerMissing Code = "SWAGGER_MISSING"
	CodeOpenAPIMissing Code = "OPENAPI_MISSING"

	// Resolver messages
	CodeMalformed        Code = "MALFORMED"
	CodeRemoteRef        Code = "REMOTE_REF"
	CodeSchemaRef        Code = "SCHEMA_REF"
	CodeSchemaUnexpected Code = "SCHEMA_UNEXPECTED"
	CodeGeneric          Code = "GENERIC"
	// CodeUnrenderable is raised when the resolver returns neither a document nor a message.
	CodeUnrenderable Code = "UNRENDERABLE"

	// Semantic checks
	CodeEmptyPaths      Code = "EMPTY_PATHS"
	CodeEmptyOperations Code = "EMPTY_OPERATIONS"
	CodeNullOperation   Code = "NULL_OPERATION"
	CodeDuplicatePath   Code = "DUPLICATE_PATH"

	CodeIOFailure Code = "IO_FAILURE"
)

// Codes lists every code in taxonomy order.
var Codes = []Code{
	CodeDocumentUnparsable, CodeFamilyUnrecognized, CodeTitleMissing,
	CodeSwaggerMissing, CodeOpenAPIMissing,
	CodeMalformed, CodeRemoteRef, CodeSchemaRef, CodeSchemaUnexpected, CodeGeneric, CodeUnrenderable,
	CodeEmptyPaths, CodeEmptyOperations, CodeNullOperation, CodeDuplicatePath,
	CodeIOFailure,
}

// Kind returns the failure category of the code.
func (c Code) Kind() Kind {
	switch c {
	case CodeDocumentUnparsable:
		return KindDocumentUnparsable
	case CodeFamilyUnrecognized:
		return KindFamilyUnrecognized
	case CodeTitleMissing:
		return KindTitleMissing
	case CodeSwaggerMissing, CodeOpenAPIMissing:
		return KindWrongFamily
	case CodeEmptyPaths, CodeEmptyOperations, CodeNullOperation, CodeDuplicatePath:
		return KindSemantic
	case CodeIOFailure:
		return KindIOFailure
	default:
		return KindResolver
	}
}

// Source records which stage produced a diagnostic.
type Source string

const (
	SourceParser        Source = "PARSER"
	SourceSemanticCheck Source = "SEMANTIC_CHECK"
	SourceReferenceScan Source = "REFERENCE_SCAN"
)

// GatewayError is the error the API manager reports when it rejects a definition.
type GatewayError struct {
	Code    int    `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

var (
	gatewayParse        = GatewayError{900785, "Error while parsing OpenAPI definition"}
	gatewayInvalidOAS2  = GatewayError{900753, "Invalid OpenAPI V2 definition found"}
	gatewayInvalidOAS3  = GatewayError{900754, "Invalid OpenAPI V3 definition found"}
	gatewayUnrecognized = GatewayError{900758, "Unable to find the API definition type"}
	gatewayTitle        = GatewayError{900760, "API title is missing in the definition"}
)

// Gateway returns the gateway error for a code. Semantic violations keep the
// parse error code with a check-specific message. IO failures never reach the
// gateway and return the zero value.
func Gateway(c Code) GatewayError {
	switch c {
	case CodeDocumentUnparsable, CodeFamilyUnrecognized:
		return gatewayUnrecognized
	case CodeTitleMissing:
		return gatewayTitle
	case CodeSwaggerMissing:
		return gatewayInvalidOAS2
	case CodeOpenAPIMissing:
		return gatewayInvalidOAS3
	case CodeEmptyPaths:
		return GatewayError{gatewayParse.Code, "Empty resource paths found in the API definition"}
	case CodeEmptyOperations:
		return GatewayError{gatewayParse.Code, "No operations found for a resource path in the API definition"}
	case CodeNullOperation:
		return GatewayError{gatewayParse.Code, "Empty operation object found in the API definition"}
	case CodeDuplicatePath:
		return GatewayError{gatewayParse.Code, "Multiple resource paths with the same name found in the API definition"}
	case CodeIOFailure:
		return GatewayError{}
	default:
		return gatewayParse
	}
}
