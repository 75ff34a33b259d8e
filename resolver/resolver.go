package resolver

import (
	"context"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-openapi/spec"

	"github.com/erraggy/oasguard/document"
	"github.com/erraggy/oasguard/internal/logging"
	"github.com/erraggy/oasguard/oaserrors"
)

// DefaultHTTPTimeout bounds every remote $ref fetch.
const DefaultHTTPTimeout = 30 * time.Second

// Document is a resolved document. Swagger is set for Swagger 2.0 input;
// OpenAPI is set for OpenAPI 3.x input and for Swagger 2.0 input that could
// be converted.
type Document struct {
	Family  document.Family
	Swagger *spec.Swagger
	OpenAPI *openapi3.T
}

// Result is what a resolver returns for one document.
type Result struct {
	// Document is nil when the text could not be rendered into the family model.
	Document *Document
	// Messages are free-text findings, in the order the libraries reported them.
	Messages []string
}

// Resolver is the external resolution capability.
type Resolver interface {
	// ResolveSwagger2 loads doc as Swagger 2.0 with resolution, flattening and full expansion.
	ResolveSwagger2(ctx context.Context, doc *document.SpecDocument) Result
	// ResolveOpenAPI3 loads doc as OpenAPI 3.x with reference resolution.
	ResolveOpenAPI3(ctx context.Context, doc *document.SpecDocument) Result
	// ParseLenient parses doc into its family model without validation and
	// returns the first error, if any.
	ParseLenient(ctx context.Context, doc *document.SpecDocument, family document.Family) error
}

// Default is the Resolver backed by kin-openapi and go-openapi.
type Default struct {
	client    *http.Client
	logger    logging.Logger
	readURI   openapi3.ReadFromURIFunc
	userAgent string
}

// Option configures a Default resolver.
type Option func(*Default) error

// WithHTTPClient sets the client used for remote $ref fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Default) error {
		if c == nil {
			return &oaserrors.ConfigError{Option: "http client", Message: "cannot be nil"}
		}
		d.client = c
		return nil
	}
}

// WithHTTPTimeout sets the timeout of the default HTTP client.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(d *Default) error {
		if timeout <= 0 {
			return &oaserrors.ConfigError{Option: "http timeout", Value: timeout, Message: "must be positive"}
		}
		d.client.Timeout = timeout
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(d *Default) error {
		d.logger = logging.OrNop(l)
		return nil
	}
}

// WithUserAgent sets the User-Agent header of remote fetches.
func WithUserAgent(ua string) Option {
	return func(d *Default) error {
		d.userAgent = ua
		return nil
	}
}

// New returns a Default resolver. Fetched remote documents are cached for the
// lifetime of the resolver.
func New(opts ...Option) (*Default, error) {
	d := &Default{
		client: &http.Client{Timeout: DefaultHTTPTimeout},
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	d.readURI = openapi3.URIMapCache(openapi3.ReadFromURIs(d.readFromHTTP, openapi3.ReadFromFile))
	return d, nil
}

// ParseLenient implements Resolver.
func (d *Default) ParseLenient(ctx context.Context, doc *document.SpecDocument, family document.Family) error {
	switch family {
	case document.FamilySwagger2:
		return d.parseSwagger2Lenient(ctx, doc)
	case document.FamilyOpenAPI3:
		return d.parseOpenAPI3Lenient(doc)
	default:
		return oaserrors.ErrFamilyUnrecognized
	}
}

var _ Resolver = (*Default)(nil)
