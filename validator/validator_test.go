package validator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasguard/diagnostic"
	"github.com/erraggy/oasguard/document"
	"github.com/erraggy/oasguard/internal/severity"
	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/resolver"
)

// fakeResolver returns canned results and records what was asked of it.
type fakeResolver struct {
	swagger2     resolver.Result
	openapi3     resolver.Result
	lenient      error
	calls        []document.Family
	lenientCalls int
}

func (f *fakeResolver) ResolveSwagger2(context.Context, *document.SpecDocument) resolver.Result {
	f.calls = append(f.calls, document.FamilySwagger2)
	return f.swagger2
}

func (f *fakeResolver) ResolveOpenAPI3(context.Context, *document.SpecDocument) resolver.Result {
	f.calls = append(f.calls, document.FamilyOpenAPI3)
	return f.openapi3
}

func (f *fakeResolver) ParseLenient(context.Context, *document.SpecDocument, document.Family) error {
	f.lenientCalls++
	return f.lenient
}

func classify(t *testing.T, raw string) *document.SpecDocument {
	t.Helper()
	doc, err := document.Classify([]byte(raw), document.WithName("pets.yaml"))
	require.NoError(t, err)
	return doc
}

func newValidator(t *testing.T, level Level, r resolver.Resolver) *Validator {
	t.Helper()
	v, err := New(WithLevel(level), WithResolver(r))
	require.NoError(t, err)
	return v
}

func oas3Paths(items map[string]*openapi3.PathItem) *openapi3.Paths {
	paths := openapi3.NewPaths()
	for k, item := range items {
		paths.Set(k, item)
	}
	return paths
}

func oas3Doc(items map[string]*openapi3.PathItem) *resolver.Document {
	return &resolver.Document{
		Family:  document.FamilyOpenAPI3,
		OpenAPI: &openapi3.T{OpenAPI: "3.0.3", Paths: oas3Paths(items)},
	}
}

func swagger2Doc(items map[string]spec.PathItem) *resolver.Document {
	return &resolver.Document{
		Family:  document.FamilySwagger2,
		Swagger: &spec.Swagger{SwaggerProps: spec.SwaggerProps{Swagger: "2.0", Paths: &spec.Paths{Paths: items}}},
	}
}

const (
	oas3Pets = `openapi: 3.0.3
info:
  title: Pets
  version: "1.0"
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
`
	swaggerEmptyPaths = `swagger: "2.0"
info:
  title: Pets
  version: "1.0"
paths: {}
`
)

func codes(diags []diagnostic.Diagnostic) []diagnostic.Code {
	out := make([]diagnostic.Code, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestFindDuplicatePath(t *testing.T) {
	op := &openapi3.Operation{}
	tests := []struct {
		name     string
		keys     []string
		shape    PathShape
		want     bool
		conflict Conflict
	}{
		{
			name: "same method on both paths",
			keys: []string{"/pets/", "/pets"},
			shape: NewOpenAPI3Shape(oas3Paths(map[string]*openapi3.PathItem{
				"/pets/": {Get: op},
				"/pets":  {Get: op},
			})),
			want:     true,
			conflict: Conflict{Path: "/pets/", Sibling: "/pets", Method: "GET"},
		},
		{
			name: "disjoint methods",
			keys: []string{"/pets/", "/pets"},
			shape: NewOpenAPI3Shape(oas3Paths(map[string]*openapi3.PathItem{
				"/pets/": {Post: op},
				"/pets":  {Get: op},
			})),
			want: false,
		},
		{
			name: "no sibling",
			keys: []string{"/pets/", "/owners"},
			shape: NewOpenAPI3Shape(oas3Paths(map[string]*openapi3.PathItem{
				"/pets/":  {Get: op},
				"/owners": {Get: op},
			})),
			want: false,
		},
		{
			name: "trace is not a gateway method",
			keys: []string{"/pets/", "/pets"},
			shape: NewOpenAPI3Shape(oas3Paths(map[string]*openapi3.PathItem{
				"/pets/": {Trace: op},
				"/pets":  {Trace: op},
			})),
			want: false,
		},
		{
			name: "swagger 2 paths",
			keys: []string{"/pets", "/pets/"},
			shape: NewSwagger2Shape(&spec.Paths{Paths: map[string]spec.PathItem{
				"/pets/": {PathItemProps: spec.PathItemProps{Delete: &spec.Operation{}, Put: &spec.Operation{}}},
				"/pets":  {PathItemProps: spec.PathItemProps{Put: &spec.Operation{}}},
			}}),
			want:     true,
			conflict: Conflict{Path: "/pets/", Sibling: "/pets", Method: "PUT"},
		},
		{
			name:  "nil shape",
			keys:  []string{"/pets/", "/pets"},
			shape: nil,
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindDuplicatePath(tt.keys, tt.shape)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.conflict, got)
			}
		})
	}
}

func TestFindDuplicatePathReportsFirstOnly(t *testing.T) {
	op := &openapi3.Operation{}
	shape := NewOpenAPI3Shape(oas3Paths(map[string]*openapi3.PathItem{
		"/a/": {Get: op}, "/a": {Get: op},
		"/b/": {Get: op}, "/b": {Get: op},
	}))
	got, ok := FindDuplicatePath([]string{"/b/", "/b", "/a/", "/a"}, shape)
	require.True(t, ok)
	assert.Equal(t, "/b/", got.Path)
}

func TestShapeOf(t *testing.T) {
	assert.Nil(t, ShapeOf(nil))
	assert.Nil(t, ShapeOf(&resolver.Document{}))

	shape := ShapeOf(swagger2Doc(map[string]spec.PathItem{
		"/b": {PathItemProps: spec.PathItemProps{Get: &spec.Operation{}, Head: &spec.Operation{}}},
		"/a": {},
	}))
	require.NotNil(t, shape)
	assert.Equal(t, []string{"/a", "/b"}, shape.Keys())
	methods, ok := shape.Methods("/b")
	assert.True(t, ok)
	assert.Equal(t, []string{"GET", "HEAD"}, methods)
	methods, ok = shape.Methods("/a")
	assert.True(t, ok)
	assert.Empty(t, methods)
	_, ok = shape.Methods("/missing")
	assert.False(t, ok)
}

func TestSwagger2EmptyPathsAtFullLevel(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
	}{
		{name: "resolver reports nothing"},
		{name: "resolver reports a finding", messages: []string{"some unrelated finding"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeResolver{swagger2: resolver.Result{
				Document: swagger2Doc(map[string]spec.PathItem{}),
				Messages: tt.messages,
			}}
			report, err := newValidator(t, LevelFull, fake).ValidateSwagger2(context.Background(), classify(t, swaggerEmptyPaths))
			require.NoError(t, err)

			assert.Equal(t, VerdictMalformed, report.Verdict)
			assert.Contains(t, codes(report.Diagnostics), diagnostic.CodeEmptyPaths)
			assert.True(t, report.Blocking())
			assert.Empty(t, report.AcceptedBy())
		})
	}
}

func TestSemanticChecksNotRunBelowFullLevel(t *testing.T) {
	fake := &fakeResolver{swagger2: resolver.Result{Document: swagger2Doc(map[string]spec.PathItem{})}}
	for _, level := range []Level{LevelParseOnly, LevelCompat} {
		report, err := newValidator(t, level, fake).ValidateSwagger2(context.Background(), classify(t, swaggerEmptyPaths))
		require.NoError(t, err)
		assert.Equal(t, VerdictValid, report.Verdict, level.String())
		assert.Empty(t, report.Diagnostics)
	}
}

func TestOperationChecks(t *testing.T) {
	raw := `openapi: 3.0.3
info: {title: Pets, version: "1.0"}
paths:
  /pets:
    get: null
  /owners:
    get:
      responses: {"200": {description: ok}}
  /owners/:
    get:
      responses: {"200": {description: ok}}
`
	fake := &fakeResolver{openapi3: resolver.Result{Document: oas3Doc(map[string]*openapi3.PathItem{
		"/pets":    {},
		"/owners":  {Get: &openapi3.Operation{}},
		"/owners/": {Get: &openapi3.Operation{}},
	})}}

	report, err := newValidator(t, LevelFull, fake).ValidateOpenAPI3(context.Background(), classify(t, raw))
	require.NoError(t, err)

	assert.Equal(t, VerdictMalformed, report.Verdict)
	assert.Equal(t, []diagnostic.Code{
		diagnostic.CodeEmptyOperations,
		diagnostic.CodeNullOperation,
		diagnostic.CodeDuplicatePath,
	}, codes(report.Diagnostics))
	assert.Equal(t, "operations cannot be empty for resource path `/pets`", report.Diagnostics[0].Message)
	assert.Equal(t, "operation object cannot be empty for method `GET` in path `/pets`", report.Diagnostics[1].Message)
	assert.Equal(t, "/owners/", report.Diagnostics[2].Path)
	for _, d := range report.Diagnostics {
		assert.Equal(t, diagnostic.SourceSemanticCheck, d.Source)
		assert.Equal(t, severity.SeverityError, d.Severity)
	}
}

func TestLevelPolicy(t *testing.T) {
	newFake := func() *fakeResolver {
		return &fakeResolver{openapi3: resolver.Result{
			Document: oas3Doc(map[string]*openapi3.PathItem{"/pets": {Get: &openapi3.Operation{}}}),
			Messages: []string{"some generic finding"},
		}}
	}
	tests := []struct {
		level      Level
		verdict    Verdict
		diags      int
		severity   severity.Severity
		accepted   bool
		acceptedBy string
	}{
		{level: LevelParseOnly, verdict: VerdictValid, diags: 0, accepted: true},
		{
			level: LevelCompat, verdict: VerdictValidWithWarnings, diags: 1, severity: severity.SeverityWarning,
			accepted: true, acceptedBy: "Swagger file will be accepted by the level 1 validation of APIM 4.0.0",
		},
		{level: LevelFull, verdict: VerdictValidWithWarnings, diags: 1, severity: severity.SeverityError},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			report, err := newValidator(t, tt.level, newFake()).Validate(context.Background(), classify(t, oas3Pets), document.FamilyOpenAPI3)
			require.NoError(t, err)
			assert.Equal(t, tt.verdict, report.Verdict)
			require.Len(t, report.Diagnostics, tt.diags)
			if tt.diags > 0 {
				assert.Equal(t, diagnostic.CodeGeneric, report.Diagnostics[0].Code)
				assert.Equal(t, tt.severity, report.Diagnostics[0].Severity)
			}
			assert.Equal(t, tt.accepted, report.Accepted())
			assert.Equal(t, tt.acceptedBy, report.AcceptedBy())
			assert.Equal(t, "Pets", report.Title)
			assert.Equal(t, "pets.yaml", report.Source)
			assert.NotNil(t, report.Resolved)
		})
	}
}

func TestValidDocumentAcceptedAtFullLevel(t *testing.T) {
	fake := &fakeResolver{openapi3: resolver.Result{
		Document: oas3Doc(map[string]*openapi3.PathItem{"/pets": {Get: &openapi3.Operation{}}}),
	}}
	report, err := newValidator(t, LevelFull, fake).ValidateOpenAPI3(context.Background(), classify(t, oas3Pets))
	require.NoError(t, err)
	assert.Equal(t, VerdictValid, report.Verdict)
	assert.Empty(t, report.Diagnostics)
	assert.Equal(t, "Swagger file will be accepted by the APIM 4.2.0", report.AcceptedBy())
}

func TestWrongFamily(t *testing.T) {
	for _, level := range []Level{LevelParseOnly, LevelCompat, LevelFull} {
		t.Run(level.String(), func(t *testing.T) {
			fake := &fakeResolver{openapi3: resolver.Result{Messages: []string{resolver.MsgOpenAPIMissing}}}
			report, err := newValidator(t, level, fake).ValidateOpenAPI3(context.Background(), classify(t, oas3Pets))

			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrWrongFamily)
			var wf *oaserrors.WrongFamilyError
			require.True(t, errors.As(err, &wf))
			assert.Equal(t, "openapi3", wf.Attempted)

			require.NotNil(t, report)
			assert.Equal(t, VerdictInvalid, report.Verdict)
			assert.Equal(t, []diagnostic.Code{diagnostic.CodeOpenAPIMissing}, codes(report.Diagnostics))
			assert.Equal(t, 0, fake.lenientCalls)
		})
	}
}

func TestOtherFamilyMissingIsNotWrongFamily(t *testing.T) {
	fake := &fakeResolver{openapi3: resolver.Result{
		Document: oas3Doc(map[string]*openapi3.PathItem{"/pets": {Get: &openapi3.Operation{}}}),
		Messages: []string{resolver.MsgSwaggerMissing},
	}}
	report, err := newValidator(t, LevelCompat, fake).ValidateOpenAPI3(context.Background(), classify(t, oas3Pets))
	require.NoError(t, err)
	assert.Equal(t, VerdictValidWithWarnings, report.Verdict)
}

func TestMalformedExplainedOnceAtFullLevel(t *testing.T) {
	newFake := func() *fakeResolver {
		return &fakeResolver{
			swagger2: resolver.Result{Messages: []string{
				"Malformed Swagger definition: first",
				"Malformed Swagger definition: second",
			}},
			lenient: errors.New("boom"),
		}
	}

	fake := newFake()
	report, err := newValidator(t, LevelFull, fake).ValidateSwagger2(context.Background(), classify(t, swaggerEmptyPaths))
	require.NoError(t, err)
	assert.Equal(t, VerdictMalformed, report.Verdict)
	require.Len(t, report.Diagnostics, 2)
	for _, d := range report.Diagnostics {
		assert.Equal(t, diagnostic.CodeMalformed, d.Code)
		assert.True(t, strings.HasSuffix(d.Message, ", Cause by: boom"), d.Message)
	}
	assert.Equal(t, 1, fake.lenientCalls)

	fake = newFake()
	report, err = newValidator(t, LevelCompat, fake).ValidateSwagger2(context.Background(), classify(t, swaggerEmptyPaths))
	require.NoError(t, err)
	assert.Equal(t, VerdictMalformed, report.Verdict)
	assert.Equal(t, 0, fake.lenientCalls)
	assert.Equal(t, "Malformed Swagger definition: first", report.Diagnostics[0].Message)
}

func TestSchemaRefRewrittenForSwagger2(t *testing.T) {
	msg := "schema #/components/schemas/Pet is not resolvable"
	fake := &fakeResolver{
		swagger2: resolver.Result{
			Document: swagger2Doc(map[string]spec.PathItem{"/pets": {PathItemProps: spec.PathItemProps{Get: &spec.Operation{}}}}),
			Messages: []string{msg},
		},
		openapi3: resolver.Result{
			Document: oas3Doc(map[string]*openapi3.PathItem{"/pets": {Get: &openapi3.Operation{}}}),
			Messages: []string{msg},
		},
	}
	v := newValidator(t, LevelFull, fake)

	report, err := v.ValidateSwagger2(context.Background(), classify(t, swaggerEmptyPaths))
	require.NoError(t, err)
	require.NotEmpty(t, report.Diagnostics)
	assert.Equal(t, diagnostic.CodeSchemaRef, report.Diagnostics[0].Code)
	assert.Equal(t, "schema #/definitions/Pet is not resolvable", report.Diagnostics[0].Message)

	report, err = v.ValidateOpenAPI3(context.Background(), classify(t, oas3Pets))
	require.NoError(t, err)
	require.NotEmpty(t, report.Diagnostics)
	assert.Equal(t, diagnostic.CodeSchemaRef, report.Diagnostics[0].Code)
	assert.Equal(t, msg, report.Diagnostics[0].Message)
}

func TestUnrenderable(t *testing.T) {
	fake := &fakeResolver{}
	report, err := newValidator(t, LevelCompat, fake).ValidateOpenAPI3(context.Background(), classify(t, oas3Pets))
	require.NoError(t, err)
	assert.Equal(t, VerdictMalformed, report.Verdict)
	assert.Equal(t, []diagnostic.Code{diagnostic.CodeUnrenderable}, codes(report.Diagnostics))
	assert.Nil(t, report.Resolved)
}

func TestUnknownFamily(t *testing.T) {
	fake := &fakeResolver{}
	_, err := newValidator(t, LevelFull, fake).Validate(context.Background(), classify(t, oas3Pets), document.FamilyUnknown)
	assert.ErrorIs(t, err, oaserrors.ErrFamilyUnrecognized)
	assert.Empty(t, fake.calls)
}

func TestIdempotence(t *testing.T) {
	fake := &fakeResolver{
		swagger2: resolver.Result{
			Document: swagger2Doc(map[string]spec.PathItem{}),
			Messages: []string{"Malformed Swagger definition: x", "something else"},
		},
		lenient: errors.New("cause"),
	}
	v := newValidator(t, LevelFull, fake)
	doc := classify(t, swaggerEmptyPaths)

	first, err := v.ValidateSwagger2(context.Background(), doc)
	require.NoError(t, err)
	second, err := v.ValidateSwagger2(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBlockingDiagnosticsGrowWithLevel(t *testing.T) {
	fixtures := []resolver.Result{
		{Document: swagger2Doc(map[string]spec.PathItem{})},
		{Document: swagger2Doc(map[string]spec.PathItem{"/p": {}}), Messages: []string{"a finding"}},
		{Messages: []string{"Malformed Swagger definition: x"}},
		{},
		{Document: swagger2Doc(map[string]spec.PathItem{
			"/p/": {PathItemProps: spec.PathItemProps{Get: &spec.Operation{}}},
			"/p":  {PathItemProps: spec.PathItemProps{Get: &spec.Operation{}}},
		})},
	}
	for i, res := range fixtures {
		var previous []diagnostic.Code
		for _, level := range []Level{LevelParseOnly, LevelCompat, LevelFull} {
			fake := &fakeResolver{swagger2: res, lenient: errors.New("cause")}
			report, err := newValidator(t, level, fake).ValidateSwagger2(context.Background(), classify(t, swaggerEmptyPaths))
			require.NoError(t, err)
			current := report.BlockingCodes()
			for _, c := range previous {
				assert.Contains(t, current, c, "fixture %d level %s", i, level)
			}
			previous = current
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "0", want: LevelParseOnly},
		{in: "1", want: LevelCompat},
		{in: " 2 ", want: LevelFull},
		{in: "full", want: LevelFull},
		{in: "Compatibility", want: LevelCompat},
		{in: "3", want: DefaultLevel, wantErr: true},
		{in: "strict", want: DefaultLevel, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.ErrorIs(t, err, oaserrors.ErrConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	_, err := New(WithLevel(Level(7)))
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	_, err = New(WithResolver(nil))
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	v, err := New()
	require.NoError(t, err)
	assert.Equal(t, LevelFull, v.Level())
	assert.IsType(t, &resolver.Default{}, v.Resolver())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "unknown", Level(9).String())
	assert.False(t, Level(-1).Valid())
	assert.Equal(t, policies[LevelFull], Level(9).Policy())
}
