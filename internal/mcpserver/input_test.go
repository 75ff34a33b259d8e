package mcpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasguard/batch"
	"github.com/erraggy/oasguard/internal/testutil"
	"github.com/erraggy/oasguard/validator"
)

func TestSpecInputLoad_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.MaxInlineSize = 16
	dir := t.TempDir()

	tests := []struct {
		name    string
		input   specInput
		wantErr string
	}{
		{"none", specInput{}, "exactly one of file, url, or content must be provided (got 0)"},
		{"multiple", specInput{File: "a.yaml", Content: "openapi: 3.0.3"}, "(got 2)"},
		{"too big", specInput{Content: strings.Repeat("x", 17)}, "exceeds maximum 16 bytes"},
		{"directory", specInput{File: dir}, "is a directory"},
		{"missing file", specInput{File: dir + "/missing.yaml"}, "no such file"},
		{"bad scheme", specInput{URL: "ftp://example.com/api.yaml"}, `unsupported url scheme "ftp"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.load(context.Background(), cfg, http.DefaultClient)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSpecInputLoad_Content(t *testing.T) {
	cfg := testConfig()
	a, err := specInput{Content: testutil.OpenAPIPets}.load(context.Background(), cfg, nil)
	require.NoError(t, err)
	b, err := specInput{Content: testutil.OpenAPIPets}.load(context.Background(), cfg, nil)
	require.NoError(t, err)
	c, err := specInput{Content: testutil.SwaggerPets}.load(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, batch.InlineName, a.source.Name)
	assert.True(t, strings.HasPrefix(a.key, "content:"))
	assert.Equal(t, a.key, b.key)
	assert.NotEqual(t, a.key, c.key)
	assert.Equal(t, cfg.CacheContentTTL, a.ttl)
}

func TestSpecInputLoad_File(t *testing.T) {
	cfg := testConfig()
	path := testutil.WriteTempYAML(t, testutil.OpenAPIDocument("Files", "/files"))

	spec, err := specInput{File: path}.load(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, path, spec.source.Name)
	assert.Equal(t, path, spec.source.Path)
	assert.True(t, strings.HasPrefix(spec.key, "file:"))
	assert.Equal(t, cfg.CacheFileTTL, spec.ttl)
}

func TestSpecInputLoad_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pets.yaml":
			_, _ = w.Write([]byte(testutil.OpenAPIPets))
		case "/big.yaml":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxInlineSize = int64(len(testutil.OpenAPIPets))

	spec, err := specInput{URL: srv.URL + "/pets.yaml"}.load(context.Background(), cfg, srv.Client())
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/pets.yaml", spec.source.Name)
	assert.Equal(t, "url:"+srv.URL+"/pets.yaml", spec.key)
	assert.Equal(t, cfg.CacheURLTTL, spec.ttl)
	raw, err := spec.source.Read()
	require.NoError(t, err)
	assert.Equal(t, testutil.OpenAPIPets, string(raw))

	_, err = specInput{URL: srv.URL + "/missing.yaml"}.load(context.Background(), cfg, srv.Client())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code 404")

	cfg.MaxInlineSize = 32
	_, err = specInput{URL: srv.URL + "/big.yaml"}.load(context.Background(), cfg, srv.Client())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum 32 bytes")
}

func TestReportCache_PutGet(t *testing.T) {
	c := newReportCache(10)
	r := &validator.Report{Source: "a"}

	assert.Nil(t, c.get("missing"))
	c.put("a", r, time.Minute)
	assert.Same(t, r, c.get("a"))
	assert.Equal(t, 1, c.size())
}

func TestReportCache_Expiry(t *testing.T) {
	c := newReportCache(10)
	c.put("gone", &validator.Report{}, -time.Second)
	assert.Nil(t, c.get("gone"))
	assert.Zero(t, c.size())
}

func TestReportCache_Eviction(t *testing.T) {
	c := newReportCache(2)
	c.put("first", &validator.Report{Source: "first"}, time.Minute)
	time.Sleep(time.Millisecond)
	c.put("second", &validator.Report{Source: "second"}, time.Minute)
	time.Sleep(time.Millisecond)

	// Touching first makes second the least recently used.
	require.NotNil(t, c.get("first"))
	time.Sleep(time.Millisecond)
	c.put("third", &validator.Report{Source: "third"}, time.Minute)

	assert.Equal(t, 2, c.size())
	assert.NotNil(t, c.get("first"))
	assert.Nil(t, c.get("second"))
	assert.NotNil(t, c.get("third"))
}

func TestReportCache_Sweep(t *testing.T) {
	c := newReportCache(10)
	c.put("expired", &validator.Report{}, -time.Second)
	c.put("live", &validator.Report{}, time.Minute)
	c.sweep()
	assert.Equal(t, 1, c.size())
	assert.NotNil(t, c.get("live"))
}

func TestReportCache_Sweeper(t *testing.T) {
	c := newReportCache(10)
	c.put("expired", &validator.Report{}, -time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.startSweeper(ctx, 5*time.Millisecond)
	c.startSweeper(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return c.size() == 0 }, time.Second, 5*time.Millisecond)
}

func TestReportKey(t *testing.T) {
	assert.Equal(t, "level0:content:abc", reportKey(validator.LevelParseOnly, "content:abc"))
	assert.NotEqual(t, reportKey(validator.LevelCompat, "k"), reportKey(validator.LevelFull, "k"))
}
