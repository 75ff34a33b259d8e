package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// maxRemoteSize caps a fetched reference target.
const maxRemoteSize = 10 << 20

// readFromHTTP is an openapi3.ReadFromURIFunc that honours the loader context
// and sends the configured User-Agent.
func (d *Default) readFromHTTP(loader *openapi3.Loader, location *url.URL) ([]byte, error) {
	if location.Scheme == "" || location.Host == "" {
		return nil, openapi3.ErrURINotSupported
	}
	ctx := loader.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return d.fetch(ctx, location.String())
}

func (d *Default) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}
	d.logger.Debug("fetching remote reference", "url", rawURL)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode > 399 {
		return nil, fmt.Errorf("error loading %q: request returned status code %d", rawURL, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize))
}

// pathLoader returns a go-openapi PathLoader reading http(s) URLs through the
// resolver's client and everything else from disk. YAML targets are
// converted with go-openapi's YAML loader helpers.
func (d *Default) pathLoader(ctx context.Context) func(string) (json.RawMessage, error) {
	return func(path string) (json.RawMessage, error) {
		var (
			data []byte
			err  error
		)
		if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
			data, err = d.fetch(ctx, path)
		} else {
			data, err = os.ReadFile(filepath.FromSlash(strings.TrimPrefix(path, "file://")))
		}
		if err != nil {
			return nil, err
		}
		return jsonText(data)
	}
}

// locationURL converts a document location into the base URL kin-openapi
// resolves relative references against. Inline documents have no base.
func locationURL(location string) *url.URL {
	if location == "" {
		return nil
	}
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && u.Host != "" {
		return u
	}
	if abs, err := filepath.Abs(location); err == nil {
		location = abs
	}
	return &url.URL{Path: filepath.ToSlash(location)}
}
