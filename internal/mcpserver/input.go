package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oasguard/batch"
	"github.com/erraggy/oasguard/internal/options"
	"github.com/erraggy/oasguard/validator"
)

// specInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a Swagger 2.0 or OpenAPI 3.x file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch the document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// loadedSpec is a specInput turned into a batch source, with the key and TTL
// its reports are cached under.
type loadedSpec struct {
	source batch.Source
	key    string
	ttl    time.Duration
}

// load checks the input and builds its source. URL inputs are fetched here;
// file inputs are read when the source is processed.
func (s specInput) load(ctx context.Context, cfg serverConfig, client *http.Client) (loadedSpec, error) {
	if err := options.RequireExactlyOne([]string{"file", "url", "content"},
		s.File != "", s.URL != "", s.Content != ""); err != nil {
		return loadedSpec{}, err
	}

	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return loadedSpec{}, fmt.Errorf("invalid file path: %w", err)
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return loadedSpec{}, err
		}
		if info.IsDir() {
			return loadedSpec{}, fmt.Errorf("%s is a directory; validate one document at a time", s.File)
		}
		return loadedSpec{
			source: batch.FileSource(s.File),
			key:    fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano()),
			ttl:    cfg.CacheFileTTL,
		}, nil

	case s.URL != "":
		data, err := fetchDocument(ctx, client, s.URL, cfg.MaxInlineSize)
		if err != nil {
			return loadedSpec{}, err
		}
		src := batch.InlineSource(string(data))
		src.Name = s.URL
		return loadedSpec{source: src, key: "url:" + s.URL, ttl: cfg.CacheURLTTL}, nil

	default:
		if int64(len(s.Content)) > cfg.MaxInlineSize {
			return loadedSpec{}, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set %s_MAX_INLINE_SIZE to increase",
				len(s.Content), cfg.MaxInlineSize, envPrefix)
		}
		h := sha256.Sum256([]byte(s.Content))
		return loadedSpec{
			source: batch.InlineSource(s.Content),
			key:    "content:" + hex.EncodeToString(h[:]),
			ttl:    cfg.CacheContentTTL,
		}, nil
	}
}

// fetchDocument downloads an http(s) document of at most limit bytes.
func fetchDocument(ctx context.Context, client *http.Client, rawURL string, limit int64) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode > 399 {
		return nil, fmt.Errorf("fetching %s: status code %d", rawURL, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("document at %s exceeds maximum %d bytes", rawURL, limit)
	}
	return data, nil
}

// cacheEntry holds a cached report with LRU ordering and TTL expiry.
type cacheEntry struct {
	report    *validator.Report
	insertAt  time.Time
	expiresAt time.Time
}

// reportCache is a session-scoped cache of validation reports. Validation is
// deterministic for a given text and level, so a report can be served again
// until its input changes or the entry expires.
type reportCache struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

func newReportCache(maxSize int) *reportCache {
	return &reportCache{entries: make(map[string]*cacheEntry), maxSize: maxSize}
}

// reportKey scopes an input key to a level.
func reportKey(level validator.Level, inputKey string) string {
	return fmt.Sprintf("level%d:%s", level, inputKey)
}

// get returns a cached report or nil. Expired entries are lazily removed.
func (c *reportCache) get(key string) *validator.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		e.insertAt = time.Now()
		return e.report
	}
	return nil
}

// put stores a report, evicting the least recently used entry if at capacity.
func (c *reportCache) put(key string, report *validator.Report, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{report: report, insertAt: now, expiresAt: now.Add(ttl)}
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = entry
}

// sweep removes all expired entries.
func (c *reportCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a goroutine that periodically removes expired
// entries until ctx is cancelled. Only the first call spawns a sweeper.
func (c *reportCache) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// size returns the number of cached entries.
func (c *reportCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
