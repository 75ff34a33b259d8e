// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasguard validation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasguard"
	"github.com/erraggy/oasguard/batch"
	"github.com/erraggy/oasguard/internal/logging"
	"github.com/erraggy/oasguard/resolver"
	"github.com/erraggy/oasguard/validator"
)

const serverInstructions = `oasguard MCP server. Checks Swagger 2.0 and OpenAPI 3.x documents against the API gateway import policy.

Tools:
- validate: verdict (VALID, VALID_WITH_WARNINGS, MALFORMED, INVALID), gateway acceptance and classified diagnostics at level 0 (parse-only), 1 (compatibility) or 2 (full).
- classify: encoding, spec family and title of a document, without resolving it.
- scan_refs: the $ref values of a document, split into local and remote references.

Configuration: defaults come from OASGUARD_MCP_* environment variables set in your MCP client config.
- OASGUARD_MCP_LEVEL (default: 2): validation level when the call omits one
- OASGUARD_MCP_RESULT_LIMIT (default: 100): default page size for diagnostics and refs
- OASGUARD_MCP_CACHE_ENABLED (default: true): cache reports per session
- OASGUARD_MCP_ALLOW_PRIVATE_IPS (default: false): allow URL inputs and remote $refs on private networks
- OASGUARD_MCP_HTTP_TIMEOUT (default: 30s): timeout of URL and remote $ref fetches`

// toolset holds what the tool handlers share for one server.
type toolset struct {
	cfg    serverConfig
	logger logging.Logger
	client *http.Client
	cache  *reportCache
	orchs  [validator.LevelFull + 1]*batch.Orchestrator
}

func newToolset(cfg serverConfig, logger logging.Logger) (*toolset, error) {
	logger = logging.OrNop(logger)
	ts := &toolset{
		cfg:    cfg,
		logger: logger,
		client: cfg.httpClient(),
		cache:  newReportCache(cfg.CacheMaxSize),
	}
	res, err := resolver.New(
		resolver.WithHTTPClient(ts.client),
		resolver.WithLogger(logger),
		resolver.WithUserAgent(oasguard.UserAgent()),
	)
	if err != nil {
		return nil, err
	}
	for level := validator.LevelParseOnly; level <= validator.LevelFull; level++ {
		orch, err := batch.NewOrchestrator(
			batch.WithLevel(level),
			batch.WithResolver(res),
			batch.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		ts.orchs[level] = orch
	}
	return ts, nil
}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled. Logs go to logger only; stdout carries the protocol.
func Run(ctx context.Context, logger logging.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ts, err := newToolset(cfg, logger)
	if err != nil {
		return err
	}
	if cfg.CacheEnabled {
		ts.cache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasguard", Version: oasguard.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	ts.register(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func (ts *toolset) register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a Swagger 2.0 or OpenAPI 3.x document the way the API gateway does before import. Returns the verdict, whether the gateway accepts the document, and diagnostics with stable codes (e.g. EMPTY_PATHS, DUPLICATE_PATH, REMOTE_REF) and gateway error codes. Level 0 only checks that the document resolves, level 1 treats resolver findings as warnings, level 2 (default) treats them as errors and adds path and operation checks. Use offset/limit to paginate diagnostics.",
	}, ts.handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify",
		Description: "Classify a document without resolving it: JSON or YAML encoding, spec family (swagger2, openapi3 or unknown), declared version and info.title. Use it to find out why a document is rejected before family validation (unparsable text, missing discriminator, missing title).",
	}, ts.handleClassify)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "scan_refs",
		Description: "List the $ref values of a document in document order with their JSON paths, split into local (#/...) and remote references. Remote references are fetched at import time and must be reachable from the gateway; use remote_only=true to list just those and the documents they load.",
	}, ts.handleScanRefs)
}

// orchestrator returns the orchestrator for level, or the configured default
// level when level is nil.
func (ts *toolset) orchestrator(level *int) (*batch.Orchestrator, error) {
	l := validator.Level(ts.cfg.Level)
	if level != nil {
		l = validator.Level(*level)
	}
	if !l.Valid() {
		return nil, fmt.Errorf("invalid level %d: must be 0 (parse-only), 1 (compatibility) or 2 (full)", l)
	}
	return ts.orchs[l], nil
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ResultLimit.
func paginate[T any](cfg serverConfig, items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ResultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
