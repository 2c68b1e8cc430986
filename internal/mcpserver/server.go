// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes serverless function generation as an MCP tool over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oas2sls"
	"github.com/erraggy/oas2sls/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oas2sls MCP server: derives Serverless Framework functions configuration from OpenAPI/Swagger documents.

Configuration: defaults are configurable via OAS2SLS_MCP_* environment variables set in your MCP client config.

Key settings:
- OAS2SLS_MCP_API_PREFIX: default api_prefix when a call omits it
- OAS2SLS_MCP_FORMAT (default: yaml): default output format (yaml or json)
- OAS2SLS_MCP_MAX_INLINE_SIZE (default: 10MiB): largest accepted inline document
- OAS2SLS_MCP_CACHE_ENABLED (default: true): cache parsed documents per session
- OAS2SLS_MCP_CACHE_TTL (default: 15m): cache entry lifetime`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled. Tool calls log through log, which may be nil.
func Run(ctx context.Context, log parser.Logger) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oas2sls", Version: oas2sls.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server, log)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server, log parser.Logger) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_serverless",
		Description: "Generate Serverless Framework functions configuration from an OpenAPI 2.0 or 3.x document. Operations with a tag starting with api_prefix become HTTP triggers; the tag names the service and the method plus path name the function. Returns one rendered document per service, the function name collisions that were merged, and counts. Defaults for api_prefix and format come from OAS2SLS_MCP_API_PREFIX and OAS2SLS_MCP_FORMAT.",
	}, generateHandler(log))
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
