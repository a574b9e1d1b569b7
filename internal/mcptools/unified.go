package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is reported in the MCP server's Implementation handshake.
const version = "dev"

// NewUnifiedMCPServer creates the MCP server exposing the dead-code
// analyzer's full operation set: a scan, and a per-file explanation of the
// verdict a scan assigned. "Unified" names the single stdio/HTTP endpoint
// both tools share, not a second capability bolted alongside scanning —
// an earlier revision of this server also exposed five generic tree-sitter
// code-intelligence tools (build_graph, query_symbols, get_dependencies,
// assess_impact, get_clusters) against a standalone symbol graph with no
// tie to dead-code verdicts; those were dropped (see DESIGN.md) in favor
// of explain_file, which answers the same "why does this file matter"
// question directly from a scan's own reachability evidence.
func NewUnifiedMCPServer(dc *DeadCodeService, ex *ExplainService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "deadcode",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "scan_dead_code",
		Description: "Scan a repository for dead code: files unreachable from any entry point, across Go, TypeScript/JavaScript, Python, Java/Kotlin, Rust, and C#.",
	}, dc.Scan)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "explain_file",
		Description: "Re-scan a repository and report why a single file was classified the way it was: its verdict, how many entry points were searched, and the dynamic pattern that matched, if any.",
	}, ex.Explain)

	return server
}

// RunUnifiedMCPServerStdio runs the unified MCP server on stdio, blocking
// until stdin closes or ctx is cancelled.
func RunUnifiedMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// NewUnifiedStreamableHandler exposes server over streamable HTTP.
func NewUnifiedStreamableHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)
}
