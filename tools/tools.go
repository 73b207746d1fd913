// Package tools registers every content-acquisition and workspace operation
// as an MCP tool. Handlers never return a protocol error: failures come back
// as a tool result carrying {"error": message}.
package tools

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/use-agent/summarizer/cleaner"
	"github.com/use-agent/summarizer/fsutil"
	"github.com/use-agent/summarizer/scraper"
)

// Browser runs the browse pipeline.
type Browser interface {
	Browse(ctx context.Context, url string) (*scraper.BrowseResult, error)
	SearchAndBrowse(ctx context.Context, query string, maxResults int) (*scraper.BrowseResult, error)
}

// Resolver turns a query into ranked URLs.
type Resolver interface {
	Resolve(ctx context.Context, query string, maxResults int) ([]string, error)
	Top(ctx context.Context, query string, maxResults int) (string, error)
}

// TextFetcher is the browserless paragraph-text path.
type TextFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Deps are the collaborators behind the tools. A nil dependency leaves its
// tools registered; calling them reports the missing capability.
type Deps struct {
	Browser    Browser
	Resolver   Resolver
	Fetcher    TextFetcher
	Converter  cleaner.Converter
	Workspace  *fsutil.Workspace
	MaxResults int
}

// Handlers holds the tool implementations.
type Handlers struct {
	deps Deps
}

// New creates Handlers. MaxResults defaults to 5.
func New(deps Deps) *Handlers {
	if deps.MaxResults <= 0 {
		deps.MaxResults = 5
	}
	return &Handlers{deps: deps}
}

// NewServer builds an MCP server with every tool registered.
func NewServer(name, version string, h *Handlers) *server.MCPServer {
	s := server.NewMCPServer(name, version, server.WithToolCapabilities(false))
	h.Register(s)
	return s
}

// Register adds every tool to s.
func (h *Handlers) Register(s *server.MCPServer) {
	for _, t := range h.webTools() {
		s.AddTool(t.tool, t.handler)
	}
	for _, t := range h.fileTools() {
		s.AddTool(t.tool, t.handler)
	}
}

type entry struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
}

// errorResult reports err to the caller as {"error": message}.
func errorResult(tool string, err error) *mcp.CallToolResult {
	slog.Warn("tool call failed", "tool", tool, "error", err)
	body, _ := json.Marshal(map[string]string{"error": err.Error()})
	return mcp.NewToolResultError(string(body))
}

func errorText(msg string) *mcp.CallToolResult {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return mcp.NewToolResultError(string(body))
}

// jsonResult serialises v as the tool's text output.
func jsonResult(tool string, v any) *mcp.CallToolResult {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(tool, err)
	}
	return mcp.NewToolResultText(string(body))
}
