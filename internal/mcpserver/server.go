// Package mcpserver exposes the orchestrator as an MCP (agent-tool
// protocol) server: indexing, search, codebase listing, and file listing
// as tools an agent can call over stdio.
package mcpserver

import (
	mcpsdk "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"coderag/internal/orchestrator"
)

// ServerName and ServerVersion identify this server to MCP clients.
const (
	ServerName    = "coderag"
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with the orchestrator it delegates to.
type Server struct {
	mcp  *server.MCPServer
	orch *orchestrator.Orchestrator
}

// New builds a Server over orch and registers its tools.
func New(orch *orchestrator.Orchestrator) *Server {
	s := &Server{
		mcp:  server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false)),
		orch: orch,
	}
	s.registerTools()
	return s
}

// Serve blocks, serving the MCP protocol over stdio until the client
// disconnects.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(indexCodebaseTool(), s.handleIndexCodebase)
	s.mcp.AddTool(searchCodebaseTool(), s.handleSearchCodebase)
	s.mcp.AddTool(listCodebasesTool(), s.handleListCodebases)
	s.mcp.AddTool(listFilesTool(), s.handleListFiles)
}

var readOnlyAnnotation = mcpsdk.ToolAnnotation{
	ReadOnlyHint:    mcpsdk.ToBoolPtr(true),
	DestructiveHint: mcpsdk.ToBoolPtr(false),
	IdempotentHint:  mcpsdk.ToBoolPtr(true),
	OpenWorldHint:   mcpsdk.ToBoolPtr(false),
}
