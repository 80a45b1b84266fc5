// Package server wires the randomizer tools into an MCP server.
package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/appengine-ltd/lm-randomizer/internal/engine"
	"github.com/appengine-ltd/lm-randomizer/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

type toolHandler interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// New creates the MCP server with every randomizer tool registered.
func New(e *engine.Engine) *server.MCPServer {
	s := server.NewMCPServer(
		"lm-randomizer",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	for _, t := range []toolHandler{
		tools.NewRandomizeTool(e),
		tools.NewValidateTool(e),
		tools.NewSpoilerTool(e),
		tools.NewRunsTool(e),
	} {
		s.AddTool(t.Definition(), t.Handle)
	}
	return s
}

// ServeStdio blocks serving s over stdin and stdout.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

const instructions = "Item randomizer for La-Mulana. Use randomize to create a seed, " +
	"spoiler to read back an archived seed, runs to list recent seeds and validate to check the game data."
