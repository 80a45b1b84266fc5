package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/appengine-ltd/lm-randomizer/internal/engine"
)

// RunsTool handles the runs MCP tool.
type RunsTool struct {
	engine *engine.Engine
}

func NewRunsTool(e *engine.Engine) *RunsTool {
	return &RunsTool{engine: e}
}

func (t *RunsTool) Definition() mcp.Tool {
	return mcp.NewTool("runs",
		mcp.WithDescription("List recently archived randomizer runs, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Number of runs to list (default: 10)"),
		),
	)
}

func (t *RunsTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runs, err := t.engine.Recent(intArg(req, "limit", 10))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing runs failed: %v", err)), nil
	}
	if len(runs) == 0 {
		return mcp.NewToolResultText("No archived runs."), nil
	}
	var b strings.Builder
	for _, r := range runs {
		fmt.Fprintf(&b, "#%d %s seed=%s attempts=%d spheres=%d options=%s\n",
			r.ID, r.CreatedAt, r.Seed, r.Attempts, r.Spheres, r.Options)
	}
	return mcp.NewToolResultText(b.String()), nil
}
