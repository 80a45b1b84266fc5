package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/appengine-ltd/lm-randomizer/internal/engine"
)

// ValidateTool handles the validate MCP tool.
type ValidateTool struct {
	engine *engine.Engine
}

func NewValidateTool(e *engine.Engine) *ValidateTool {
	return &ValidateTool{engine: e}
}

func (t *ValidateTool) Definition() mcp.Tool {
	return mcp.NewTool("validate",
		mcp.WithDescription("Check that the unmodified game layout can be completed from a new game."),
		mcp.WithBoolean("shuffle_secret_roms",
			mcp.Description("Treat secret ROM spots as item spots instead of events"),
		),
		mcp.WithBoolean("need_glitches",
			mcp.Description("Allow logic that depends on glitches"),
		),
	)
}

func (t *ValidateTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	err := t.engine.Validate(boolArg(req, "shuffle_secret_roms", false), boolArg(req, "need_glitches", false))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("layout is not completable: %v", err)), nil
	}
	return mcp.NewToolResultText("Layout is completable."), nil
}
