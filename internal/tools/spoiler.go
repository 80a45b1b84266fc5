package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/appengine-ltd/lm-randomizer/internal/archive"
	"github.com/appengine-ltd/lm-randomizer/internal/engine"
)

// SpoilerTool handles the spoiler MCP tool.
type SpoilerTool struct {
	engine *engine.Engine
}

func NewSpoilerTool(e *engine.Engine) *SpoilerTool {
	return &SpoilerTool{engine: e}
}

func (t *SpoilerTool) Definition() mcp.Tool {
	return mcp.NewTool("spoiler",
		mcp.WithDescription("Look up the spoiler log of an archived run by seed."),
		mcp.WithString("seed",
			mcp.Required(),
			mcp.Description("Seed of the run"),
		),
	)
}

func (t *SpoilerTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seed := strings.TrimSpace(req.GetString("seed", ""))
	if seed == "" {
		return mcp.NewToolResultError("'seed' is required"), nil
	}
	run, err := t.engine.Spoiler(seed)
	if errors.Is(err, archive.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("no archived run for seed %q", seed)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("spoiler lookup failed: %v", err)), nil
	}
	return mcp.NewToolResultText(run.Spoiler), nil
}
