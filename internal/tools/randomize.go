package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/appengine-ltd/lm-randomizer/internal/engine"
)

// RandomizeTool handles the randomize MCP tool.
type RandomizeTool struct {
	engine *engine.Engine
}

func NewRandomizeTool(e *engine.Engine) *RandomizeTool {
	return &RandomizeTool{engine: e}
}

func (t *RandomizeTool) Definition() mcp.Tool {
	return mcp.NewTool("randomize",
		mcp.WithDescription(
			"Shuffle the game's items into a completable layout and return the spoiler log. "+
				"The same seed always gives the same layout.",
		),
		mcp.WithString("seed",
			mcp.Description("Seed string (default: a fresh random seed)"),
		),
		mcp.WithBoolean("easy_mode",
			mcp.Description("Start the game holding the Game Master ROM"),
		),
		mcp.WithBoolean("shuffle_secret_roms",
			mcp.Description("Put secret ROM spots in the item pool"),
		),
		mcp.WithBoolean("need_glitches",
			mcp.Description("Allow logic that depends on glitches"),
		),
	)
}

func (t *RandomizeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := t.engine.Randomize(ctx, engine.Request{
		Seed:              strings.TrimSpace(req.GetString("seed", "")),
		EasyMode:          boolArg(req, "easy_mode", false),
		ShuffleSecretRoms: boolArg(req, "shuffle_secret_roms", false),
		NeedGlitches:      boolArg(req, "need_glitches", false),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("randomize failed: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Seed: %s\n", out.Request.Seed)
	fmt.Fprintf(&b, "Attempts: %d\n", out.Result.Attempts)
	fmt.Fprintf(&b, "Spheres: %d\n", len(out.Result.SpoilerLog.Progression))
	if len(out.Result.StartingItems) > 0 {
		items := make([]string, len(out.Result.StartingItems))
		for i, f := range out.Result.StartingItems {
			items[i] = string(f)
		}
		fmt.Fprintf(&b, "Starting items: %s\n", strings.Join(items, ", "))
	}
	if out.RunID != 0 {
		fmt.Fprintf(&b, "Archived as run #%d\n", out.RunID)
	}
	b.WriteString("\n")
	b.WriteString(out.Result.SpoilerLog.String())
	return mcp.NewToolResultText(b.String()), nil
}
