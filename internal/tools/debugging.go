package tools

import (
	"context"
	"strings"

	"github.com/cogitohq/cogito/internal/catalog"
	"github.com/mark3labs/mcp-go/mcp"
)

// DebuggingTool handles the cogito_debugging MCP tool.
// The no-argument listing carries an extra selection guide, because the
// common failure mode with debugging approaches is not applying one badly
// but picking the wrong one for the symptom.
type DebuggingTool struct{}

// NewDebuggingTool creates a DebuggingTool.
func NewDebuggingTool() *DebuggingTool {
	return &DebuggingTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *DebuggingTool) Definition() mcp.Tool {
	return mcp.NewTool("cogito_debugging",
		mcp.WithDescription(
			"Systematic debugging approaches. Call without arguments to list "+
				"them with a guide for matching approach to symptom, with "+
				"'approach' for one approach's full write-up, or with 'approach' "+
				"and 'symptom' to get a step-by-step plan for your bug.",
		),
		mcp.WithString("approach",
			mcp.Description(
				"Slug of the debugging approach, e.g. 'binary-search' or "+
					"'cause-elimination'. Leave empty to list every approach.",
			),
		),
		mcp.WithString("symptom",
			mcp.Description(
				"What you observe: the failing behavior, when it started, how "+
					"often it reproduces. The approach's steps come back applied "+
					"to it. Requires 'approach'.",
			),
		),
	)
}

// Handle processes the cogito_debugging tool call.
func (t *DebuggingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug := strings.TrimSpace(req.GetString("approach", ""))
	symptom := req.GetString("symptom", "")

	if slug == "" && strings.TrimSpace(symptom) == "" {
		var sb strings.Builder
		sb.WriteString(catalog.RenderList(catalog.KindDebugging))
		sb.WriteString("\n## Picking an Approach\n\n")
		sb.WriteString("- It worked before: `differential-debugging` against the last good version, or `binary-search` over the change history.\n")
		sb.WriteString("- Fails somewhere in a long pipeline: `divide-and-conquer` to halve the search space.\n")
		sb.WriteString("- Wrong value at the end: `backtracking` from the bad output, or `program-slicing` to isolate what feeds it.\n")
		sb.WriteString("- Intermittent or environment-dependent: `cause-elimination` over an explicit hypothesis list.\n")
		sb.WriteString("- Unfamiliar code: `reverse-engineering` before changing anything.\n")
		sb.WriteString("- Stuck after staring too long: `rubber-duck-debugging`.\n")
		return mcp.NewToolResultText(sb.String()), nil
	}

	return catalogResponse(catalog.KindDebugging, slug, symptom, "approach", "symptom")
}
