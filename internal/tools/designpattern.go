package tools

import (
	"context"

	"github.com/cogitohq/cogito/internal/catalog"
	"github.com/mark3labs/mcp-go/mcp"
)

// DesignPatternTool handles the cogito_design_pattern MCP tool.
// It serves the design-pattern catalog: recurring software structures
// like modular architecture or event sourcing, framed around the system
// the caller is designing.
type DesignPatternTool struct{}

// NewDesignPatternTool creates a DesignPatternTool.
func NewDesignPatternTool() *DesignPatternTool {
	return &DesignPatternTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *DesignPatternTool) Definition() mcp.Tool {
	return mcp.NewTool("cogito_design_pattern",
		mcp.WithDescription(
			"Software design patterns for structuring systems. "+
				"Call without arguments to list the catalog, with 'pattern' for one "+
				"pattern's full write-up, or with 'pattern' and 'scenario' to see the "+
				"pattern worked into the system you are designing.",
		),
		mcp.WithString("pattern",
			mcp.Description(
				"Slug of the design pattern, e.g. 'modular-architecture' or "+
					"'event-sourcing'. Leave empty to list every pattern.",
			),
		),
		mcp.WithString("scenario",
			mcp.Description(
				"The system, feature, or constraint you are designing for. The "+
					"pattern's steps come back applied to it. Requires 'pattern'.",
			),
		),
	)
}

// Handle processes the cogito_design_pattern tool call.
func (t *DesignPatternTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return catalogResponse(catalog.KindDesignPattern,
		req.GetString("pattern", ""),
		req.GetString("scenario", ""),
		"pattern", "scenario")
}
