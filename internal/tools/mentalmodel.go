package tools

import (
	"context"

	"github.com/cogitohq/cogito/internal/catalog"
	"github.com/mark3labs/mcp-go/mcp"
)

// MentalModelTool handles the cogito_mental_model MCP tool.
// It serves the mental-model catalog: general reasoning frames like
// first-principles or inversion, with optional application to a
// caller-supplied problem.
type MentalModelTool struct{}

// NewMentalModelTool creates a MentalModelTool.
func NewMentalModelTool() *MentalModelTool {
	return &MentalModelTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *MentalModelTool) Definition() mcp.Tool {
	return mcp.NewTool("cogito_mental_model",
		mcp.WithDescription(
			"Structured mental models for reasoning about hard problems. "+
				"Call without arguments to list the catalog, with 'model' for one "+
				"model's full write-up, or with 'model' and 'problem' to get the "+
				"model applied step by step to your concrete situation.",
		),
		mcp.WithString("model",
			mcp.Description(
				"Slug of the mental model, e.g. 'first-principles' or 'inversion'. "+
					"Leave empty to list every model with a one-line summary.",
			),
		),
		mcp.WithString("problem",
			mcp.Description(
				"A concrete problem statement to work through with the chosen model. "+
					"Requires 'model'.",
			),
		),
	)
}

// Handle processes the cogito_mental_model tool call.
func (t *MentalModelTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return catalogResponse(catalog.KindMentalModel,
		req.GetString("model", ""),
		req.GetString("problem", ""),
		"model", "problem")
}
