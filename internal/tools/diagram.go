package tools

import (
	"context"
	"encoding/json"

	"github.com/cogitohq/cogito/internal/analytics"
	"github.com/cogitohq/cogito/internal/diagram"
	"github.com/mark3labs/mcp-go/mcp"
)

// DiagramTool handles the cogito_diagram MCP tool. It turns a node and
// edge listing into mermaid source, so callers get renderable diagrams
// without knowing mermaid's syntax or its escaping rules.
type DiagramTool struct{}

// NewDiagramTool creates a DiagramTool.
func NewDiagramTool() *DiagramTool {
	return &DiagramTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *DiagramTool) Definition() mcp.Tool {
	return mcp.NewTool("cogito_diagram",
		mcp.WithDescription(
			"Render a mermaid diagram from a list of nodes and edges. "+
				"Supports flowcharts, sequence diagrams, and state diagrams. "+
				"IDs are sanitized and labels escaped, so any text is safe to pass.",
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("The diagram type to render."),
			mcp.Enum(diagram.Kinds()...),
		),
		mcp.WithString("nodes",
			mcp.Description(
				`JSON array of nodes, e.g. [{"id":"fetch","label":"Fetch input"},{"id":"parse"}]. `+
					"Optional for diagrams whose nodes all appear in edges.",
			),
		),
		mcp.WithString("edges",
			mcp.Description(
				`JSON array of edges, e.g. [{"from":"fetch","to":"parse","label":"raw bytes"}].`,
			),
		),
		mcp.WithString("title",
			mcp.Description("Optional diagram title."),
		),
	)
}

// Handle processes the cogito_diagram tool call.
func (t *DiagramTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := requireString(req, "kind")
	if err != nil {
		return nil, err
	}

	spec := diagram.Spec{Title: req.GetString("title", "")}
	if nodesJSON := req.GetString("nodes", ""); nodesJSON != "" {
		if err := json.Unmarshal([]byte(nodesJSON), &spec.Nodes); err != nil {
			return nil, analytics.Validationf(
				`invalid nodes parameter, expected a JSON array like [{"id":"fetch","label":"Fetch input"}]: %v`, err)
		}
	}
	if edgesJSON := req.GetString("edges", ""); edgesJSON != "" {
		if err := json.Unmarshal([]byte(edgesJSON), &spec.Edges); err != nil {
			return nil, analytics.Validationf(
				`invalid edges parameter, expected a JSON array like [{"from":"fetch","to":"parse"}]: %v`, err)
		}
	}

	out, err := diagram.Render(diagram.Kind(kind), spec)
	if err != nil {
		return nil, analytics.Validationf("%v", err)
	}
	return mcp.NewToolResultText("```mermaid\n" + out + "```"), nil
}
