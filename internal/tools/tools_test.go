package tools

import (
	"testing"

	"github.com/cogitohq/cogito/internal/analytics"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Test helpers ---

// isErrorResult checks if the result is a tool error.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// --- Registration ---

// The analytics package aggregates per tool name, so the names the tools
// register under must match the names analytics knows about.
func TestDefinitionNamesMatchAnalytics(t *testing.T) {
	defs := []mcp.Tool{
		NewMentalModelTool().Definition(),
		NewDesignPatternTool().Definition(),
		NewParadigmTool().Definition(),
		NewDebuggingTool().Definition(),
		NewFeedbackTool(nil).Definition(),
		NewDiagramTool().Definition(),
	}
	known := analytics.KnownTools()
	if len(defs) != len(known) {
		t.Fatalf("got %d tool definitions, analytics knows %d", len(defs), len(known))
	}
	for i, def := range defs {
		if analytics.ToolName(def.Name) != known[i] {
			t.Errorf("definition %d = %q, want %q", i, def.Name, known[i])
		}
	}
}

func TestDefinitionsHaveDescriptions(t *testing.T) {
	defs := []mcp.Tool{
		NewMentalModelTool().Definition(),
		NewDesignPatternTool().Definition(),
		NewParadigmTool().Definition(),
		NewDebuggingTool().Definition(),
		NewFeedbackTool(nil).Definition(),
		NewDiagramTool().Definition(),
	}
	for _, def := range defs {
		if def.Description == "" {
			t.Errorf("tool %s has no description", def.Name)
		}
	}
}
