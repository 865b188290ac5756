package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cogitohq/cogito/internal/analytics"
	"github.com/cogitohq/cogito/internal/catalog"
	"github.com/mark3labs/mcp-go/mcp"
)

// ParadigmTool handles the cogito_paradigm MCP tool.
// On top of the usual list, detail, and apply flows it can compare two
// paradigms side by side, which is how the question usually arrives
// ("functional or reactive for this?").
type ParadigmTool struct{}

// NewParadigmTool creates a ParadigmTool.
func NewParadigmTool() *ParadigmTool {
	return &ParadigmTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ParadigmTool) Definition() mcp.Tool {
	return mcp.NewTool("cogito_paradigm",
		mcp.WithDescription(
			"Programming paradigms and when each one earns its keep. "+
				"Call without arguments to list the catalog, with 'paradigm' for one "+
				"paradigm's full write-up, with 'paradigm' and 'problem' to apply it, "+
				"or with 'paradigm' and 'compare_with' for a side-by-side comparison.",
		),
		mcp.WithString("paradigm",
			mcp.Description(
				"Slug of the paradigm, e.g. 'functional' or 'actor-model'. "+
					"Leave empty to list every paradigm.",
			),
		),
		mcp.WithString("problem",
			mcp.Description(
				"A concrete design question to work through in the chosen paradigm. "+
					"Requires 'paradigm'. Ignored when 'compare_with' is set.",
			),
		),
		mcp.WithString("compare_with",
			mcp.Description(
				"Slug of a second paradigm to compare against 'paradigm'.",
			),
		),
	)
}

// Handle processes the cogito_paradigm tool call.
func (t *ParadigmTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug := strings.TrimSpace(req.GetString("paradigm", ""))
	compare := strings.TrimSpace(req.GetString("compare_with", ""))

	if compare == "" {
		return catalogResponse(catalog.KindParadigm,
			slug, req.GetString("problem", ""),
			"paradigm", "problem")
	}

	if slug == "" {
		return nil, analytics.Validationf("%q needs %q to be set", "compare_with", "paradigm")
	}
	a, ok := catalog.Get(catalog.KindParadigm, slug)
	if !ok {
		return unknownSlugResult(catalog.KindParadigm, slug), nil
	}
	b, ok := catalog.Get(catalog.KindParadigm, compare)
	if !ok {
		return unknownSlugResult(catalog.KindParadigm, compare), nil
	}
	if strings.EqualFold(a.Slug, b.Slug) {
		return nil, analytics.Validationf("%q must name a paradigm other than %q", "compare_with", a.Slug)
	}
	return mcp.NewToolResultText(renderParadigmComparison(a, b)), nil
}

// renderParadigmComparison builds the side-by-side view: each paradigm's
// summary and when-to-use list, then a short note on choosing.
func renderParadigmComparison(a, b catalog.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s vs %s\n\n", a.Name, b.Name)

	for _, e := range []catalog.Entry{a, b} {
		fmt.Fprintf(&sb, "## %s\n\n%s\n", e.Name, e.Summary)
		if len(e.WhenToUse) > 0 {
			sb.WriteString("\nReach for it when:\n\n")
			for _, w := range e.WhenToUse {
				fmt.Fprintf(&sb, "- %s\n", w)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Choosing\n\n")
	fmt.Fprintf(&sb,
		"Paradigms mix; most codebases use several, chosen per component rather "+
			"than per project. Weigh the lists above against the component at hand, "+
			"and request `%s` or `%s` individually for the full write-up including "+
			"pitfalls.\n",
		a.Slug, b.Slug)
	return sb.String()
}
