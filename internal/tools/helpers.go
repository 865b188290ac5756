// Package tools implements the MCP tool handlers of the cogito server.
//
// Each tool is a struct that receives its dependencies at construction
// and exposes a Definition for registration plus a Handle compatible
// with mcp-go's CallToolRequest signature.
//
// Design principles:
// - SRP: each file = one tool
// - DIP: tools receive what they need (a feedback store, catalog lookups), never reach for globals
// - argument mistakes surface as typed validation errors so instrumentation can classify them by type alone
package tools

import (
	"fmt"
	"strings"

	"github.com/cogitohq/cogito/internal/analytics"
	"github.com/cogitohq/cogito/internal/catalog"
	"github.com/mark3labs/mcp-go/mcp"
)

// requireString reads a required string argument, rejecting absent or
// blank values with a validation error.
func requireString(req mcp.CallToolRequest, name string) (string, error) {
	v := strings.TrimSpace(req.GetString(name, ""))
	if v == "" {
		return "", analytics.Validationf("missing required argument %q", name)
	}
	return v, nil
}

// unknownSlugResult builds the error result for a slug that is not in the
// catalog. It lists what is available so the caller can self-correct
// without a second round trip.
func unknownSlugResult(kind catalog.Kind, slug string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf(
		"unknown %s slug %q. Available: %s",
		kind, slug, strings.Join(catalog.Slugs(kind), ", "),
	))
}

// catalogResponse implements the flow shared by the four catalog tools:
// no slug lists the catalog, a slug returns the full write-up, and a slug
// plus a problem statement returns the entry applied to that problem.
// slugArg and problemArg are the calling tool's argument names, quoted
// verbatim in validation messages.
func catalogResponse(kind catalog.Kind, slug, problem, slugArg, problemArg string) (*mcp.CallToolResult, error) {
	slug = strings.TrimSpace(slug)
	problem = strings.TrimSpace(problem)

	if slug == "" {
		if problem != "" {
			return nil, analytics.Validationf(
				"%q needs %q to be set; call without arguments to list available entries",
				problemArg, slugArg,
			)
		}
		return mcp.NewToolResultText(catalog.RenderList(kind)), nil
	}

	entry, ok := catalog.Get(kind, slug)
	if !ok {
		return unknownSlugResult(kind, slug), nil
	}
	if problem != "" {
		return mcp.NewToolResultText(catalog.RenderApplication(kind, entry, problem)), nil
	}
	return mcp.NewToolResultText(catalog.Render(kind, entry)), nil
}
