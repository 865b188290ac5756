// Package resources implements the MCP resource handlers of the cogito
// server.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (cogito://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cogitohq/cogito/internal/analytics"
	"github.com/cogitohq/cogito/internal/catalog"
	"github.com/mark3labs/mcp-go/mcp"
)

// Resource URIs.
const (
	CatalogIndexURI    = "cogito://catalog/index"
	TelemetryStatusURI = "cogito://telemetry/status"
)

// Handler manages the cogito resource endpoints.
type Handler struct {
	runtime *analytics.Runtime
}

// NewHandler creates a resource Handler. A nil runtime is allowed; the
// telemetry status resource then reports that analytics is unavailable.
func NewHandler(runtime *analytics.Runtime) *Handler {
	return &Handler{runtime: runtime}
}

// CatalogIndexResource returns the MCP resource definition for the
// catalog index.
func (h *Handler) CatalogIndexResource() mcp.Resource {
	return mcp.NewResource(
		CatalogIndexURI,
		"Cogito Catalog Index",
		mcp.WithResourceDescription("Every catalog entry with slug, name, and one-line summary, keyed by catalog kind"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleCatalogIndex returns the catalog index as JSON.
func (h *Handler) HandleCatalogIndex(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(catalog.Index(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling catalog index: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

// TelemetryStatusResource returns the MCP resource definition for the
// telemetry status view.
func (h *Handler) TelemetryStatusResource() mcp.Resource {
	return mcp.NewResource(
		TelemetryStatusURI,
		"Telemetry Status",
		mcp.WithResourceDescription("Consent state, resolved analytics configuration, and storage statistics"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleTelemetryStatus returns the current analytics status as JSON.
func (h *Handler) HandleTelemetryStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.runtime == nil {
		return errorResource(req.Params.URI, "analytics runtime unavailable"), nil
	}
	st, err := h.runtime.Status(ctx)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling telemetry status: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

// jsonResource wraps marshaled JSON as resource contents.
func jsonResource(uri string, data []byte) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
