package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cogitohq/cogito/internal/analytics"
	"github.com/cogitohq/cogito/internal/feedback"
	"github.com/mark3labs/mcp-go/mcp"
)

// FeedbackTool handles the cogito_feedback MCP tool.
// Feedback lands in the local feedback store regardless of telemetry
// consent; it is content the user chose to write down, not something
// observed about them.
type FeedbackTool struct {
	store *feedback.Store
}

// NewFeedbackTool creates a FeedbackTool. A nil store is allowed and
// turns every call into a polite unavailability error, so a failed
// store open degrades the tool instead of the server.
func NewFeedbackTool(store *feedback.Store) *FeedbackTool {
	return &FeedbackTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *FeedbackTool) Definition() mcp.Tool {
	return mcp.NewTool("cogito_feedback",
		mcp.WithDescription(
			"Record feedback about cogito: bugs, ideas, content corrections, "+
				"or praise. Stored locally on this machine only.",
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("What kind of feedback this is."),
			mcp.Enum(feedback.Categories()...),
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The feedback itself."),
		),
		mcp.WithNumber("rating",
			mcp.Description("Optional 1 to 5 rating, 5 being best."),
		),
		mcp.WithString("tool",
			mcp.Description(
				"Optional slug of the catalog entry or tool the feedback is "+
					"about, e.g. 'first-principles' or 'cogito_diagram'.",
			),
		),
	)
}

// Handle processes the cogito_feedback tool call.
func (t *FeedbackTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := requireString(req, "category")
	if err != nil {
		return nil, err
	}
	if !feedback.ValidCategory(category) {
		return nil, analytics.Validationf("unknown category %q, want one of: %s",
			category, strings.Join(feedback.Categories(), ", "))
	}
	message, err := requireString(req, "message")
	if err != nil {
		return nil, err
	}
	rating := int(req.GetFloat("rating", 0))
	if rating != 0 && (rating < 1 || rating > 5) {
		return nil, analytics.Validationf("rating must be between 1 and 5, got %d", rating)
	}

	if t.store == nil {
		return mcp.NewToolResultError("the feedback store is unavailable in this session; feedback was not saved"), nil
	}

	id, err := t.store.Add(feedback.AddParams{
		Category: category,
		Rating:   rating,
		ToolSlug: req.GetString("tool", ""),
		Message:  message,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not save feedback: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Recorded feedback #%d (%s). It is stored locally and never leaves this machine.",
		id, category,
	)), nil
}
