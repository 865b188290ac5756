package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// RetroPrompt handles the cogito-retro MCP prompt.
// It runs a short retrospective on work that just finished and feeds
// anything worth keeping into the local feedback store.
type RetroPrompt struct{}

// NewRetroPrompt creates a RetroPrompt.
func NewRetroPrompt() *RetroPrompt {
	return &RetroPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *RetroPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("cogito-retro",
		mcp.WithPromptDescription(
			"Run a short retrospective on a task you just finished: what "+
				"worked, what did not, and what to do differently. Records "+
				"takeaways about cogito itself through the feedback tool.",
		),
		mcp.WithArgument("task",
			mcp.ArgumentDescription("The task or piece of work to look back on"),
		),
	)
}

// Handle processes the cogito-retro prompt request.
func (p *RetroPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	task := "the work we just finished"
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["task"]; ok && v != "" {
			task = v
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Retrospective: %s", task),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Let's run a short retrospective on: %s\n\n"+
						"Please:\n"+
						"1. Call `cogito_mental_model` with model='second-order' and the question of what this work changes going forward\n"+
						"2. Summarize in three short lists: what went well, what cost time, what we would do differently\n"+
						"3. Ask me whether I agree or want to amend anything\n"+
						"4. If anything on the list is about cogito itself (a confusing write-up, a missing entry, a bug), "+
						"record it with `cogito_feedback` using the fitting category\n"+
						"5. Close with the single highest-leverage change for next time",
					task,
				)),
			},
		},
	}, nil
}
