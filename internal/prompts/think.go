// Package prompts implements the MCP prompt handlers of the cogito
// server.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ThinkPrompt handles the cogito-think MCP prompt.
// It sends the AI through the catalogs before it starts solving: pick a
// mental model or debugging approach that fits the problem, then apply
// it, instead of pattern-matching straight to an answer.
type ThinkPrompt struct{}

// NewThinkPrompt creates a ThinkPrompt.
func NewThinkPrompt() *ThinkPrompt {
	return &ThinkPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ThinkPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("cogito-think",
		mcp.WithPromptDescription(
			"Work a problem through a structured reasoning approach. "+
				"Picks a fitting mental model, paradigm, or debugging approach "+
				"from the cogito catalogs and applies it step by step before "+
				"proposing a solution.",
		),
		mcp.WithArgument("problem",
			mcp.ArgumentDescription("The problem or decision to reason about"),
		),
	)
}

// Handle processes the cogito-think prompt request.
func (p *ThinkPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	problem := "the problem I describe next"
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["problem"]; ok && v != "" {
			problem = v
		}
	}

	return &mcp.GetPromptResult{
		Description: "Reason through a problem with a structured approach",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to think through this carefully rather than jump to an answer: %s\n\n"+
						"Please:\n"+
						"1. Decide whether this is a design question, a debugging session, or an open decision\n"+
						"2. For a bug, call `cogito_debugging` with no arguments and pick the approach matching my symptom; "+
						"otherwise call `cogito_mental_model` with no arguments and pick one or two fitting models\n"+
						"3. Call the same tool again with your pick and my problem so you get the steps applied to it\n"+
						"4. Work through those steps explicitly, one at a time, before proposing any solution\n"+
						"5. End with what the chosen approach would have you check before committing to the answer",
					problem,
				)),
			},
		},
	}, nil
}
