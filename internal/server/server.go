// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on them.
// No business logic lives here, only wiring.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/cogitohq/cogito/internal/analytics"
	"github.com/cogitohq/cogito/internal/feedback"
	"github.com/cogitohq/cogito/internal/prompts"
	"github.com/cogitohq/cogito/internal/resources"
	"github.com/cogitohq/cogito/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// retentionSchedule runs the retention sweep once a day while the server
// is up. Startup additionally runs one sweep immediately, so short-lived
// processes still enforce retention.
const retentionSchedule = "@every 24h"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// Telemetry and the feedback store are independent subsystems: if either
// fails to initialize the server still comes up with that piece disabled,
// because neither may ever keep the reasoning tools from working.
//
// The returned cleanup function flushes and closes both subsystems and
// must be called on shutdown (typically via defer). It is always non-nil.
func New(ctx context.Context, logger *slog.Logger) (*server.MCPServer, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	// --- Create shared dependencies ---

	rt, err := analytics.NewRuntime(ctx, analytics.RuntimeOptions{
		CleanupOnInit: true,
		Schedule:      retentionSchedule,
		Logger:        logger,
	})
	if err != nil {
		logger.Warn("telemetry disabled", "error", err)
		rt = nil
	}

	fbStore, err := feedback.New(feedback.DefaultConfig())
	if err != nil {
		logger.Warn("feedback store disabled", "error", err)
		fbStore = nil
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if rt != nil {
			if err := rt.Close(shutdownCtx); err != nil {
				logger.Warn("telemetry shutdown", "error", err)
			}
		}
		if fbStore != nil {
			if err := fbStore.Close(); err != nil {
				logger.Warn("feedback store close", "error", err)
			}
		}
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"cogito",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
		// Every tool call flows through the analytics middleware. With a
		// nil runtime or without consent it is a pure passthrough.
		server.WithToolHandlerMiddleware(analytics.ToolMiddleware(rt)),
	)

	// --- Register catalog tools ---

	mentalModelTool := tools.NewMentalModelTool()
	s.AddTool(mentalModelTool.Definition(), mentalModelTool.Handle)

	designPatternTool := tools.NewDesignPatternTool()
	s.AddTool(designPatternTool.Definition(), designPatternTool.Handle)

	paradigmTool := tools.NewParadigmTool()
	s.AddTool(paradigmTool.Definition(), paradigmTool.Handle)

	debuggingTool := tools.NewDebuggingTool()
	s.AddTool(debuggingTool.Definition(), debuggingTool.Handle)

	// --- Register feedback and diagram tools ---

	feedbackTool := tools.NewFeedbackTool(fbStore)
	s.AddTool(feedbackTool.Definition(), feedbackTool.Handle)

	diagramTool := tools.NewDiagramTool()
	s.AddTool(diagramTool.Definition(), diagramTool.Handle)

	// --- Register prompts ---

	thinkPrompt := prompts.NewThinkPrompt()
	s.AddPrompt(thinkPrompt.Definition(), thinkPrompt.Handle)

	retroPrompt := prompts.NewRetroPrompt()
	s.AddPrompt(retroPrompt.Definition(), retroPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(rt)
	s.AddResource(resourceHandler.CatalogIndexResource(), resourceHandler.HandleCatalogIndex)
	s.AddResource(resourceHandler.TelemetryStatusResource(), resourceHandler.HandleTelemetryStatus)

	return s, cleanup, nil
}

// serverInstructions returns the system instructions that tell the AI
// how to use cogito effectively.
func serverInstructions() string {
	return `You have access to cogito, a structured-reasoning MCP server.

## WHEN TO REACH FOR cogito

Use the catalog tools when you are about to:
- Make a design or architecture decision (cogito_design_pattern, cogito_paradigm)
- Debug something non-obvious (cogito_debugging)
- Reason about a hard, open-ended problem or tradeoff (cogito_mental_model)

You do NOT need cogito for routine edits, lookups, or questions you can
answer directly.

## How the Catalog Tools Work

Every catalog tool has the same three forms:
1. No arguments: lists the catalog with one-line summaries. Start here.
2. With a slug: returns the full write-up (definition, when to use,
   steps, pitfalls, example).
3. With a slug AND your concrete problem: returns the steps applied to
   that problem as a working checklist. Fill in the "Applied here" lines
   yourself; the tool provides structure, you provide the thinking.

cogito_paradigm additionally takes compare_with for a side-by-side view
of two paradigms.

## Diagrams

cogito_diagram turns a JSON list of nodes and edges into mermaid source
(flowchart, sequence, or state). Use it when an explanation would be
clearer as a picture; paste the returned block directly into markdown.

## Feedback

When the user points out a wrong, confusing, or missing catalog entry,
or praises one, record it with cogito_feedback. It is stored only on
the user's machine.

## Telemetry

Local usage telemetry is consent-gated and off until the user runs
"cogito telemetry enable". Events carry tool name, timestamp, outcome,
duration, and a random session id. Never tool arguments, output, or any
content. The cogito://telemetry/status resource shows the current state;
"cogito telemetry clear" wipes all stored events.`
}
