package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cogitohq/cogito/internal/analytics"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- ParadigmTool ---

func TestParadigmTool_Handle_Comparison(t *testing.T) {
	tool := NewParadigmTool()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"paradigm":     "functional",
		"compare_with": "reactive",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "# Functional Programming vs Reactive Programming") {
		t.Errorf("comparison heading missing, got:\n%s", text)
	}
	if !strings.Contains(text, "## Functional Programming") || !strings.Contains(text, "## Reactive Programming") {
		t.Error("comparison should carry a section per paradigm")
	}
	if !strings.Contains(text, "## Choosing") {
		t.Error("comparison should end with choosing guidance")
	}
}

func TestParadigmTool_Handle_ComparisonIgnoresProblem(t *testing.T) {
	tool := NewParadigmTool()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"paradigm":     "imperative",
		"compare_with": "declarative",
		"problem":      "should not appear",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if strings.Contains(getResultText(result), "should not appear") {
		t.Error("comparison should ignore the problem argument")
	}
}

func TestParadigmTool_Handle_CompareWithUnknownSlug(t *testing.T) {
	tool := NewParadigmTool()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"paradigm":     "functional",
		"compare_with": "quantum",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("unknown compare_with slug should produce an error result")
	}
	if !strings.Contains(getResultText(result), "quantum") {
		t.Error("error should echo the unknown slug")
	}
}

func TestParadigmTool_Handle_CompareWithoutParadigm(t *testing.T) {
	tool := NewParadigmTool()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"compare_with": "functional",
	}

	_, err := tool.Handle(context.Background(), req)
	var ve *analytics.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("compare_with without paradigm should be a validation error, got %v", err)
	}
}

func TestParadigmTool_Handle_CompareWithSelf(t *testing.T) {
	tool := NewParadigmTool()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"paradigm":     "functional",
		"compare_with": "FUNCTIONAL",
	}

	_, err := tool.Handle(context.Background(), req)
	var ve *analytics.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("comparing a paradigm with itself should be a validation error, got %v", err)
	}
}

func TestParadigmTool_Handle_DetailStillWorks(t *testing.T) {
	tool := NewParadigmTool()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"paradigm": "actor-model",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "# Actor Model") {
		t.Error("detail view should carry the entry heading")
	}
}
