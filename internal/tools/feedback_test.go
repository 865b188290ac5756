package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cogitohq/cogito/internal/analytics"
	"github.com/cogitohq/cogito/internal/feedback"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- FeedbackTool ---

func newFeedbackStore(t *testing.T) *feedback.Store {
	t.Helper()
	store, err := feedback.New(feedback.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestFeedbackTool_Handle_RecordsFeedback(t *testing.T) {
	store := newFeedbackStore(t)
	tool := NewFeedbackTool(store)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"category": "bug",
		"message":  "The inversion example talks about a tool that does not exist.",
		"rating":   float64(2),
		"tool":     "inversion",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "#1") {
		t.Errorf("result should carry the feedback id, got: %s", text)
	}
	if !strings.Contains(text, "bug") {
		t.Error("result should echo the category")
	}

	entries, err := store.Recent(1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("stored entries = %d, want 1", len(entries))
	}
	got := entries[0]
	if got.Category != "bug" || got.Rating != 2 || got.ToolSlug != "inversion" {
		t.Errorf("stored entry = %+v", got)
	}
	if !strings.Contains(got.Message, "inversion example") {
		t.Error("stored message should match what was sent")
	}
}

func TestFeedbackTool_Handle_MissingMessage(t *testing.T) {
	tool := NewFeedbackTool(newFeedbackStore(t))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"category": "idea",
	}

	_, err := tool.Handle(context.Background(), req)
	var ve *analytics.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("missing message should be a validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "message") {
		t.Errorf("error should name the missing argument: %v", err)
	}
}

func TestFeedbackTool_Handle_UnknownCategory(t *testing.T) {
	tool := NewFeedbackTool(newFeedbackStore(t))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"category": "rant",
		"message":  "text",
	}

	_, err := tool.Handle(context.Background(), req)
	var ve *analytics.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("unknown category should be a validation error, got %v", err)
	}
}

func TestFeedbackTool_Handle_RatingOutOfRange(t *testing.T) {
	tool := NewFeedbackTool(newFeedbackStore(t))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"category": "praise",
		"message":  "great",
		"rating":   float64(11),
	}

	_, err := tool.Handle(context.Background(), req)
	var ve *analytics.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("out-of-range rating should be a validation error, got %v", err)
	}
}

func TestFeedbackTool_Handle_NilStoreDegrades(t *testing.T) {
	tool := NewFeedbackTool(nil)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"category": "bug",
		"message":  "anything",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("nil store should degrade, not fail: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("nil store should produce an error result")
	}
	if !strings.Contains(getResultText(result), "unavailable") {
		t.Error("error should say the store is unavailable")
	}
}
