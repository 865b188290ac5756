package resources

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cogitohq/cogito/internal/analytics"
	"github.com/mark3labs/mcp-go/mcp"
)

func readText(t *testing.T, contents []mcp.ResourceContents) mcp.TextResourceContents {
	t.Helper()
	if len(contents) != 1 {
		t.Fatalf("contents length = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T, want TextResourceContents", contents[0])
	}
	return tc
}

func TestHandleCatalogIndex(t *testing.T) {
	h := NewHandler(nil)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = CatalogIndexURI

	contents, err := h.HandleCatalogIndex(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleCatalogIndex failed: %v", err)
	}

	tc := readText(t, contents)
	if tc.URI != CatalogIndexURI {
		t.Errorf("URI = %q, want %q", tc.URI, CatalogIndexURI)
	}
	if tc.MIMEType != "application/json" {
		t.Errorf("MIMEType = %q, want application/json", tc.MIMEType)
	}

	var idx map[string][]struct {
		Slug    string `json:"slug"`
		Name    string `json:"name"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(tc.Text), &idx); err != nil {
		t.Fatalf("index is not valid JSON: %v", err)
	}
	if len(idx) != 4 {
		t.Fatalf("index kinds = %d, want 4", len(idx))
	}
	for kind, entries := range idx {
		if len(entries) == 0 {
			t.Errorf("kind %q has no entries", kind)
		}
		for _, e := range entries {
			if e.Slug == "" || e.Name == "" || e.Summary == "" {
				t.Errorf("kind %q has an incomplete entry: %+v", kind, e)
			}
		}
	}
}

func TestHandleTelemetryStatus(t *testing.T) {
	rt, err := analytics.NewRuntime(context.Background(), analytics.RuntimeOptions{
		ConfigDir: t.TempDir(),
		DataDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewRuntime failed: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close(context.Background()) })

	h := NewHandler(rt)
	req := mcp.ReadResourceRequest{}
	req.Params.URI = TelemetryStatusURI

	contents, err := h.HandleTelemetryStatus(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleTelemetryStatus failed: %v", err)
	}

	tc := readText(t, contents)
	var st analytics.Status
	if err := json.Unmarshal([]byte(tc.Text), &st); err != nil {
		t.Fatalf("status is not valid JSON: %v", err)
	}
	if st.Enabled {
		t.Error("fresh runtime should report collection disabled")
	}
	if st.ConsentState != analytics.ConsentNone {
		t.Errorf("consentState = %q, want %q", st.ConsentState, analytics.ConsentNone)
	}
}

func TestHandleTelemetryStatusWithoutRuntime(t *testing.T) {
	h := NewHandler(nil)
	req := mcp.ReadResourceRequest{}
	req.Params.URI = TelemetryStatusURI

	contents, err := h.HandleTelemetryStatus(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleTelemetryStatus failed: %v", err)
	}

	tc := readText(t, contents)
	if !strings.HasPrefix(tc.Text, "Error:") {
		t.Errorf("missing runtime should yield an error resource, got: %s", tc.Text)
	}
}
