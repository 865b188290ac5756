package analytics

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewSessionID(t *testing.T) {
	id := NewSessionID()
	if len(id) != 16 {
		t.Fatalf("session id %q has length %d, want 16", id, len(id))
	}
	for _, r := range id {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("session id %q contains non-hex character %q", id, r)
		}
	}
	if NewSessionID() == id {
		t.Error("two session ids are identical")
	}
}

func TestPartitionDateUsesEventTimestamp(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	ev := eventAt(ToolMentalModel, time.Date(2026, 3, 14, 23, 30, 0, 0, loc))
	if got, want := ev.PartitionDate(), "2026-03-15"; got != want {
		t.Errorf("PartitionDate() = %q, want %q", got, want)
	}
}

func TestEventJSONFieldSet(t *testing.T) {
	ev := failedAt(ToolDebugging, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), CategoryRuntime)
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	allowed := map[string]bool{
		"toolName":      true,
		"timestamp":     true,
		"success":       true,
		"durationMs":    true,
		"sessionId":     true,
		"errorCategory": true,
	}
	for key := range raw {
		if !allowed[key] {
			t.Errorf("event JSON carries unexpected key %q", key)
		}
	}
	for key := range allowed {
		if _, ok := raw[key]; !ok {
			t.Errorf("event JSON missing key %q", key)
		}
	}
}

func TestEventJSONOmitsCategoryOnSuccess(t *testing.T) {
	ev := eventAt(ToolParadigm, time.Now().UTC())
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := raw["errorCategory"]; ok {
		t.Error("successful event should not carry errorCategory")
	}
}
