package analytics

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// grantedGate returns a gate with consent granted under the current
// policy version, backed by a temp file.
func grantedGate(t *testing.T) *ConsentGate {
	t.Helper()
	g := NewConsentGate(filepath.Join(t.TempDir(), "consent.json"), testLogger())
	if _, err := g.Grant(); err != nil {
		t.Fatalf("Grant() error = %v", err)
	}
	return g
}

// deniedGate returns a gate with no consent record.
func deniedGate(t *testing.T) *ConsentGate {
	t.Helper()
	return NewConsentGate(filepath.Join(t.TempDir(), "consent.json"), testLogger())
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(t.TempDir(), testLogger())
}

// pinTime freezes the package clock for the duration of the test. Tests
// using it must not run in parallel.
func pinTime(t *testing.T, now time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
}

// waitFor polls until the condition holds or the timeout expires.
func waitFor(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// eventAt builds a successful event for the given tool at the given time.
func eventAt(tool ToolName, ts time.Time) Event {
	return Event{
		ToolName:   tool,
		Timestamp:  ts,
		Success:    true,
		DurationMS: 5,
		SessionID:  "a1b2c3d4e5f60718",
	}
}

// failedAt builds a failed event with the given category.
func failedAt(tool ToolName, ts time.Time, cat Category) Event {
	ev := eventAt(tool, ts)
	ev.Success = false
	ev.ErrorCategory = cat
	return ev
}
