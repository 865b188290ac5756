package analytics

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConsentFirstRun(t *testing.T) {
	g := deniedGate(t)
	if g.Granted() {
		t.Error("Granted() = true with no record")
	}
	if !g.FirstRun() {
		t.Error("FirstRun() = false with no record")
	}
	if g.NeedsReconsent() {
		t.Error("NeedsReconsent() = true with no record")
	}
}

func TestConsentGrantAndWithdraw(t *testing.T) {
	g := deniedGate(t)

	rec, err := g.Grant()
	if err != nil {
		t.Fatalf("Grant() error = %v", err)
	}
	if !g.Granted() {
		t.Fatal("Granted() = false after Grant")
	}
	if rec.ConsentedAt == nil {
		t.Fatal("Grant() left ConsentedAt unset")
	}
	if rec.PolicyVersion != PolicyVersion {
		t.Errorf("PolicyVersion = %q, want %q", rec.PolicyVersion, PolicyVersion)
	}
	grantedAt := *rec.ConsentedAt

	rec, err = g.Withdraw()
	if err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}
	if g.Granted() {
		t.Error("Granted() = true after Withdraw")
	}
	if rec.WithdrawnAt == nil {
		t.Error("Withdraw() left WithdrawnAt unset")
	}
	if rec.ConsentedAt == nil || !rec.ConsentedAt.Equal(grantedAt) {
		t.Error("Withdraw() must preserve the original ConsentedAt")
	}
	if g.FirstRun() {
		t.Error("FirstRun() = true after Withdraw; record still exists")
	}
}

func TestConsentRegrantKeepsWithdrawalHistory(t *testing.T) {
	g := deniedGate(t)

	if _, err := g.Grant(); err != nil {
		t.Fatalf("Grant() error = %v", err)
	}
	withdrawn, err := g.Withdraw()
	if err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}

	rec, err := g.Grant()
	if err != nil {
		t.Fatalf("second Grant() error = %v", err)
	}
	if !g.Granted() {
		t.Fatal("Granted() = false after re-grant")
	}
	if rec.WithdrawnAt == nil || !rec.WithdrawnAt.Equal(*withdrawn.WithdrawnAt) {
		t.Error("re-grant must keep the earlier withdrawal timestamp")
	}
	if rec.ConsentedAt == nil || rec.ConsentedAt.Before(*withdrawn.WithdrawnAt) {
		t.Error("re-grant must stamp a fresh ConsentedAt")
	}
}

func TestConsentSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consent.json")
	g := NewConsentGate(path, testLogger())
	if _, err := g.Grant(); err != nil {
		t.Fatalf("Grant() error = %v", err)
	}

	fresh := NewConsentGate(path, testLogger())
	if !fresh.Granted() {
		t.Error("Granted() = false after reload from disk")
	}
}

func TestConsentStalePolicyVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consent.json")
	if err := os.WriteFile(path, []byte(`{"hasConsented":true,"policyVersion":"0.9"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	g := NewConsentGate(path, testLogger())
	if g.Granted() {
		t.Error("Granted() = true under a stale policy version")
	}
	if !g.NeedsReconsent() {
		t.Error("NeedsReconsent() = false under a stale policy version")
	}
	if g.FirstRun() {
		t.Error("FirstRun() = true although a record exists")
	}
}

func TestConsentCorruptRecordFailsSafe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consent.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := NewConsentGate(path, testLogger())
	if g.Granted() {
		t.Error("Granted() = true with a corrupt record")
	}
	if !g.FirstRun() {
		t.Error("corrupt record should present as first run")
	}
}

func TestConsentDeletePersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consent.json")
	g := NewConsentGate(path, testLogger())
	if _, err := g.Grant(); err != nil {
		t.Fatalf("Grant() error = %v", err)
	}

	if err := g.DeletePersisted(); err != nil {
		t.Fatalf("DeletePersisted() error = %v", err)
	}
	if g.Granted() {
		t.Error("Granted() = true after DeletePersisted")
	}
	if !g.FirstRun() {
		t.Error("FirstRun() = false after DeletePersisted")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("consent file still exists: %v", err)
	}

	// Deleting again is a no-op.
	if err := g.DeletePersisted(); err != nil {
		t.Errorf("second DeletePersisted() error = %v", err)
	}
}

func TestConsentInvalidateRereads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consent.json")
	g := NewConsentGate(path, testLogger())
	if g.Granted() {
		t.Fatal("Granted() = true with no record")
	}

	// Another process grants consent behind our back.
	other := NewConsentGate(path, testLogger())
	if _, err := other.Grant(); err != nil {
		t.Fatalf("Grant() error = %v", err)
	}

	if g.Granted() {
		t.Fatal("cached state should not see the external grant yet")
	}
	g.Invalidate()
	if !g.Granted() {
		t.Error("Granted() = false after Invalidate and external grant")
	}
}
