package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	natomic "github.com/natefinch/atomic"
)

// PolicyVersion is the current privacy policy version. Consent granted
// under an older version is not treated as granted; the user must
// reconsent after the policy changes.
const PolicyVersion = "1.0"

// Record is the persisted consent state. ConsentedAt survives withdrawal:
// a withdrawn record keeps the original grant timestamp as an audit trail
// and gains a WithdrawnAt timestamp instead.
type Record struct {
	HasConsented  bool       `json:"hasConsented"`
	PolicyVersion string     `json:"policyVersion,omitempty"`
	ConsentedAt   *time.Time `json:"consentedAt,omitempty"`
	WithdrawnAt   *time.Time `json:"withdrawnAt,omitempty"`
}

// ConsentGate answers the single question "may events be recorded?" from
// a persisted consent record. The record is read from disk once and
// cached; Granted is a single atomic load afterwards, cheap enough for
// every tracking call to go through it.
//
// Any failure to read or parse the record means no consent. Collection
// never proceeds on doubt.
type ConsentGate struct {
	path   string
	logger *slog.Logger

	granted atomic.Bool
	loaded  atomic.Bool

	mu     sync.Mutex
	record *Record // nil when no usable record exists
}

// NewConsentGate returns a gate backed by the given record path. The file
// is not read until the first query.
func NewConsentGate(path string, logger *slog.Logger) *ConsentGate {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsentGate{path: path, logger: logger}
}

// Granted reports whether consent is currently granted under the current
// policy version.
func (g *ConsentGate) Granted() bool {
	if !g.loaded.Load() {
		g.mu.Lock()
		g.loadLocked()
		g.mu.Unlock()
	}
	return g.granted.Load()
}

// FirstRun reports whether no usable consent record exists yet. A corrupt
// record counts as a first run: nothing can be known from it, and the user
// should be asked again.
func (g *ConsentGate) FirstRun() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loadLocked()
	return g.record == nil
}

// NeedsReconsent reports whether a prior grant exists under an older
// policy version.
func (g *ConsentGate) NeedsReconsent() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loadLocked()
	return g.record != nil && g.record.HasConsented && g.record.PolicyVersion != PolicyVersion
}

// Record returns a copy of the cached consent record. The second return
// is false when no record exists.
func (g *ConsentGate) Record() (Record, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loadLocked()
	if g.record == nil {
		return Record{}, false
	}
	return *g.record, true
}

// Grant persists consent under the current policy version and updates the
// cache. ConsentedAt is stamped with the time of this grant; a withdrawal
// timestamp from an earlier record stays in place as history.
func (g *ConsentGate) Grant() (Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loadLocked()

	now := time.Now().UTC()
	var rec Record
	if g.record != nil {
		rec = *g.record
	}
	rec.HasConsented = true
	rec.PolicyVersion = PolicyVersion
	rec.ConsentedAt = &now
	if err := g.writeLocked(rec); err != nil {
		return Record{}, err
	}
	g.record = &rec
	g.refreshLocked()
	g.loaded.Store(true)
	return rec, nil
}

// Withdraw persists the withdrawal and updates the cache. The original
// ConsentedAt is preserved.
func (g *ConsentGate) Withdraw() (Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loadLocked()

	now := time.Now().UTC()
	var rec Record
	if g.record != nil {
		rec = *g.record
	}
	rec.HasConsented = false
	rec.WithdrawnAt = &now
	if err := g.writeLocked(rec); err != nil {
		return Record{}, err
	}
	g.record = &rec
	g.refreshLocked()
	g.loaded.Store(true)
	return rec, nil
}

// Invalidate drops the cached record so the next query re-reads the file.
// Used after external processes may have changed the record.
func (g *ConsentGate) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record = nil
	g.granted.Store(false)
	g.loaded.Store(false)
}

// DeletePersisted removes the consent record from disk, returning the
// gate to its first-run state. A missing file is not an error.
func (g *ConsentGate) DeletePersisted() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := os.Remove(g.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete consent record: %w", err)
	}
	g.record = nil
	g.refreshLocked()
	g.loaded.Store(true)
	return nil
}

// loadLocked reads the record from disk once. Callers must hold g.mu.
func (g *ConsentGate) loadLocked() {
	if g.loaded.Load() {
		return
	}
	g.record = g.readRecord()
	g.refreshLocked()
	g.loaded.Store(true)
}

func (g *ConsentGate) readRecord() *Record {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if !os.IsNotExist(err) {
			g.logger.Warn("consent record unreadable, treating as no consent", "path", g.path, "error", err)
		}
		return nil
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		g.logger.Warn("consent record corrupt, treating as no consent", "path", g.path, "error", err)
		return nil
	}
	return &rec
}

func (g *ConsentGate) refreshLocked() {
	g.granted.Store(g.record != nil && g.record.HasConsented && g.record.PolicyVersion == PolicyVersion)
}

func (g *ConsentGate) writeLocked(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return fmt.Errorf("create consent dir: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode consent record: %w", err)
	}
	if err := natomic.WriteFile(g.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write consent record: %w", err)
	}
	return nil
}
