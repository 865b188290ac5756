package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
)

// Settings are the analytics values persisted by the telemetry CLI
// commands. All fields are optional; nil means "not set here" and lets the
// next layer in the precedence chain decide.
type Settings struct {
	Enabled         *bool   `json:"enabled,omitempty"`
	RetentionDays   *int    `json:"retentionDays,omitempty"`
	StoragePath     *string `json:"storagePath,omitempty"`
	BatchSize       *int    `json:"batchSize,omitempty"`
	FlushIntervalMS *int64  `json:"flushIntervalMs,omitempty"`
}

// SettingsStore reads and writes the persisted settings file. Writes are
// atomic so an interrupted save never leaves a truncated file behind.
type SettingsStore struct {
	path string
	mu   sync.Mutex
}

// NewSettingsStore returns a store backed by the given file path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Path returns the backing file path.
func (s *SettingsStore) Path() string { return s.path }

// Load reads the persisted settings. A missing or unreadable file yields
// zero Settings without an error: persisted settings are an optional
// layer, never a startup blocker.
func (s *SettingsStore) Load() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *SettingsStore) loadLocked() Settings {
	var out Settings
	data, err := os.ReadFile(s.path)
	if err != nil {
		return out
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return Settings{}
	}
	return out
}

// Save persists the given settings, replacing the file contents.
func (s *SettingsStore) Save(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(settings)
}

func (s *SettingsStore) saveLocked(settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// SetEnabled loads the current settings, updates the enabled flag, and
// saves the result. Used by consent changes that also flip collection.
func (s *SettingsStore) SetEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := s.loadLocked()
	settings.Enabled = &enabled
	return s.saveLocked(settings)
}
