// Package paths centralizes the on-disk locations cogito uses for
// configuration and data. Consent and settings live under the user config
// directory; event partitions and the feedback database live under the
// data directory.
package paths

import (
	"os"
	"path/filepath"
)

// File and directory names under the config and data directories.
const (
	ConsentFileName  = "consent.json"
	SettingsFileName = "analytics.json"
	AnalyticsDirName = "analytics"
	FeedbackDBName   = "feedback.db"
)

// ConfigDir returns the user's config directory for cogito.
//
// If the home directory cannot be determined, it falls back to a directory
// under the system temporary directory. This is a best-effort fallback and
// not intended to be a security boundary.
func ConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), ".cogito-config"))
	}
	return filepath.Clean(filepath.Join(homeDir, ".config", "cogito"))
}

// DataDir returns the user's data directory for cogito (event partitions,
// feedback database).
func DataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), ".cogito"))
	}
	return filepath.Clean(filepath.Join(homeDir, ".cogito"))
}

// ConsentFile returns the path of the persisted consent record.
func ConsentFile() string {
	return filepath.Join(ConfigDir(), ConsentFileName)
}

// SettingsFile returns the path of the persisted analytics settings file
// written by the telemetry CLI commands.
func SettingsFile() string {
	return filepath.Join(ConfigDir(), SettingsFileName)
}

// AnalyticsDir returns the default directory for daily event partitions.
func AnalyticsDir() string {
	return filepath.Join(DataDir(), AnalyticsDirName)
}

// FeedbackDB returns the path of the feedback SQLite database.
func FeedbackDB() string {
	return filepath.Join(DataDir(), FeedbackDBName)
}
