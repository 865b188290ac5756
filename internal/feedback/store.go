// Package feedback persists user-submitted feedback about the cogito
// tools in a local SQLite database. Feedback is content the user chose
// to send; it is stored separately from usage telemetry and is never
// affected by the analytics consent state.
package feedback

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cogitohq/cogito/internal/paths"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Feedback categories.
const (
	CategoryBug     = "bug"
	CategoryIdea    = "idea"
	CategoryContent = "content"
	CategoryPraise  = "praise"
)

// Categories returns the accepted category values.
func Categories() []string {
	return []string{CategoryBug, CategoryIdea, CategoryContent, CategoryPraise}
}

// ValidCategory reports whether c is an accepted category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryBug, CategoryIdea, CategoryContent, CategoryPraise:
		return true
	}
	return false
}

// Entry is one stored feedback record.
type Entry struct {
	ID        int64  `json:"id"`
	Category  string `json:"category"`
	Rating    int    `json:"rating,omitempty"`
	ToolSlug  string `json:"toolSlug,omitempty"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// AddParams holds the input for recording feedback. Rating 0 means not
// rated; ToolSlug is optional context about which catalog entry the
// feedback concerns.
type AddParams struct {
	Category string `json:"category"`
	Rating   int    `json:"rating,omitempty"`
	ToolSlug string `json:"toolSlug,omitempty"`
	Message  string `json:"message"`
}

// Config holds feedback store configuration.
type Config struct {
	DataDir          string
	MaxMessageLength int
}

// DefaultConfig returns the default configuration for the feedback store.
func DefaultConfig() Config {
	return Config{
		DataDir:          paths.DataDir(),
		MaxMessageLength: 2000,
	}
}

// Store is the feedback database handle.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates a Store with the given configuration. It creates the data
// directory if needed, opens SQLite with WAL mode, and runs migrations.
func New(cfg Config) (*Store, error) {
	if cfg.MaxMessageLength <= 0 {
		cfg.MaxMessageLength = DefaultConfig().MaxMessageLength
	}
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("feedback: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, paths.FeedbackDBName)
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("feedback: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("feedback: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("feedback: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS feedback (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			category   TEXT    NOT NULL,
			rating     INTEGER NOT NULL DEFAULT 0,
			tool_slug  TEXT,
			message    TEXT    NOT NULL,
			created_at TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_feedback_category ON feedback(category);
		CREATE INDEX IF NOT EXISTS idx_feedback_created  ON feedback(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Add records one feedback entry and returns its ID.
func (s *Store) Add(p AddParams) (int64, error) {
	if !ValidCategory(p.Category) {
		return 0, fmt.Errorf("feedback: invalid category %q (want one of %s)",
			p.Category, strings.Join(Categories(), ", "))
	}
	if p.Rating != 0 && (p.Rating < 1 || p.Rating > 5) {
		return 0, fmt.Errorf("feedback: rating %d out of range 1-5", p.Rating)
	}
	message := strings.TrimSpace(p.Message)
	if message == "" {
		return 0, fmt.Errorf("feedback: message is required")
	}
	if len(message) > s.cfg.MaxMessageLength {
		message = message[:s.cfg.MaxMessageLength] + "... [truncated]"
	}

	res, err := s.db.Exec(
		`INSERT INTO feedback (category, rating, tool_slug, message) VALUES (?, ?, ?, ?)`,
		p.Category, p.Rating, nullableString(p.ToolSlug), message,
	)
	if err != nil {
		return 0, fmt.Errorf("feedback: insert: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, category, rating, ifnull(tool_slug, ''), message, created_at
		 FROM feedback
		 ORDER BY datetime(created_at) DESC, id DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Category, &e.Rating, &e.ToolSlug, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of stored entries.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM feedback`).Scan(&n)
	return n, err
}

// CountByCategory returns entry counts keyed by category.
func (s *Store) CountByCategory() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT category, COUNT(*) FROM feedback GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		counts[cat] = n
	}
	return counts, rows.Err()
}

// nullableString converts empty strings to NULL for optional columns.
func nullableString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
