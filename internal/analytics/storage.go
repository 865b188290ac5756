package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/natefinch/atomic"
)

// storageSchemaVersion is written into every partition file. Readers skip
// files written by a newer schema instead of guessing at their layout.
const storageSchemaVersion = 1

const (
	partitionPrefix = "events-"
	partitionSuffix = ".json"
	quarantineExt   = ".corrupt"
)

// timeNow is replaced in tests to pin the retention cutoff.
var timeNow = time.Now

var (
	errCorruptPartition = errors.New("corrupt partition file")
	errSchemaTooNew     = errors.New("partition schema newer than this build")
)

// partitionFile is the on-disk layout of one daily partition.
type partitionFile struct {
	SchemaVersion int       `json:"schemaVersion"`
	Date          string    `json:"date"`
	Events        []Event   `json:"events"`
	LastModified  time.Time `json:"lastModified"`
}

// AppendResult reports the outcome of an AppendEvents call. When the call
// fails, Unwritten holds exactly the events that did not reach disk;
// everything else was durably committed.
type AppendResult struct {
	EventsWritten     int
	PartitionsTouched int
	Unwritten         []Event
}

// CleanupOptions control a retention sweep.
type CleanupOptions struct {
	// RetentionDays is the window size. A partition dated exactly
	// RetentionDays before today is already stale and gets deleted.
	RetentionDays int

	// DryRun counts what would be deleted without touching any file.
	DryRun bool
}

// CleanupResult reports one retention sweep.
type CleanupResult struct {
	FilesDeleted  int    `json:"filesDeleted"`
	EventsDeleted int    `json:"eventsDeleted"`
	CutoffDate    string `json:"cutoffDate"`
	DryRun        bool   `json:"dryRun"`
}

// WipeResult reports a DeleteAllData call.
type WipeResult struct {
	FilesDeleted  int `json:"filesDeleted"`
	EventsDeleted int `json:"eventsDeleted"`
}

// StorageInfo summarizes the partition directory.
type StorageInfo struct {
	Path           string `json:"path"`
	FileCount      int    `json:"fileCount"`
	EventCount     int    `json:"eventCount"`
	TotalSizeBytes int64  `json:"totalSizeBytes"`
	OldestDate     string `json:"oldestDate,omitempty"`
	NewestDate     string `json:"newestDate,omitempty"`
}

// FileStore persists events as one JSON file per UTC calendar day,
// events-YYYY-MM-DD.json, inside a single directory. Every write goes
// through a write-to-temp-then-rename cycle, so a crashed or failed write
// leaves the previous file intact and a retry cannot duplicate events.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore returns a store rooted at dir. The directory is created
// lazily by Init or the first append.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{dir: dir, logger: logger}
}

// Dir returns the partition directory.
func (s *FileStore) Dir() string { return s.dir }

// Init creates the partition directory if needed.
func (s *FileStore) Init(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create analytics dir: %w", err)
	}
	return nil
}

// AppendEvents groups events by their own UTC timestamp date and appends
// each group to its partition. Partitions are written in date order, each
// committed atomically. On error the returned AppendResult still reports
// what was committed, and Unwritten carries the events the caller should
// retry.
func (s *FileStore) AppendEvents(ctx context.Context, events []Event) (AppendResult, error) {
	var res AppendResult
	if len(events) == 0 {
		return res, nil
	}
	if err := s.Init(ctx); err != nil {
		res.Unwritten = append(res.Unwritten, events...)
		return res, err
	}

	groups := make(map[string][]Event)
	var dates []string
	for _, ev := range events {
		date := ev.PartitionDate()
		if _, seen := groups[date]; !seen {
			dates = append(dates, date)
		}
		groups[date] = append(groups[date], ev)
	}
	sort.Strings(dates)

	var errs []error
	for i, date := range dates {
		if err := ctx.Err(); err != nil {
			for _, rest := range dates[i:] {
				res.Unwritten = append(res.Unwritten, groups[rest]...)
			}
			errs = append(errs, err)
			break
		}
		batch := groups[date]
		if err := s.appendToPartition(date, batch); err != nil {
			errs = append(errs, fmt.Errorf("partition %s: %w", date, err))
			res.Unwritten = append(res.Unwritten, batch...)
			continue
		}
		res.EventsWritten += len(batch)
		res.PartitionsTouched++
	}
	if len(errs) > 0 {
		return res, errors.Join(errs...)
	}
	return res, nil
}

func (s *FileStore) appendToPartition(date string, batch []Event) error {
	path := s.partitionPath(date)
	pf, err := s.readPartition(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		pf = partitionFile{Date: date}
	case errors.Is(err, errCorruptPartition):
		// Set the unreadable file aside instead of silently overwriting
		// it, then start the day fresh.
		s.logger.Warn("quarantining corrupt partition", "path", path)
		if qerr := os.Rename(path, path+quarantineExt); qerr != nil {
			return fmt.Errorf("quarantine corrupt partition: %w", qerr)
		}
		pf = partitionFile{Date: date}
	default:
		return err
	}

	pf.SchemaVersion = storageSchemaVersion
	pf.Date = date
	pf.Events = append(pf.Events, batch...)
	pf.LastModified = timeNow().UTC()
	return s.writePartition(path, pf)
}

// ReadEvents returns the events of every partition whose date falls in
// [from, to], sorted by timestamp (stable, so same-timestamp events keep
// their stored order). Granularity is the calendar day: all events of an
// intersecting partition are returned. A zero from/to selects the default
// trailing 30 day window ending now. Unreadable partitions are skipped
// with a warning.
func (s *FileStore) ReadEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	if to.IsZero() {
		to = timeNow().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if from.After(to) {
		return nil, fmt.Errorf("invalid range: from %s is after to %s",
			from.Format(DateLayout), to.Format(DateLayout))
	}
	fromDate := from.UTC().Format(DateLayout)
	toDate := to.UTC().Format(DateLayout)

	dates, err := s.partitionDates()
	if err != nil {
		return nil, err
	}

	var events []Event
	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if date < fromDate || date > toDate {
			continue
		}
		pf, err := s.readPartition(s.partitionPath(date))
		if err != nil {
			s.logger.Warn("skipping unreadable partition", "date", date, "error", err)
			continue
		}
		events = append(events, pf.Events...)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events, nil
}

// ReadEventsForDate returns the events of the single partition for the
// given date. A missing partition yields an empty slice.
func (s *FileStore) ReadEventsForDate(ctx context.Context, date time.Time) ([]Event, error) {
	day := date.UTC().Format(DateLayout)
	pf, err := s.readPartition(s.partitionPath(day))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read partition %s: %w", day, err)
	}
	return pf.Events, nil
}

// RunCleanup deletes every partition dated on or before today minus
// RetentionDays. Concurrent sweeps are safe: a file that vanishes between
// listing and removal was deleted by the other sweep and is not counted
// here. Failures are collected and returned joined, without aborting the
// sweep.
func (s *FileStore) RunCleanup(ctx context.Context, opts CleanupOptions) (CleanupResult, error) {
	if opts.RetentionDays < 1 {
		return CleanupResult{}, fmt.Errorf("retention days must be at least 1, got %d", opts.RetentionDays)
	}
	today := timeNow().UTC()
	cutoff := today.AddDate(0, 0, -opts.RetentionDays).Format(DateLayout)
	res := CleanupResult{CutoffDate: cutoff, DryRun: opts.DryRun}

	dates, err := s.partitionDates()
	if err != nil {
		return res, err
	}

	var errs []error
	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if date > cutoff {
			continue
		}
		path := s.partitionPath(date)

		count := 0
		if pf, err := s.readPartition(path); err == nil {
			count = len(pf.Events)
		}

		if opts.DryRun {
			res.FilesDeleted++
			res.EventsDeleted += count
			continue
		}
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			errs = append(errs, fmt.Errorf("delete partition %s: %w", date, err))
			continue
		}
		res.FilesDeleted++
		res.EventsDeleted += count
	}
	if len(errs) > 0 {
		return res, errors.Join(errs...)
	}
	return res, nil
}

// DeleteAllData removes every partition file, including quarantined ones.
// The directory itself and any unrelated files in it are left alone.
func (s *FileStore) DeleteAllData(ctx context.Context) (WipeResult, error) {
	var res WipeResult
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return res, nil
		}
		return res, fmt.Errorf("list analytics dir: %w", err)
	}

	var errs []error
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if entry.IsDir() || !isAnalyticsFile(entry.Name()) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())

		count := 0
		if pf, err := s.readPartition(path); err == nil {
			count = len(pf.Events)
		}
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			errs = append(errs, fmt.Errorf("delete %s: %w", entry.Name(), err))
			continue
		}
		res.FilesDeleted++
		res.EventsDeleted += count
	}
	if len(errs) > 0 {
		return res, errors.Join(errs...)
	}
	return res, nil
}

// Info summarizes the partition directory without modifying it.
func (s *FileStore) Info(ctx context.Context) (StorageInfo, error) {
	info := StorageInfo{Path: s.dir}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return info, nil
		}
		return info, fmt.Errorf("list analytics dir: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return info, err
		}
		date, ok := parsePartitionDate(entry.Name())
		if !ok {
			continue
		}
		info.FileCount++
		dates = append(dates, date)
		if fi, err := entry.Info(); err == nil {
			info.TotalSizeBytes += fi.Size()
		}
		if pf, err := s.readPartition(filepath.Join(s.dir, entry.Name())); err == nil {
			info.EventCount += len(pf.Events)
		}
	}
	if len(dates) > 0 {
		sort.Strings(dates)
		info.OldestDate = dates[0]
		info.NewestDate = dates[len(dates)-1]
	}
	return info, nil
}

// partitionDates lists the dates of all parseable partition files in
// ascending order. A missing directory is an empty store.
func (s *FileStore) partitionDates() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list analytics dir: %w", err)
	}
	var dates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if date, ok := parsePartitionDate(entry.Name()); ok {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (s *FileStore) partitionPath(date string) string {
	return filepath.Join(s.dir, partitionPrefix+date+partitionSuffix)
}

// parsePartitionDate extracts the date from a partition file name,
// rejecting anything that is not exactly events-YYYY-MM-DD.json with a
// real calendar date.
func parsePartitionDate(name string) (string, bool) {
	rest, ok := strings.CutPrefix(name, partitionPrefix)
	if !ok {
		return "", false
	}
	date, ok := strings.CutSuffix(rest, partitionSuffix)
	if !ok || len(date) != len(DateLayout) {
		return "", false
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", false
	}
	return date, true
}

// isAnalyticsFile reports whether a directory entry belongs to this store:
// a partition file or a quarantined one.
func isAnalyticsFile(name string) bool {
	if _, ok := parsePartitionDate(name); ok {
		return true
	}
	return strings.HasPrefix(name, partitionPrefix) && strings.HasSuffix(name, partitionSuffix+quarantineExt)
}

func (s *FileStore) readPartition(path string) (partitionFile, error) {
	var pf partitionFile
	data, err := os.ReadFile(path)
	if err != nil {
		return pf, err
	}
	if err := json.Unmarshal(data, &pf); err != nil {
		return pf, fmt.Errorf("%w: %s", errCorruptPartition, filepath.Base(path))
	}
	if pf.SchemaVersion > storageSchemaVersion {
		return pf, fmt.Errorf("%w: version %d in %s", errSchemaTooNew, pf.SchemaVersion, filepath.Base(path))
	}
	return pf, nil
}

func (s *FileStore) writePartition(path string, pf partitionFile) error {
	data, err := json.MarshalIndent(pf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode partition: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write partition: %w", err)
	}
	return nil
}
