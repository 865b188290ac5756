package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultCleanupSchedule runs the retention sweep once a day.
const DefaultCleanupSchedule = "@daily"

// scheduleStopTimeout bounds how long StopSchedule waits for an in-flight
// sweep before giving up on it.
const scheduleStopTimeout = 5 * time.Second

// EnforcerStats are cumulative counters over real (non-dry-run) sweeps.
type EnforcerStats struct {
	TotalRuns          int       `json:"totalRuns"`
	TotalFilesDeleted  int       `json:"totalFilesDeleted"`
	TotalEventsDeleted int       `json:"totalEventsDeleted"`
	LastRun            time.Time `json:"lastRun"`
	LastError          string    `json:"lastError,omitempty"`
}

// EnforcerOption configures a retention enforcer.
type EnforcerOption func(*Enforcer)

// WithCleanupOnInit makes Init run one immediate sweep.
func WithCleanupOnInit() EnforcerOption {
	return func(e *Enforcer) { e.cleanupOnInit = true }
}

// WithAuditSink adds a callback invoked for every audit entry, in
// addition to the in-memory trail.
func WithAuditSink(sink func(AuditEntry)) EnforcerOption {
	return func(e *Enforcer) { e.auditSink = sink }
}

// WithAuditCapacity overrides the audit trail size.
func WithAuditCapacity(n int) EnforcerOption {
	return func(e *Enforcer) { e.auditCapacity = n }
}

// Enforcer applies the retention policy to the file store: partitions
// older than the configured window are deleted, on demand or on a cron
// schedule. Every sweep is recorded in a bounded audit trail.
type Enforcer struct {
	store  *FileStore
	cfg    Config
	logger *slog.Logger
	audit  *auditLog

	cleanupOnInit bool
	auditSink     func(AuditEntry)
	auditCapacity int

	mu    sync.Mutex
	stats EnforcerStats
	cron  *cron.Cron
}

// NewEnforcer builds an enforcer over the given store.
func NewEnforcer(store *FileStore, cfg Config, logger *slog.Logger, opts ...EnforcerOption) *Enforcer {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Enforcer{store: store, cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	e.audit = newAuditLog(e.auditCapacity, e.auditSink)
	return e
}

// Init optionally runs an immediate sweep, depending on construction
// options. Safe to call on an empty or missing storage directory.
func (e *Enforcer) Init(ctx context.Context) error {
	if !e.cleanupOnInit {
		return nil
	}
	_, err := e.RunCleanup(ctx, false)
	return err
}

// RunCleanup performs one retention sweep. With dryRun the result reports
// what a real sweep would delete, but no file is touched and the
// cumulative stats stay unchanged.
func (e *Enforcer) RunCleanup(ctx context.Context, dryRun bool) (CleanupResult, error) {
	e.audit.record(AuditEntry{
		Action: AuditCleanupStarted,
		Detail: fmt.Sprintf("retentionDays=%d dryRun=%t", e.cfg.RetentionDays, dryRun),
	})

	res, err := e.store.RunCleanup(ctx, CleanupOptions{
		RetentionDays: e.cfg.RetentionDays,
		DryRun:        dryRun,
	})
	if err != nil {
		e.audit.record(AuditEntry{Action: AuditCleanupFailed, Detail: err.Error(), Cleanup: &res})
	} else {
		e.audit.record(AuditEntry{Action: AuditCleanupCompleted, Cleanup: &res})
	}

	if !dryRun {
		e.mu.Lock()
		e.stats.TotalRuns++
		e.stats.TotalFilesDeleted += res.FilesDeleted
		e.stats.TotalEventsDeleted += res.EventsDeleted
		e.stats.LastRun = timeNow().UTC()
		if err != nil {
			e.stats.LastError = err.Error()
		} else {
			e.stats.LastError = ""
		}
		e.mu.Unlock()
	}
	if err != nil {
		return res, fmt.Errorf("retention cleanup: %w", err)
	}
	e.logger.Debug("retention sweep finished",
		"filesDeleted", res.FilesDeleted, "eventsDeleted", res.EventsDeleted,
		"cutoff", res.CutoffDate, "dryRun", dryRun)
	return res, nil
}

// StartSchedule installs a cron schedule of real sweeps, replacing any
// existing one. The spec accepts the standard five-field syntax and
// descriptors like "@daily" or "@every 12h".
func (e *Enforcer) StartSchedule(spec string) error {
	e.StopSchedule()

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := e.RunCleanup(context.Background(), false); err != nil {
			e.logger.Warn("scheduled retention cleanup failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("parse cleanup schedule %q: %w", spec, err)
	}
	c.Start()

	e.mu.Lock()
	e.cron = c
	e.mu.Unlock()
	e.logger.Info("retention schedule started", "schedule", spec)
	return nil
}

// StopSchedule cancels the cron schedule, waiting briefly for an
// in-flight sweep to finish. No-op when no schedule is active.
func (e *Enforcer) StopSchedule() {
	e.mu.Lock()
	c := e.cron
	e.cron = nil
	e.mu.Unlock()
	if c == nil {
		return
	}
	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(scheduleStopTimeout):
		e.logger.Warn("timed out waiting for in-flight retention sweep")
	}
}

// ScheduleActive reports whether a cron schedule is installed.
func (e *Enforcer) ScheduleActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cron != nil
}

// Shutdown cancels the schedule and runs one final real sweep so the
// store is within policy when the process exits.
func (e *Enforcer) Shutdown(ctx context.Context) error {
	e.StopSchedule()
	_, err := e.RunCleanup(ctx, false)
	return err
}

// Stats returns a snapshot of the cumulative counters.
func (e *Enforcer) Stats() EnforcerStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// AuditTrail returns a copy of the recorded audit entries, oldest first.
func (e *Enforcer) AuditTrail() []AuditEntry {
	return e.audit.snapshot()
}
