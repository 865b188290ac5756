package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/cogitohq/cogito/internal/paths"
)

// RuntimeOptions configure NewRuntime.
type RuntimeOptions struct {
	// Overrides take precedence over environment variables and persisted
	// settings.
	Overrides Overrides

	// ConfigDir and DataDir relocate the consent/settings files and the
	// event partitions. Empty means the user's default directories.
	ConfigDir string
	DataDir   string

	// CleanupOnInit runs one retention sweep while building the runtime.
	CleanupOnInit bool

	// Schedule installs a recurring retention sweep, in cron syntax.
	// Empty means no schedule.
	Schedule string

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// GrantOptions configure Runtime.GrantConsent.
type GrantOptions struct {
	// EnableCollection also persists enabled=true in the settings file.
	EnableCollection bool
}

// WithdrawOptions configure Runtime.WithdrawConsent.
type WithdrawOptions struct {
	// DisableCollection also persists enabled=false in the settings
	// file, so a later consent grant does not silently resume
	// collection.
	DisableCollection bool
}

// Status is a point-in-time view of the whole subsystem, served by the
// telemetry CLI and the status resource.
type Status struct {
	Enabled         bool           `json:"enabled"`
	ConsentState    string         `json:"consentState"`
	PolicyVersion   string         `json:"policyVersion"`
	RetentionDays   int            `json:"retentionDays"`
	BatchSize       int            `json:"batchSize"`
	FlushIntervalMS int64          `json:"flushIntervalMs"`
	StoragePath     string         `json:"storagePath"`
	ScheduleActive  bool           `json:"scheduleActive"`
	Collector       CollectorStats `json:"collector"`
	Storage         StorageInfo    `json:"storage"`
	Retention       EnforcerStats  `json:"retention"`
}

// Consent states reported in Status.
const (
	ConsentGranted   = "granted"
	ConsentWithdrawn = "withdrawn"
	ConsentStale     = "stale"
	ConsentNone      = "none"
)

// Runtime owns one fully wired analytics subsystem: consent gate, stores,
// collector, retention enforcer, deletion manager, and the aggregators.
// Construct it once per process with NewRuntime and release it with
// Close, which flushes pending events and runs a final retention sweep.
type Runtime struct {
	cfg      Config
	logger   *slog.Logger
	gate     *ConsentGate
	settings *SettingsStore
	store    *FileStore
	enforcer *Enforcer
	deletion *DeletionManager
	usage    *UsageAggregator
	errTrack *ErrorTracker
	insights *InsightsGenerator
	exporter *Exporter

	collector atomic.Pointer[Collector]
	closed    atomic.Bool
}

// NewRuntime resolves the configuration and wires the subsystem.
// Storage trouble degrades to warnings so telemetry can never keep the
// application from starting; only an invalid configuration is an error.
func NewRuntime(ctx context.Context, opts RuntimeOptions) (*Runtime, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	configDir := opts.ConfigDir
	if configDir == "" {
		configDir = paths.ConfigDir()
	}
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = paths.DataDir()
	}

	settings := NewSettingsStore(filepath.Join(configDir, paths.SettingsFileName))
	cfg, vres := ResolveConfig(ctx, ResolveOptions{
		Settings:           settings.Load(),
		Overrides:          opts.Overrides,
		DefaultStoragePath: filepath.Join(dataDir, paths.AnalyticsDirName),
		Logger:             logger,
	})
	for _, w := range vres.Warnings {
		logger.Warn("analytics config", "warning", w)
	}
	if err := vres.Err(); err != nil {
		return nil, fmt.Errorf("resolve analytics config: %w", err)
	}

	gate := NewConsentGate(filepath.Join(configDir, paths.ConsentFileName), logger)
	store := NewFileStore(cfg.StoragePath, logger)
	if cfg.Enabled {
		if err := store.Init(ctx); err != nil {
			logger.Warn("analytics storage unavailable, events will be retried at flush time", "error", err)
		}
	}

	rt := &Runtime{
		cfg:      cfg,
		logger:   logger,
		gate:     gate,
		settings: settings,
		store:    store,
	}
	rt.collector.Store(NewCollector(cfg, gate, store, logger))

	var enfOpts []EnforcerOption
	if opts.CleanupOnInit {
		enfOpts = append(enfOpts, WithCleanupOnInit())
	}
	rt.enforcer = NewEnforcer(store, cfg, logger, enfOpts...)
	if cfg.Enabled {
		if err := rt.enforcer.Init(ctx); err != nil {
			logger.Warn("initial retention sweep failed", "error", err)
		}
		if opts.Schedule != "" {
			if err := rt.enforcer.StartSchedule(opts.Schedule); err != nil {
				logger.Warn("retention schedule not started", "error", err)
			}
		}
	}

	rt.deletion = NewDeletionManager(store, gate, logger)
	rt.deletion.SetResetHook(rt.resetDiscarding)

	rt.usage = NewUsageAggregator(store)
	rt.errTrack = NewErrorTracker(store)
	rt.insights = NewInsightsGenerator(rt.usage, rt.errTrack)
	rt.exporter = NewExporter(store, rt.usage, rt.insights)
	return rt, nil
}

// ActiveCollector returns the current collector instance. Satisfies
// CollectorSource. Nil-safe, so a degraded runtime can still be handed
// to the middleware.
func (rt *Runtime) ActiveCollector() *Collector {
	if rt == nil {
		return nil
	}
	return rt.collector.Load()
}

// Config returns the resolved configuration snapshot.
func (rt *Runtime) Config() Config { return rt.cfg }

// Gate returns the consent gate.
func (rt *Runtime) Gate() *ConsentGate { return rt.gate }

// Store returns the partition store.
func (rt *Runtime) Store() *FileStore { return rt.store }

// Enforcer returns the retention enforcer.
func (rt *Runtime) Enforcer() *Enforcer { return rt.enforcer }

// Deletion returns the deletion manager.
func (rt *Runtime) Deletion() *DeletionManager { return rt.deletion }

// Usage returns the usage aggregator.
func (rt *Runtime) Usage() *UsageAggregator { return rt.usage }

// ErrorTracker returns the error tracker.
func (rt *Runtime) ErrorTracker() *ErrorTracker { return rt.errTrack }

// Insights returns the insights generator.
func (rt *Runtime) Insights() *InsightsGenerator { return rt.insights }

// Exporter returns the export builder.
func (rt *Runtime) Exporter() *Exporter { return rt.exporter }

// GrantConsent persists a consent grant. Collection starts immediately;
// the collector consults the gate on every call.
func (rt *Runtime) GrantConsent(opts GrantOptions) (Record, error) {
	rec, err := rt.gate.Grant()
	if err != nil {
		return rec, err
	}
	if opts.EnableCollection {
		if err := rt.settings.SetEnabled(true); err != nil {
			return rec, fmt.Errorf("consent granted but settings not saved: %w", err)
		}
	}
	return rec, nil
}

// WithdrawConsent persists a withdrawal. Collection stops immediately.
func (rt *Runtime) WithdrawConsent(opts WithdrawOptions) (Record, error) {
	rec, err := rt.gate.Withdraw()
	if err != nil {
		return rec, err
	}
	if opts.DisableCollection {
		if err := rt.settings.SetEnabled(false); err != nil {
			return rec, fmt.Errorf("consent withdrawn but settings not saved: %w", err)
		}
	}
	return rec, nil
}

// Reset gracefully replaces the collector: the old instance flushes its
// pending events and shuts down, and a fresh one with a new session ID
// takes over. The store keeps serving the same directory.
func (rt *Runtime) Reset(ctx context.Context) error {
	old := rt.collector.Swap(NewCollector(rt.cfg, rt.gate, rt.store, rt.logger))
	if old == nil {
		return nil
	}
	return old.Shutdown(ctx)
}

// resetDiscarding replaces the collector and throws its buffered events
// away. The deletion manager uses this so a wipe is not immediately
// undone by a final flush.
func (rt *Runtime) resetDiscarding(_ context.Context) error {
	old := rt.collector.Swap(NewCollector(rt.cfg, rt.gate, rt.store, rt.logger))
	if old != nil {
		old.Abort()
	}
	return nil
}

// Status assembles the subsystem view.
func (rt *Runtime) Status(ctx context.Context) (Status, error) {
	info, err := rt.store.Info(ctx)
	if err != nil {
		return Status{}, err
	}
	c := rt.ActiveCollector()
	st := Status{
		Enabled:         c.Enabled(),
		ConsentState:    rt.consentState(),
		PolicyVersion:   PolicyVersion,
		RetentionDays:   rt.cfg.RetentionDays,
		BatchSize:       rt.cfg.BatchSize,
		FlushIntervalMS: rt.cfg.FlushInterval.Milliseconds(),
		StoragePath:     rt.cfg.StoragePath,
		ScheduleActive:  rt.enforcer.ScheduleActive(),
		Collector:       c.Stats(),
		Storage:         info,
		Retention:       rt.enforcer.Stats(),
	}
	return st, nil
}

func (rt *Runtime) consentState() string {
	switch {
	case rt.gate.Granted():
		return ConsentGranted
	case rt.gate.NeedsReconsent():
		return ConsentStale
	case rt.gate.FirstRun():
		return ConsentNone
	default:
		return ConsentWithdrawn
	}
}

// Close flushes pending events, cancels the retention schedule, and when
// collection is enabled runs one final sweep. Idempotent.
func (rt *Runtime) Close(ctx context.Context) error {
	if !rt.closed.CompareAndSwap(false, true) {
		return nil
	}
	var errs []error
	if c := rt.collector.Load(); c != nil {
		if err := c.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if rt.cfg.Enabled {
		if err := rt.enforcer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	} else {
		rt.enforcer.StopSchedule()
	}
	return errors.Join(errs...)
}

// FlushNow forces a flush of whatever is buffered, waiting up to the
// given timeout. Used on demand by the CLI.
func (rt *Runtime) FlushNow(timeout time.Duration) (FlushResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return rt.ActiveCollector().Flush(ctx)
}
