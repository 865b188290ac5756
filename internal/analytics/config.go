package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/cogitohq/cogito/internal/paths"
)

// Defaults and validation bounds for the analytics configuration.
const (
	DefaultRetentionDays = 30
	DefaultBatchSize     = 50
	DefaultFlushInterval = 60 * time.Second

	minRetentionDays     = 1
	maxRetentionDaysSoft = 365
	minBatchSize         = 1
	maxBatchSizeSoft     = 1000
	minFlushInterval     = 1 * time.Second
	maxFlushIntervalSoft = 5 * time.Minute
)

// Config is the resolved analytics configuration. It is built once at
// startup and treated as immutable for the life of the process; changing
// behavior requires a runtime reset.
type Config struct {
	// Enabled is the configuration-level kill switch. Collection also
	// requires granted consent; both must hold for events to be recorded.
	Enabled bool

	// RetentionDays is the age, in whole days, past which a daily
	// partition is deleted. A partition dated exactly RetentionDays ago
	// is already outside the window.
	RetentionDays int

	// StoragePath is the directory holding the daily event partitions.
	StoragePath string

	// BatchSize is the number of buffered events that triggers a flush.
	BatchSize int

	// FlushInterval is how often the background timer flushes a
	// non-empty batch regardless of its size.
	FlushInterval time.Duration
}

// DefaultConfig returns the built-in defaults. Collection is enabled at
// the configuration level; the consent gate still decides whether any
// event is recorded.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		RetentionDays: DefaultRetentionDays,
		StoragePath:   paths.AnalyticsDir(),
		BatchSize:     DefaultBatchSize,
		FlushInterval: DefaultFlushInterval,
	}
}

// Overrides carries explicit configuration values supplied by the caller.
// Nil fields leave the underlying value untouched. Overrides take
// precedence over environment variables and persisted settings.
type Overrides struct {
	Enabled       *bool
	RetentionDays *int
	StoragePath   *string
	BatchSize     *int
	FlushInterval *time.Duration
}

// envSnapshot captures the raw environment values as strings. Parsing
// happens per field afterwards so that one malformed variable is ignored
// without discarding the others.
type envSnapshot struct {
	Enabled         string `env:"COGITO_ANALYTICS_ENABLED"`
	RetentionDays   string `env:"COGITO_ANALYTICS_RETENTION_DAYS"`
	StoragePath     string `env:"COGITO_ANALYTICS_DIR"`
	BatchSize       string `env:"COGITO_ANALYTICS_BATCH_SIZE"`
	FlushIntervalMS string `env:"COGITO_ANALYTICS_FLUSH_INTERVAL_MS"`
}

// FieldError reports a configuration value that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("analytics config: %s: %s", e.Field, e.Message)
}

// ValidationResult is the outcome of validating a Config. Errors mark
// values the subsystem refuses to run with; Warnings mark values that are
// legal but suspicious.
type ValidationResult struct {
	Errors   []FieldError
	Warnings []string
}

// OK reports whether validation produced no errors. Warnings do not make
// a config invalid.
func (v ValidationResult) OK() bool { return len(v.Errors) == 0 }

// Err collapses the field errors into a single error, or nil when valid.
func (v ValidationResult) Err() error {
	if v.OK() {
		return nil
	}
	errs := make([]error, 0, len(v.Errors))
	for _, fe := range v.Errors {
		errs = append(errs, fe)
	}
	return errors.Join(errs...)
}

// ResolveOptions are the inputs to ResolveConfig.
type ResolveOptions struct {
	// Settings are the persisted values written by the telemetry CLI.
	// The zero value means no persisted settings.
	Settings Settings

	// Overrides are explicit caller-supplied values.
	Overrides Overrides

	// DefaultStoragePath replaces the built-in storage default before
	// the other layers apply. Used when the whole data directory is
	// relocated.
	DefaultStoragePath string

	// Logger receives warnings about ignored environment values. Nil
	// means slog.Default().
	Logger *slog.Logger
}

// ResolveConfig builds the effective configuration. Precedence, highest
// first: explicit overrides, environment variables, persisted settings,
// built-in defaults. Malformed environment values are logged and ignored
// rather than failing resolution; the returned ValidationResult reports
// problems with the final merged values.
func ResolveConfig(ctx context.Context, opts ResolveOptions) (Config, ValidationResult) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := DefaultConfig()
	if opts.DefaultStoragePath != "" {
		cfg.StoragePath = opts.DefaultStoragePath
	}
	applySettings(&cfg, opts.Settings)

	var snap envSnapshot
	if err := envconfig.Process(ctx, &snap); err != nil {
		// String targets do not fail to parse; this only fires on
		// process-level lookup problems.
		logger.Warn("analytics env read failed, using defaults", "error", err)
	} else {
		applyEnv(&cfg, snap, logger)
	}

	applyOverrides(&cfg, opts.Overrides)
	return cfg, cfg.Validate()
}

func applySettings(cfg *Config, s Settings) {
	if s.Enabled != nil {
		cfg.Enabled = *s.Enabled
	}
	if s.RetentionDays != nil {
		cfg.RetentionDays = *s.RetentionDays
	}
	if s.StoragePath != nil && *s.StoragePath != "" {
		cfg.StoragePath = *s.StoragePath
	}
	if s.BatchSize != nil {
		cfg.BatchSize = *s.BatchSize
	}
	if s.FlushIntervalMS != nil {
		cfg.FlushInterval = time.Duration(*s.FlushIntervalMS) * time.Millisecond
	}
}

func applyEnv(cfg *Config, snap envSnapshot, logger *slog.Logger) {
	if raw := strings.TrimSpace(snap.Enabled); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.Enabled = v
		} else {
			logger.Warn("ignoring invalid COGITO_ANALYTICS_ENABLED", "value", raw)
		}
	}
	if raw := strings.TrimSpace(snap.RetentionDays); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			cfg.RetentionDays = v
		} else {
			logger.Warn("ignoring invalid COGITO_ANALYTICS_RETENTION_DAYS", "value", raw)
		}
	}
	if raw := strings.TrimSpace(snap.StoragePath); raw != "" {
		cfg.StoragePath = raw
	}
	if raw := strings.TrimSpace(snap.BatchSize); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			cfg.BatchSize = v
		} else {
			logger.Warn("ignoring invalid COGITO_ANALYTICS_BATCH_SIZE", "value", raw)
		}
	}
	if raw := strings.TrimSpace(snap.FlushIntervalMS); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cfg.FlushInterval = time.Duration(v) * time.Millisecond
		} else {
			logger.Warn("ignoring invalid COGITO_ANALYTICS_FLUSH_INTERVAL_MS", "value", raw)
		}
	}
}

func applyOverrides(cfg *Config, ov Overrides) {
	if ov.Enabled != nil {
		cfg.Enabled = *ov.Enabled
	}
	if ov.RetentionDays != nil {
		cfg.RetentionDays = *ov.RetentionDays
	}
	if ov.StoragePath != nil && *ov.StoragePath != "" {
		cfg.StoragePath = *ov.StoragePath
	}
	if ov.BatchSize != nil {
		cfg.BatchSize = *ov.BatchSize
	}
	if ov.FlushInterval != nil {
		cfg.FlushInterval = *ov.FlushInterval
	}
}

// Validate checks the merged configuration. Out-of-range values that make
// the subsystem unusable are errors; values that are merely extreme are
// warnings.
func (c Config) Validate() ValidationResult {
	var res ValidationResult

	if c.RetentionDays < minRetentionDays {
		res.Errors = append(res.Errors, FieldError{
			Field:   "retentionDays",
			Message: fmt.Sprintf("must be at least %d, got %d", minRetentionDays, c.RetentionDays),
		})
	} else if c.RetentionDays > maxRetentionDaysSoft {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("retentionDays %d exceeds %d; partitions will accumulate for a long time", c.RetentionDays, maxRetentionDaysSoft))
	}

	if c.BatchSize < minBatchSize {
		res.Errors = append(res.Errors, FieldError{
			Field:   "batchSize",
			Message: fmt.Sprintf("must be at least %d, got %d", minBatchSize, c.BatchSize),
		})
	} else if c.BatchSize > maxBatchSizeSoft {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("batchSize %d exceeds %d; flushes will be large and rare", c.BatchSize, maxBatchSizeSoft))
	}

	if c.FlushInterval < minFlushInterval {
		res.Errors = append(res.Errors, FieldError{
			Field:   "flushIntervalMs",
			Message: fmt.Sprintf("must be at least %s, got %s", minFlushInterval, c.FlushInterval),
		})
	} else if c.FlushInterval > maxFlushIntervalSoft {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("flushInterval %s exceeds %s; unflushed events sit in memory longer", c.FlushInterval, maxFlushIntervalSoft))
	}

	if strings.TrimSpace(c.StoragePath) == "" {
		res.Errors = append(res.Errors, FieldError{
			Field:   "storagePath",
			Message: "must not be empty",
		})
	}

	return res
}
