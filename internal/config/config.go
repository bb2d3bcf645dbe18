// Package config defines the immutable runtime configuration for the heap
// sampler and its resolution chain: CLI flags > environment variables >
// defaults.
package config

import (
	"flag"
	"io"
	"time"

	apperrors "github.com/agbru/heapwatch/internal/errors"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "HEAPWATCH_"

// Defaults for the tunable knobs. The safe threshold matches the operational
// guidance shipped with the snapshot inspection workflow.
const (
	DefaultSnapshotInterval    = 24 * time.Hour
	DefaultUsageReportInterval = time.Hour
	DefaultReminderDelay       = 60 * time.Second
	DefaultSafeHeapThresholdMB = 250.0
)

// Config holds the full sampler configuration. It is constructed once at
// startup and never mutated afterward; every component receives it by value.
type Config struct {
	// SnapshotInterval is the time between periodic snapshot attempts.
	SnapshotInterval time.Duration
	// UsageReportInterval is the cadence of the lightweight heap usage
	// heartbeat. Fixed at one hour, independent of SnapshotInterval.
	UsageReportInterval time.Duration
	// ReminderDelay is how long after startup the one-time operator
	// reminder is logged.
	ReminderDelay time.Duration
	// SafeHeapThresholdMB is the heap usage ceiling (in MB) above which
	// snapshots are skipped rather than risk an OOM during the dump.
	SafeHeapThresholdMB float64
	// SnapshotDir is the directory snapshot files are written to.
	SnapshotDir string
	// MetricsAddr is the listen address for the Prometheus endpoint.
	// Empty disables the endpoint entirely.
	MetricsAddr string
	// Oneshot takes a single snapshot and exits instead of running the
	// scheduled triggers.
	Oneshot bool
	// Verbose enables debug-level logging.
	Verbose bool
}

// Default returns the configuration used when no flag or environment
// variable overrides it.
func Default() Config {
	return Config{
		SnapshotInterval:    DefaultSnapshotInterval,
		UsageReportInterval: DefaultUsageReportInterval,
		ReminderDelay:       DefaultReminderDelay,
		SafeHeapThresholdMB: DefaultSafeHeapThresholdMB,
		SnapshotDir:         ".",
	}
}

// ParseConfig builds a Config from command-line arguments and environment
// variables. Usage and parse errors are written to errWriter.
func ParseConfig(programName string, args []string, errWriter io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.DurationVar(&cfg.SnapshotInterval, "interval", cfg.SnapshotInterval,
		"time between periodic snapshot attempts (e.g. 24h, 30m)")
	fs.Float64Var(&cfg.SafeHeapThresholdMB, "threshold-mb", cfg.SafeHeapThresholdMB,
		"heap usage in MB above which snapshots are skipped")
	fs.StringVar(&cfg.SnapshotDir, "dir", cfg.SnapshotDir,
		"directory to write heap snapshot files to")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr,
		"listen address for the Prometheus /metrics endpoint (disabled when empty)")
	fs.BoolVar(&cfg.Oneshot, "oneshot", cfg.Oneshot,
		"take a single snapshot and exit")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "enable debug logging (shorthand)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.SnapshotInterval <= 0 {
		return apperrors.NewConfigError("snapshot interval must be positive, got %s", c.SnapshotInterval)
	}
	if c.UsageReportInterval <= 0 {
		return apperrors.NewConfigError("usage report interval must be positive, got %s", c.UsageReportInterval)
	}
	if c.ReminderDelay <= 0 {
		return apperrors.NewConfigError("reminder delay must be positive, got %s", c.ReminderDelay)
	}
	if c.SafeHeapThresholdMB <= 0 {
		return apperrors.NewConfigError("safe heap threshold must be positive, got %.1f MB", c.SafeHeapThresholdMB)
	}
	if c.SnapshotDir == "" {
		return apperrors.NewConfigError("snapshot directory must not be empty")
	}
	return nil
}
