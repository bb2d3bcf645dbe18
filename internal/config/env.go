// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvFloat64 returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as float64, or the default value if not set
// or invalid.
func getEnvFloat64(key string, defaultVal float64) float64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as bool, or the default value if not set.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return parseBoolEnv(val, defaultVal)
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as time.Duration, or the default value if not
// set or invalid. Accepts formats like "5m", "30s", "1h30m".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the HEAPWATCH_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*Config, string)
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	{"INTERVAL", []string{"interval"}, func(c *Config, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.SnapshotInterval = parsed
		}
	}},
	{"THRESHOLD_MB", []string{"threshold-mb"}, func(c *Config, v string) {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.SafeHeapThresholdMB = parsed
		}
	}},
	{"DIR", []string{"dir"}, func(c *Config, v string) {
		c.SnapshotDir = v
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *Config, v string) {
		c.MetricsAddr = v
	}},
	{"ONESHOT", []string{"oneshot"}, func(c *Config, v string) {
		c.Oneshot = parseBoolEnv(v, c.Oneshot)
	}},
	{"VERBOSE", []string{"v", "verbose"}, func(c *Config, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with HEAPWATCH_):
//   - INTERVAL, THRESHOLD_MB, DIR, METRICS_ADDR, ONESHOT, VERBOSE
func applyEnvOverrides(config *Config, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
