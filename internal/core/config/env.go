package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: SPLC_[SECTION]_[KEY] (e.g., SPLC_ANALYSIS_STRICT).
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.Log.Level, "SPLC_LOG_LEVEL")
	setEnvString(&cfg.Log.Format, "SPLC_LOG_FORMAT")

	setEnvBool(&cfg.Analysis.Strict, "SPLC_ANALYSIS_STRICT")

	setEnvBool(&cfg.History.Enabled, "SPLC_HISTORY_ENABLED")
	setEnvString(&cfg.History.Path, "SPLC_HISTORY_PATH")
	setEnvDuration(&cfg.History.BusyTimeout, "SPLC_HISTORY_BUSY_TIMEOUT")

	setEnvBool(&cfg.Metrics.Enabled, "SPLC_METRICS_ENABLED")
	setEnvString(&cfg.Metrics.Address, "SPLC_METRICS_ADDRESS")

	setEnvString(&cfg.Tracing.Endpoint, "SPLC_TRACING_ENDPOINT")
	setEnvBool(&cfg.Tracing.Insecure, "SPLC_TRACING_INSECURE")

	setEnvDuration(&cfg.Watch.Debounce, "SPLC_WATCH_DEBOUNCE")
	setEnvFloat64(&cfg.Watch.MaxRunsPerSecond, "SPLC_WATCH_MAX_RUNS_PER_SECOND")
	setEnvInt(&cfg.Watch.Burst, "SPLC_WATCH_BURST")

	setEnvString(&cfg.Output.Format, "SPLC_OUTPUT_FORMAT")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
