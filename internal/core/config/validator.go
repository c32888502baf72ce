package config

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

func validate(cfg *Config) error {
	for _, check := range []func(*Config) error{
		validateVersion,
		validateLog,
		validateHistory,
		validateWatch,
		validateOutput,
	} {
		if err := check(cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateLog(cfg *Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Log.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Log.Format)) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be one of: text, json")
	}
	return nil
}

func validateHistory(cfg *Config) error {
	if cfg.History.Enabled && strings.TrimSpace(cfg.History.Path) == "" {
		return fmt.Errorf("history.path must not be empty when history is enabled")
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.MaxRunsPerSecond < 0 {
		return fmt.Errorf("watch.max_runs_per_second must be >= 0, got %v", cfg.Watch.MaxRunsPerSecond)
	}
	for _, ext := range cfg.Watch.Extensions {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("watch.extensions must not contain empty entries")
		}
	}
	for i, pattern := range cfg.Watch.ExcludeFiles {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("watch.exclude_files[%d] is not a valid glob %q: %w", i, pattern, err)
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Output.Format)) {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("output.format must be one of: text, yaml, json")
	}
	return nil
}
