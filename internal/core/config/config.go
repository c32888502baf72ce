package config

import (
	"time"
)

// DefaultFile is the config file looked up when --config is not given.
const DefaultFile = "splc.toml"

type Config struct {
	Version  int      `toml:"version"`
	Log      Log      `toml:"log"`
	Analysis Analysis `toml:"analysis"`
	History  History  `toml:"history"`
	Metrics  Metrics  `toml:"metrics"`
	Tracing  Tracing  `toml:"tracing"`
	Watch    Watch    `toml:"watch"`
	Output   Output   `toml:"output"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Analysis struct {
	// Strict enables checks that are off by default, such as a nested
	// function reusing the name of the function that encloses it.
	Strict bool `toml:"strict"`
}

type History struct {
	Enabled     bool          `toml:"enabled"`
	Path        string        `toml:"path"`
	BusyTimeout time.Duration `toml:"busy_timeout"`
	Keep        int           `toml:"keep"`
}

type Metrics struct {
	Enabled bool   `toml:"enabled"`
	Address string `toml:"address"`
}

type Tracing struct {
	Endpoint string `toml:"endpoint"`
	Insecure bool   `toml:"insecure"`
}

type Watch struct {
	Paths            []string      `toml:"paths"`
	Debounce         time.Duration `toml:"debounce"`
	Extensions       []string      `toml:"extensions"`
	ExcludeDirs      []string      `toml:"exclude_dirs"`
	ExcludeFiles     []string      `toml:"exclude_files"`
	MaxRunsPerSecond float64       `toml:"max_runs_per_second"`
	Burst            int           `toml:"burst"`
	ReloadConfig     bool          `toml:"reload_config"`
}

type Output struct {
	Format string `toml:"format"`
	Color  *bool  `toml:"color"`
}

// ColorEnabled reports whether styled output is wanted. Unset means yes.
func (o Output) ColorEnabled() bool {
	return o.Color == nil || *o.Color
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
