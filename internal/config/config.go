// Package config provides configuration types and defaults for qnet.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/flags"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/processor"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/repository"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/tracing"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/log"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/paths"
)

// Config holds all configuration options for qnet.
type Config struct {
	DataDir   string          `mapstructure:"data_dir"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Processor ProcessorConfig `mapstructure:"processor"`
	Tracing   tracing.Config  `mapstructure:"tracing"`
	Flags     map[string]bool `mapstructure:"flags"`
}

// StorageConfig selects where the registries live.
type StorageConfig struct {
	// DatabasePath overrides the SQLite file location.
	// Default: <data_dir>/qnet.db
	DatabasePath string `mapstructure:"database_path"`
}

// ProcessorConfig tunes the transaction pipeline.
type ProcessorConfig struct {
	// QueueCapacity bounds the number of transactions waiting to be applied.
	QueueCapacity int `mapstructure:"queue_capacity"`

	// ReplayWindow is how long a processed transaction ID is remembered
	// when the replay-guard flag is on.
	ReplayWindow time.Duration `mapstructure:"replay_window"`

	// CacheTTL is how long a record stays in the read cache when the
	// read-cache flag is on.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// SlowThreshold logs a warning for transactions that take longer.
	SlowThreshold time.Duration `mapstructure:"slow_threshold"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		DataDir: "",
		Processor: ProcessorConfig{
			QueueCapacity: processor.DefaultQueueCapacity,
			ReplayWindow:  processor.DefaultReplayWindow,
			CacheTTL:      repository.DefaultCacheTTL,
			SlowThreshold: processor.DefaultTimeoutWarningThreshold,
		},
		Tracing: tracing.DefaultConfig(),
		Flags:   flags.Defaults(),
	}
}

// ResolvedDataDir returns the data directory with project-dir normalization applied.
func (c Config) ResolvedDataDir() string {
	return paths.ResolveDataDir(c.DataDir)
}

// DatabasePath returns the SQLite file the ledger opens.
func (c Config) DatabasePath() string {
	if c.Storage.DatabasePath != "" {
		return c.Storage.DatabasePath
	}
	return paths.DatabasePath(c.ResolvedDataDir())
}

// TracesFilePath returns the file exporter target, derived from the data
// directory when not configured.
func (c Config) TracesFilePath() string {
	if c.Tracing.FilePath != "" {
		return c.Tracing.FilePath
	}
	return paths.TracesPath(c.ResolvedDataDir())
}

// FlagRegistry builds the feature flag registry. Flags missing from the
// config keep their default value.
func (c Config) FlagRegistry() *flags.Registry {
	return flags.Resolve(c.Flags)
}

// Validate checks every section and returns the first error found.
func (c Config) Validate() error {
	if err := ValidateProcessor(c.Processor); err != nil {
		return err
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	return ValidateFlags(c.Flags)
}

// ValidateProcessor checks processor configuration for errors.
// Zero values are accepted and fall back to defaults.
func ValidateProcessor(p ProcessorConfig) error {
	if p.QueueCapacity < 0 {
		return fmt.Errorf("processor.queue_capacity must not be negative, got %d", p.QueueCapacity)
	}
	if p.ReplayWindow < 0 {
		return fmt.Errorf("processor.replay_window must not be negative, got %s", p.ReplayWindow)
	}
	if p.CacheTTL < 0 {
		return fmt.Errorf("processor.cache_ttl must not be negative, got %s", p.CacheTTL)
	}
	if p.SlowThreshold < 0 {
		return fmt.Errorf("processor.slow_threshold must not be negative, got %s", p.SlowThreshold)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	if t.Exporter != "" && !slices.Contains(tracing.Exporters(), t.Exporter) {
		return fmt.Errorf("tracing.exporter must be one of %v, got %q", tracing.Exporters(), t.Exporter)
	}

	// The file path is derived from the data directory when empty.
	if t.Enabled && t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// ValidateFlags rejects flag names the ledger does not read.
func ValidateFlags(f map[string]bool) error {
	for name := range f {
		if !flags.IsKnown(name) {
			return fmt.Errorf("flags.%s is not a known flag (known: %v)", name, flags.Known())
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# qnet Configuration

# Ledger data directory. A project directory gets ".qnet" appended.
# (default: ./.qnet)
# data_dir: /path/to/project

# Storage settings (used when the sqlite-persistence flag is on)
storage:
  # database_path: /path/to/qnet.db  # default: <data_dir>/qnet.db

# Transaction pipeline
processor:
  queue_capacity: 1000    # Pending transactions before submissions are refused
  replay_window: 24h      # How long a transaction ID is remembered (replay-guard)
  cache_ttl: 5m           # Read cache lifetime (read-cache)
  slow_threshold: 100ms   # Log a warning for slower transactions

# Feature flags
flags:
  sqlite-persistence: true  # Persist registries in SQLite; false keeps them in memory
  replay-guard: true        # Reject transactions whose ID was already applied
  read-cache: false         # Cache records in front of the repositories

# Distributed tracing
# One span per transaction, carrying sender, height and committed records.
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: .qnet/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
#   service_name: qnet-ledger
#
# Example: Send traces to Jaeger via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: jaeger.internal:4317
#   sample_rate: 0.1  # Sample 10% of transactions
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
