// Package config provides configuration types and defaults for switchboard.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/switchboard/internal/log"
	"github.com/zjrosen/switchboard/internal/tracing"
)

// SourceConfig describes a capture source added to every newly created scene.
type SourceConfig struct {
	Name   string `mapstructure:"name" yaml:"name"`
	Type   string `mapstructure:"type" yaml:"type"`
	Hidden bool   `mapstructure:"hidden" yaml:"hidden"`
}

// Config holds all configuration options for switchboard.
type Config struct {
	DBPath           string         `mapstructure:"db_path"`
	DefaultSceneName string         `mapstructure:"default_scene_name"`
	DefaultSources   []SourceConfig `mapstructure:"default_sources"`
	Cache            CacheConfig    `mapstructure:"cache"`
	Watch            WatchConfig    `mapstructure:"watch"`
	Tracing          tracing.Config `mapstructure:"tracing"`
	Log              LogConfig      `mapstructure:"log"`
}

// CacheConfig controls the backend item-list cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"` // e.g. "30s"
}

// WatchConfig controls the collection database watcher.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Default file locations, relative to the working directory.
const (
	DefaultDBPath  = ".switchboard/collection.db"
	DefaultLogPath = ".switchboard/debug.log"
)

// ErrInvalidSource is wrapped by Validate for a malformed default source.
var ErrInvalidSource = errors.New("invalid default source")

// DefaultSources returns the audio sources every new scene starts with.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{Name: "Mic/Aux", Type: "wasapi_input_capture", Hidden: true},
		{Name: "Desktop Audio", Type: "wasapi_output_capture", Hidden: true},
	}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		DBPath:           DefaultDBPath,
		DefaultSceneName: "Scene",
		DefaultSources:   DefaultSources(),
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Second,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Tracing: tracing.DefaultConfig(),
		Log: LogConfig{
			Path:  DefaultLogPath,
			Level: "debug",
		},
	}
}

// ValidateSources checks default sources for missing fields and duplicate names.
func ValidateSources(sources []SourceConfig) error {
	seen := make(map[string]bool, len(sources))
	for i, src := range sources {
		if strings.TrimSpace(src.Name) == "" {
			return fmt.Errorf("default_sources[%d]: name is required: %w", i, ErrInvalidSource)
		}
		if strings.TrimSpace(src.Type) == "" {
			return fmt.Errorf("default_sources[%d] (%s): type is required: %w", i, src.Name, ErrInvalidSource)
		}
		if seen[src.Name] {
			return fmt.Errorf("default_sources[%d]: duplicate name %q: %w", i, src.Name, ErrInvalidSource)
		}
		seen[src.Name] = true
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(cfg tracing.Config) error {
	if cfg.SampleRate < 0.0 || cfg.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", cfg.SampleRate)
	}

	if !tracing.ValidExporter(cfg.Exporter) {
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", cfg.Exporter)
	}

	// Only validate path requirements when tracing is enabled
	if cfg.Enabled {
		if cfg.Exporter == tracing.ExporterFile && cfg.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if cfg.Exporter == tracing.ExporterOTLP && cfg.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if strings.TrimSpace(c.DefaultSceneName) == "" {
		return fmt.Errorf("default_scene_name must not be blank")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if err := ValidateSources(c.DefaultSources); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Switchboard Configuration

# Collection database (scenes, sources and items survive restarts here)
db_path: .switchboard/collection.db

# Name given to the scene created when a collection has none
default_scene_name: Scene

# Sources added to every new scene that is not a duplicate
default_sources:
  - name: Mic/Aux
    type: wasapi_input_capture
    hidden: true
  - name: Desktop Audio
    type: wasapi_output_capture
    hidden: true

# Backend scene item cache
cache:
  enabled: true
  ttl: 30s

# 'switchboard watch' settings
watch:
  debounce: 500ms   # Wait this long after the last database write before reloading

# Debug log (written when --debug or SWITCHBOARD_DEBUG is set)
log:
  path: .switchboard/debug.log
  level: debug      # debug, info, warn, error

# Distributed tracing configuration
# tracing:
#   enabled: false                       # Enable/disable tracing (default: false)
#   exporter: file                       # Export backend: none, file, stdout, otlp (default: file)
#   file_path: .switchboard/traces.jsonl # Output file for file exporter
#   otlp_endpoint: localhost:4317        # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0                     # Trace sampling rate 0.0-1.0 (default: 1.0)
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
