package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/tendant/content-model/pkg/contentmodel"
	"github.com/tendant/content-model/pkg/contentmodel/manifest"
)

// Option applies configuration to a Config instance.
type Option func(*Config) error

// Load constructs a Config by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*Config, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() Config {
	return Config{
		Port:               "8080",
		Environment:        "development",
		LogLevel:           "info",
		LogFormat:          "text",
		EnableEventLogging: true,
		EnableMetrics:      false,
	}
}

// Config represents configuration for the content model engine and its server
type Config struct {
	Port        string `yaml:"port" json:"port" toml:"port"`
	Environment string `yaml:"environment" json:"environment" toml:"environment"` // development, production, testing

	// ManifestPath points at a YAML manifest applied to the registry
	ManifestPath string `yaml:"manifest_path" json:"manifest_path" toml:"manifest_path"`

	// Logging
	LogLevel  string `yaml:"log_level" json:"log_level" toml:"log_level"`    // debug, info, warn, error
	LogFormat string `yaml:"log_format" json:"log_format" toml:"log_format"` // text, json

	EnableEventLogging bool `yaml:"enable_event_logging" json:"enable_event_logging" toml:"enable_event_logging"`
	EnableMetrics      bool `yaml:"enable_metrics" json:"enable_metrics" toml:"enable_metrics"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.New("log_format must be 'text' or 'json'")
	}

	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// WithFile reads a yaml, json, toml or .env file on top of the current values.
func WithFile(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		if err := cleanenv.ReadConfig(path, c); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}
}

// WithManifest sets the manifest path.
func WithManifest(path string) Option {
	return func(c *Config) error {
		if path != "" {
			c.ManifestPath = path
		}
		return nil
	}
}

// NewLogger builds a slog logger writing to w in the configured format and level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// BuildRegistry creates a Registry from the configuration. Event logging adds
// a LoggingEventSink; sinks are appended after it. The manifest, when set, is
// applied before the registry is returned.
func (c *Config) BuildRegistry(logger *slog.Logger, sinks ...contentmodel.EventSink) (*contentmodel.Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var all contentmodel.MultiEventSink
	if c.EnableEventLogging {
		all = append(all, contentmodel.NewLoggingEventSink(logger, slog.LevelInfo))
	}
	for _, s := range sinks {
		if s != nil {
			all = append(all, s)
		}
	}

	options := []contentmodel.Option{contentmodel.WithLogger(logger)}
	if len(all) > 0 {
		options = append(options, contentmodel.WithEventSink(all))
	}
	reg := contentmodel.New(options...)

	if c.ManifestPath != "" {
		m, err := manifest.LoadFile(c.ManifestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
		if _, err := m.Apply(reg); err != nil {
			return nil, fmt.Errorf("failed to apply manifest: %w", err)
		}
	}

	return reg, nil
}
