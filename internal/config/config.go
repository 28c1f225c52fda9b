// Package config loads kubedeck's configuration from an optional YAML
// file; the CLI layers flag overrides on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultInterval matches the coordinator's default refresh period.
const DefaultInterval = 10 * time.Second

// Duration parses "10s"-style YAML values into a time.Duration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the root configuration.
type Config struct {
	// Interval is the automatic refresh period.
	Interval Duration `yaml:"interval"`

	// Kubeconfig is an explicit kubeconfig path. Empty means the default
	// loading rules (in-cluster first, then $KUBECONFIG / ~/.kube/config).
	Kubeconfig string `yaml:"kubeconfig"`

	// Namespace is the initially selected namespace. Empty means all.
	Namespace string `yaml:"namespace"`

	// LogFile receives structured logs. Empty disables logging; the
	// dashboard owns the terminal, so logs never go to stderr.
	LogFile string `yaml:"logFile"`

	// Debug lowers the log level to debug.
	Debug bool `yaml:"debug"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{Interval: Duration(DefaultInterval)}
}

// Option configures the loader.
type Option func(*loaderConfig) error

type loaderConfig struct {
	path string
}

// WithPath loads configuration from a YAML file.
func WithPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return errors.New("path is required")
		}
		cfg.path = path
		return nil
	}
}

// Load builds a Config from defaults plus the given options.
func Load(opts ...Option) (Config, error) {
	var loader loaderConfig
	for _, opt := range opts {
		if err := opt(&loader); err != nil {
			return Config{}, err
		}
	}

	cfg := Default()
	if loader.path != "" {
		data, err := os.ReadFile(loader.path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the coordinator cannot honor.
func (c *Config) Validate() error {
	if c.Interval.Std() < time.Second {
		return fmt.Errorf("interval %s is below the 1s minimum", c.Interval.Std())
	}
	return nil
}
