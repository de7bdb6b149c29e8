// Package config loads skillgraph settings from flags, SKILLGRAPH_* environment
// variables and config.yaml through viper.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/skillgraph/skillgraph/pkg/graph"
)

const (
	// EnvPrefix prefixes every environment variable override
	EnvPrefix = "SKILLGRAPH"
	// FileName is the config file name without extension
	FileName = "config"
	// DirName is the per-user config directory under $HOME
	DirName = ".skillgraph"
)

// Config is the full skillgraph configuration
type Config struct {
	Sources   SourcesConfig `mapstructure:"sources" yaml:"sources"`
	Graph     GraphConfig   `mapstructure:"graph" yaml:"graph"`
	LogLevel  string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string        `mapstructure:"log_format" yaml:"log_format"`
	Tracing   TracingConfig `mapstructure:"tracing" yaml:"tracing"`
}

// SourcesConfig controls where skills are discovered
type SourcesConfig struct {
	// Skills are scanned in order; the first directory providing a name wins
	Skills []string `mapstructure:"skills" yaml:"skills"`
	// Exclude holds doublestar patterns matched against skill directory names and paths
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
}

// GraphConfig holds graph export defaults
type GraphConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// TracingConfig configures OpenTelemetry export
type TracingConfig struct {
	Enabled bool    `mapstructure:"enabled" yaml:"enabled"`
	Sampler string  `mapstructure:"sampler" yaml:"sampler"`
	Ratio   float64 `mapstructure:"ratio" yaml:"ratio"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Sources: SourcesConfig{
			Skills:  []string{"./skills", filepath.Join("$HOME", DirName, "skills")},
			Exclude: []string{},
		},
		Graph:     GraphConfig{Format: string(graph.FormatText)},
		LogLevel:  "info",
		LogFormat: "fmt",
		Tracing: TracingConfig{
			Enabled: false,
			Sampler: "ratio",
			Ratio:   1,
		},
	}
}

// SetDefaults registers the built-in configuration as viper defaults
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("sources.skills", d.Sources.Skills)
	v.SetDefault("sources.exclude", d.Sources.Exclude)
	v.SetDefault("graph.format", d.Graph.Format)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.sampler", d.Tracing.Sampler)
	v.SetDefault("tracing.ratio", d.Tracing.Ratio)
}

// Init prepares v for use: defaults, environment overrides and the config
// file search path ($HOME/.skillgraph then the working directory). A missing
// config file is not an error; an unreadable one is.
func Init(v *viper.Viper) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join("$HOME", DirName))
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "failed to read config file")
	}
	return nil
}

// Load unmarshals the current viper state into a validated Config.
// Environment references in skill directories are expanded.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to unmarshal configuration")
	}

	for i, dir := range cfg.Sources.Skills {
		cfg.Sources.Skills[i] = os.ExpandEnv(dir)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late
func (c Config) Validate() error {
	if c.Graph.Format != "" {
		if _, err := graph.ParseFormat(c.Graph.Format); err != nil {
			return errors.Wrap(err, "invalid graph.format")
		}
	}
	switch c.Tracing.Sampler {
	case "", "always", "never", "ratio":
	default:
		return errors.Errorf("invalid tracing.sampler '%s', must be one of: always, never, ratio", c.Tracing.Sampler)
	}
	if c.Tracing.Ratio < 0 || c.Tracing.Ratio > 1 {
		return errors.Errorf("invalid tracing.ratio %v, must be between 0 and 1", c.Tracing.Ratio)
	}
	return nil
}

// Render serializes cfg as YAML
func Render(cfg Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render configuration")
	}
	return out, nil
}

// DefaultPath returns $HOME/.skillgraph/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(home, DirName, FileName+".yaml"), nil
}

// ErrConfigExists is returned by WriteFile when the target exists and
// override is not set
var ErrConfigExists = errors.New("configuration file already exists")

// WriteFile writes cfg to path, creating parent directories
func WriteFile(path string, cfg Config, override bool) error {
	if !override {
		if _, err := os.Stat(path); err == nil {
			return ErrConfigExists
		}
	}

	content, err := Render(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}
