package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/doxconf/internal/foundation/errors"
	"git.home.luguber.info/inful/doxconf/internal/navbar"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "doxconf.yaml"

// Config is the single configuration object handed to the documentation host.
type Config struct {
	// Doxyfile names the Doxygen project file the generator reads.
	Doxyfile string        `yaml:"doxyfile"`
	Navbar   navbar.Navbar `yaml:"navbar"`

	// BuiltinSuppressions enables diagnostics.DefaultRules. Defaults to true.
	BuiltinSuppressions *bool         `yaml:"builtin_suppressions,omitempty"`
	Suppressions        []Suppression `yaml:"suppressions,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
	Host    HostConfig    `yaml:"host"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
}

// Suppression declares one extra suppression rule.
type Suppression struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
	// Kind is "substring" (default) or "regexp".
	Kind string `yaml:"kind,omitempty"`
}

// LoggingConfig controls doxconf's own log output.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// HostConfig describes how to start the documentation generator.
type HostConfig struct {
	Command string `yaml:"command"`
	// Args may contain the {conf} placeholder; without it the configuration file
	// path is appended as the last argument.
	Args []string `yaml:"args,omitempty"`
	Dir  string   `yaml:"dir,omitempty"`
}

// OutputConfig controls the emitted host configuration file.
type OutputConfig struct {
	ConfFile string `yaml:"conf_file"`
}

// MetricsConfig enables the Prometheus text dump written after a build.
type MetricsConfig struct {
	File string `yaml:"file,omitempty"`
}

// Load reads, expands and validates a configuration file.
func Load(path string) (*Config, error) {
	loadEnvFiles(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError("configuration file not found").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		return nil, ferrors.ConfigError("failed to read config file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if c, ok := ferrors.AsClassified(err); ok {
			return nil, c.WithContext("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes configuration from YAML, expanding ${VAR} references, applying
// defaults and validating the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.ConfigError("failed to unmarshal config").WithCause(err).Build()
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is customised.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Doxyfile == "" {
		c.Doxyfile = "Doxyfile"
	}
	if c.Navbar.Primary == nil && c.Navbar.Secondary == nil {
		c.Navbar = navbar.Default()
	}
	if c.BuiltinSuppressions == nil {
		enabled := true
		c.BuiltinSuppressions = &enabled
	}
	for i := range c.Suppressions {
		if c.Suppressions[i].Kind == "" {
			c.Suppressions[i].Kind = string(patternKindSubstring)
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = string(LogLevelInfo)
	}
	if c.Logging.Format == "" {
		c.Logging.Format = string(LogFormatText)
	}
	if c.Host.Command == "" {
		c.Host.Command = "doxygen.py"
	}
	if c.Output.ConfFile == "" {
		c.Output.ConfFile = "conf.py"
	}
}

// BuiltinsEnabled reports whether the default suppressions apply.
func (c *Config) BuiltinsEnabled() bool {
	return c.BuiltinSuppressions == nil || *c.BuiltinSuppressions
}
