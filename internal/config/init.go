package config

import (
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/doxconf/internal/foundation/errors"
	"git.home.luguber.info/inful/doxconf/internal/navbar"
)

// Example is the configuration written by Init.
func Example() *Config {
	cfg := &Config{
		Doxyfile: "Doxyfile",
		Navbar: navbar.Declare(
			navbar.G("pages", navbar.L("about")),
			navbar.G("namespaces"),
		),
		Suppressions: []Suppression{
			{Pattern: "Unable to resolve reference", Category: "log-record", Kind: "substring"},
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Host:    HostConfig{Command: "doxygen.py", Args: []string{"{conf}"}},
		Output:  OutputConfig{ConfFile: "conf.py"},
	}
	cfg.ApplyDefaults()
	return cfg
}

// Init writes the example configuration to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return ferrors.InternalError("failed to marshal config").WithCause(err).Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ferrors.FileSystemError("failed to write config file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
