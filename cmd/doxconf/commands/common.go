package commands

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/doxconf/internal/config"
	"git.home.luguber.info/inful/doxconf/internal/diagnostics"
	"git.home.luguber.info/inful/doxconf/internal/logfields"
	"git.home.luguber.info/inful/doxconf/internal/observability"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"doxconf.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`
	Navbar NavbarCmd `cmd:"" help:"Print the declared navigation bar"`
	Rules  RulesCmd  `cmd:"" help:"List the active diagnostic suppression rules"`
	Filter FilterCmd `cmd:"" help:"Filter toolchain output read from stdin or files"`
	Emit   EmitCmd   `cmd:"" help:"Write the documentation generator's configuration file"`
	Build  BuildCmd  `cmd:"" help:"Emit configuration and run the documentation generator with filtered output"`

	// Replaced in tests.
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// AfterApply runs after flag parsing; installs the default filtered logger
// until a configuration is loaded.
func (c *CLI) AfterApply() error {
	c.installLogger(levelFor(c.Verbose, config.LogLevelInfo), false, diagnostics.Default())
	return nil
}

func (c *CLI) in() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

func (c *CLI) out() io.Writer {
	if c.stdout != nil {
		return c.stdout
	}
	return os.Stdout
}

func (c *CLI) errOut() io.Writer {
	if c.stderr != nil {
		return c.stderr
	}
	return os.Stderr
}

func (c *CLI) installLogger(level slog.Level, json bool, rules *diagnostics.RuleSet) {
	slog.SetDefault(observability.NewLogger(c.errOut(), observability.LoggerOptions{
		Level: level,
		JSON:  json,
		Rules: rules,
	}))
}

func levelFor(verbose bool, configured config.LogLevel) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return configured.Slog()
}

// loadConfig loads the configuration and its rule set, then reinstalls the
// logger with the configured level, format and rules. A missing file at the
// default path falls back to the built-in configuration.
func (c *CLI) loadConfig() (*config.Config, *diagnostics.RuleSet, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		if c.Config != config.DefaultPath || !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, err
		}
		slog.Debug("No configuration file, using defaults", logfields.Path(c.Config))
		cfg = config.Default()
	}

	rules, err := cfg.RuleSet()
	if err != nil {
		return nil, nil, err
	}
	c.installLogger(levelFor(c.Verbose, cfg.Logging.LogLevel()), cfg.Logging.LogFormat() == config.LogFormatJSON, rules)
	slog.Debug("Configuration loaded", logfields.Path(c.Config), logfields.RuleCount(rules.Len()))
	return cfg, rules, nil
}
