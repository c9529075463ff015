package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/doxconf/internal/config"
	"git.home.luguber.info/inful/doxconf/internal/emit"
	"git.home.luguber.info/inful/doxconf/internal/logfields"
)

// EmitCmd implements the 'emit' command.
type EmitCmd struct {
	Output string `short:"o" help:"Override output.conf_file"`
	Stdout bool   `help:"Write to stdout instead of a file"`
}

func (e *EmitCmd) Run(_ *Global, root *CLI) error {
	cfg, _, err := root.loadConfig()
	if err != nil {
		return err
	}
	if e.Stdout {
		return emit.Write(root.out(), cfg, root.Config)
	}
	return writeConf(cfg, confPath(cfg, e.Output), root.Config)
}

func confPath(cfg *config.Config, override string) string {
	if override != "" {
		return override
	}
	return cfg.Output.ConfFile
}

func writeConf(cfg *config.Config, path, source string) error {
	if err := emit.WriteFile(path, cfg, source); err != nil {
		return err
	}
	slog.Info("Wrote generator configuration", logfields.Path(path), slog.Int("navbar_groups", len(cfg.Navbar.Primary)+len(cfg.Navbar.Secondary)))
	return nil
}
