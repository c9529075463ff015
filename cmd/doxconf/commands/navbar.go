package commands

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// NavbarCmd implements the 'navbar' command.
type NavbarCmd struct {
	Format string `short:"f" default:"text" enum:"text,yaml,json,mcss" help:"Output format (text, yaml, json, mcss)"`
}

func (n *NavbarCmd) Run(_ *Global, root *CLI) error {
	cfg, _, err := root.loadConfig()
	if err != nil {
		return err
	}
	w := root.out()
	switch n.Format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg.Navbar); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg.Navbar)
	case "mcss":
		return cfg.Navbar.WriteMCSS(w)
	default:
		return cfg.Navbar.WriteTree(w)
	}
}
