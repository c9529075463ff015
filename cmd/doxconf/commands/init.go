package commands

import (
	"fmt"

	"git.home.luguber.info/inful/doxconf/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	_, err := fmt.Fprintf(root.out(), "Wrote %s\n", root.Config)
	return err
}
