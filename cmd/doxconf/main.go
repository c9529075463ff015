package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/doxconf/cmd/doxconf/commands"
	ferrors "git.home.luguber.info/inful/doxconf/internal/foundation/errors"
	"git.home.luguber.info/inful/doxconf/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("doxconf"),
		kong.Description("Declare navigation and diagnostic suppressions for a Doxygen + m.css documentation build, and run it."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := ctx.Run(&commands.Global{Logger: slog.Default()}, cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
