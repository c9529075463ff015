package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/doxconf/internal/diagnostics"
	ferrors "git.home.luguber.info/inful/doxconf/internal/foundation/errors"
)

// FilterCmd implements the 'filter' command.
type FilterCmd struct {
	Files []string `arg:"" optional:"" type:"existingfile" help:"Files to filter instead of stdin"`
	Stats bool     `help:"Print a summary of suppressed diagnostics to stderr"`
}

func (f *FilterCmd) Run(_ *Global, root *CLI) error {
	_, rules, err := root.loadConfig()
	if err != nil {
		return err
	}

	stream := diagnostics.NewStream(rules, root.out(), nil)
	if len(f.Files) == 0 {
		if err := stream.Copy(root.in()); err != nil {
			return ferrors.FileSystemError("failed to filter stdin").WithCause(err).Build()
		}
	}
	for _, name := range f.Files {
		if err := copyFile(stream, name); err != nil {
			return err
		}
	}

	if f.Stats {
		stats := stream.Stats()
		_, _ = fmt.Fprintf(root.errOut(), "emitted %d, suppressed %d\n", stats.Emitted, stats.Suppressed)
		for _, c := range diagnostics.Categories() {
			if n := stats.SuppressedBy[c]; n > 0 {
				_, _ = fmt.Fprintf(root.errOut(), "  %s: %d\n", c, n)
			}
		}
	}
	return nil
}

func copyFile(stream *diagnostics.Stream, name string) error {
	file, err := os.Open(name)
	if err != nil {
		return ferrors.FileSystemError("failed to open input").WithCause(err).WithContext("path", name).Build()
	}
	defer func() { _ = file.Close() }()
	if err := stream.Copy(file); err != nil {
		return ferrors.FileSystemError("failed to filter input").WithCause(err).WithContext("path", name).Build()
	}
	return nil
}
