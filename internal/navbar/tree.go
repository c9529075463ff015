package navbar

import (
	"fmt"
	"io"
)

// WriteTree prints a human-readable outline of the declaration.
func (n Navbar) WriteTree(w io.Writer) error {
	if err := writeTreeRow(w, "primary", n.Primary); err != nil {
		return err
	}
	if len(n.Secondary) == 0 {
		return nil
	}
	return writeTreeRow(w, "secondary", n.Secondary)
}

func writeTreeRow(w io.Writer, row string, groups []Group) error {
	if _, err := fmt.Fprintf(w, "%s:\n", row); err != nil {
		return err
	}
	for _, g := range groups {
		if _, err := fmt.Fprintf(w, "  %s (%s)\n", g.DisplayTitle(), g.Target); err != nil {
			return err
		}
		for _, c := range g.Children {
			if _, err := fmt.Fprintf(w, "    %s (%s)\n", c.DisplayTitle(), c.Target); err != nil {
				return err
			}
		}
	}
	return nil
}
