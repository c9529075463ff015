package navbar

import (
	"fmt"
	"io"
	"strings"
)

// WriteMCSS writes the declaration as m.css configuration assignments
// (LINKS_NAVBAR1, and LINKS_NAVBAR2 when a second row was declared).
func (n Navbar) WriteMCSS(w io.Writer) error {
	if err := writeRow(w, "LINKS_NAVBAR1", n.Primary); err != nil {
		return err
	}
	if n.Secondary == nil {
		return nil
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return writeRow(w, "LINKS_NAVBAR2", n.Secondary)
}

func writeRow(w io.Writer, name string, groups []Group) error {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(" = [\n")
	for _, g := range groups {
		children := make([]string, len(g.Children))
		for i, c := range g.Children {
			children[i] = fmt.Sprintf("(%s, %s)", pyTitle(c.Title), Quote(c.Target))
		}
		fmt.Fprintf(&b, "    (%s, %s, [%s]),\n", pyTitle(g.Title), Quote(g.Target), strings.Join(children, ", "))
	}
	b.WriteString("]\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func pyTitle(t *string) string {
	if t == nil {
		return "None"
	}
	return Quote(*t)
}

var pyEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// Quote renders s as a single-quoted Python string literal.
func Quote(s string) string {
	return "'" + pyEscaper.Replace(s) + "'"
}
