// Package navbar holds the navigation bar declaration consumed by the site
// generator. Declarations are ordered and never validated here: whether a
// target names an existing page is for the generator to decide.
package navbar

import (
	"encoding/json"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Link is a single entry inside a group.
type Link struct {
	// Title overrides the page's own title when set.
	Title  *string `yaml:"title,omitempty" json:"title"`
	Target string  `yaml:"target" json:"target"`
}

// Group is a top-level navbar entry with optional sub-links.
type Group struct {
	Title    *string `yaml:"title,omitempty" json:"title"`
	Target   string  `yaml:"target" json:"target"`
	Children []Link  `yaml:"children,omitempty" json:"children"`
}

// MarshalJSON encodes a group without children as an empty list.
func (g Group) MarshalJSON() ([]byte, error) {
	type plain Group
	out := plain(g)
	if out.Children == nil {
		out.Children = []Link{}
	}
	return json.Marshal(out)
}

// Navbar is the full declaration. Primary and Secondary map to the generator's
// first and second navbar rows.
type Navbar struct {
	Primary   []Group `yaml:"primary,omitempty" json:"primary"`
	Secondary []Group `yaml:"secondary,omitempty" json:"secondary,omitempty"`
}

// Title is a convenience for building optional titles inline.
func Title(s string) *string { return &s }

// L builds an untitled link.
func L(target string) Link { return Link{Target: target} }

// G builds an untitled group.
func G(target string, children ...Link) Group {
	return Group{Target: target, Children: children}
}

// Declare builds a navbar whose primary row is groups, copied so later changes
// to the arguments are not observed.
func Declare(groups ...Group) Navbar {
	return Navbar{Primary: copyGroups(groups)}
}

// WithSecondary returns a copy of n with the second row set. Calling it with no
// groups declares an explicitly empty second row.
func (n Navbar) WithSecondary(groups ...Group) Navbar {
	secondary := copyGroups(groups)
	if secondary == nil {
		secondary = []Group{}
	}
	return Navbar{Primary: copyGroups(n.Primary), Secondary: secondary}
}

// Groups returns the primary row exactly as declared.
func (n Navbar) Groups() []Group { return copyGroups(n.Primary) }

// SecondaryGroups returns the second row exactly as declared.
func (n Navbar) SecondaryGroups() []Group { return copyGroups(n.Secondary) }

// Empty reports whether neither row declares anything.
func (n Navbar) Empty() bool { return len(n.Primary) == 0 && len(n.Secondary) == 0 }

// Default is the navigation used when a configuration declares none.
func Default() Navbar {
	return Declare(
		G("pages", L("about")),
		G("namespaces"),
	)
}

func copyGroups(in []Group) []Group {
	if in == nil {
		return nil
	}
	out := make([]Group, len(in))
	for i, g := range in {
		out[i] = Group{Title: copyTitle(g.Title), Target: g.Target}
		if g.Children != nil {
			out[i].Children = make([]Link, len(g.Children))
			for j, c := range g.Children {
				out[i].Children[j] = Link{Title: copyTitle(c.Title), Target: c.Target}
			}
		}
	}
	return out
}

func copyTitle(t *string) *string {
	if t == nil {
		return nil
	}
	s := *t
	return &s
}

// DisplayTitle is the explicit title, or the target in title case.
func (l Link) DisplayTitle() string { return displayTitle(l.Title, l.Target) }

// DisplayTitle is the explicit title, or the target in title case.
func (g Group) DisplayTitle() string { return displayTitle(g.Title, g.Target) }

func displayTitle(title *string, target string) string {
	if title != nil {
		return *title
	}
	// Casers hold state and are not safe to share across goroutines.
	return cases.Title(language.English).String(target)
}
