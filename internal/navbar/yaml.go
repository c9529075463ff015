package navbar

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts either the mapping form
//
//	{title: Docs, target: pages, children: [{target: about}]}
//
// or the generator's tuple form
//
//	[Docs, pages, [[null, about]]]
func (g *Group) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		if len(value.Content) < 2 || len(value.Content) > 3 {
			return fmt.Errorf("line %d: navbar group tuple needs 2 or 3 elements, got %d", value.Line, len(value.Content))
		}
		title, target, err := decodePair(value.Content[0], value.Content[1])
		if err != nil {
			return err
		}
		out := Group{Title: title, Target: target}
		if len(value.Content) == 3 {
			if err := value.Content[2].Decode(&out.Children); err != nil {
				return err
			}
		}
		*g = out
		return nil
	}
	if err := checkKeys(value, "navbar group", "title", "target", "children"); err != nil {
		return err
	}
	type plain Group
	var out plain
	if err := value.Decode(&out); err != nil {
		return err
	}
	*g = Group(out)
	return nil
}

// UnmarshalYAML accepts {title, target} or [title, target].
func (l *Link) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		if len(value.Content) != 2 {
			return fmt.Errorf("line %d: navbar link tuple needs 2 elements, got %d", value.Line, len(value.Content))
		}
		title, target, err := decodePair(value.Content[0], value.Content[1])
		if err != nil {
			return err
		}
		*l = Link{Title: title, Target: target}
		return nil
	}
	if err := checkKeys(value, "navbar link", "title", "target"); err != nil {
		return err
	}
	type plain Link
	var out plain
	if err := value.Decode(&out); err != nil {
		return err
	}
	*l = Link(out)
	return nil
}

func decodePair(titleNode, targetNode *yaml.Node) (*string, string, error) {
	var title *string
	if titleNode.Tag != "!!null" {
		var s string
		if err := titleNode.Decode(&s); err != nil {
			return nil, "", err
		}
		title = &s
	}
	var target string
	if err := targetNode.Decode(&target); err != nil {
		return nil, "", err
	}
	return title, target, nil
}

// checkKeys rejects unknown mapping keys. Node.Decode starts a fresh decoder,
// so the caller's KnownFields setting does not reach custom unmarshalers.
func checkKeys(value *yaml.Node, what string, allowed ...string) error {
	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return fmt.Errorf("line %d: field %s not found in %s", key.Line, key.Value, what)
		}
	}
	return nil
}
