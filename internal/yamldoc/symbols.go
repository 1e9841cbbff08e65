package yamldoc

import "gopkg.in/yaml.v3"

// KeyPathAt returns the chain of keys enclosing a 1-based source line,
// outermost first. Sequence items contribute nothing themselves; a scalar
// item on the line contributes its value.
func KeyPathAt(n *yaml.Node, line int) []string {
	var path []string
	for n = Deref(n); n != nil; {
		switch n.Kind {
		case yaml.MappingNode:
			idx := -1
			for i := 0; i+1 < len(n.Content); i += 2 {
				if n.Content[i].Line <= line {
					idx = i
				}
			}
			if idx < 0 {
				return path
			}
			path = append(path, n.Content[idx].Value)
			n = Deref(n.Content[idx+1])
		case yaml.SequenceNode:
			idx := -1
			for i, item := range n.Content {
				if item.Line <= line {
					idx = i
				}
			}
			if idx < 0 {
				return path
			}
			item := Deref(n.Content[idx])
			if item.Kind == yaml.ScalarNode {
				if item.Line == line && n.Style&yaml.FlowStyle == 0 && !IsSentinel(item) {
					path = append(path, item.Value)
				}
				return path
			}
			n = item
		default:
			return path
		}
		if n == nil || n.Line > line {
			return path
		}
	}
	return path
}
