package yamldoc

import (
	"gopkg.in/yaml.v3"
)

// Node constructors and accessors. yaml.v3 nodes carry their variant in
// Kind; everything here switches on it.

func NewMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func NewSequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}

// NewFlowSequence renders as `[a, b, c]`.
func NewFlowSequence(items ...*yaml.Node) *yaml.Node {
	n := NewSequence(items...)
	n.Style = yaml.FlowStyle
	return n
}

func NewScalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// NewPlainScalar has no tag, so a value such as 2025-03-04 is written bare
// and reads back as whatever the bare text resolves to.
func NewPlainScalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

// NewNull is the `~` placeholder that keeps an empty sequence a sequence.
func NewNull() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}
}

// NewPlaceholderSequence returns `[~]` in block style.
func NewPlaceholderSequence() *yaml.Node {
	return NewSequence(NewNull())
}

// Deref follows aliases.
func Deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// IsNull reports whether n is absent or a null scalar.
func IsNull(n *yaml.Node) bool {
	n = Deref(n)
	if n == nil {
		return true
	}
	if n.Kind != yaml.ScalarNode {
		return false
	}
	if n.Tag == "!!null" {
		return true
	}
	if n.Style != 0 {
		return false
	}
	switch n.Value {
	case "~", "null", "Null", "NULL":
		return n.Tag == "" || n.Tag == "!!null"
	}
	return false
}

// IsSentinel reports whether n is a reusable placeholder slot: null, an
// empty scalar, an empty mapping or an empty sequence.
func IsSentinel(n *yaml.Node) bool {
	n = Deref(n)
	if IsNull(n) {
		return true
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value == ""
	case yaml.MappingNode, yaml.SequenceNode:
		return len(n.Content) == 0
	}
	return false
}

// KeyIndex returns the index in m.Content of the key node named key, or -1.
func KeyIndex(m *yaml.Node, key string) int {
	m = Deref(m)
	if m == nil || m.Kind != yaml.MappingNode {
		return -1
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return i
		}
	}
	return -1
}

// Get returns the value stored under key in mapping m.
func Get(m *yaml.Node, key string) *yaml.Node {
	i := KeyIndex(m, key)
	if i < 0 {
		return nil
	}
	return Deref(m).Content[i+1]
}

// GetAny returns the value of the first key present.
func GetAny(m *yaml.Node, keys ...string) (string, *yaml.Node) {
	for _, k := range keys {
		if v := Get(m, k); v != nil {
			return k, v
		}
	}
	return "", nil
}

// Set replaces the value under key, or appends the pair.
func Set(m *yaml.Node, key string, value *yaml.Node) {
	if i := KeyIndex(m, key); i >= 0 {
		m.Content[i+1] = value
		return
	}
	m.Content = append(m.Content, NewScalar(key), value)
}

// Delete removes key from mapping m.
func Delete(m *yaml.Node, key string) bool {
	i := KeyIndex(m, key)
	if i < 0 {
		return false
	}
	m.Content = append(m.Content[:i], m.Content[i+2:]...)
	return true
}

// InsertReuse puts item into the first sentinel slot of seq, or appends it.
// It returns the index used.
func InsertReuse(seq, item *yaml.Node) int {
	for i, c := range seq.Content {
		if IsSentinel(c) {
			seq.Content[i] = item
			return i
		}
	}
	seq.Content = append(seq.Content, item)
	return len(seq.Content) - 1
}

// SoleKey returns the key and value of a single-pair mapping.
func SoleKey(m *yaml.Node) (*yaml.Node, *yaml.Node, bool) {
	m = Deref(m)
	if m == nil || m.Kind != yaml.MappingNode || len(m.Content) != 2 {
		return nil, nil, false
	}
	return m.Content[0], m.Content[1], true
}

// Copy deep-copies n.
func Copy(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Content = nil
	for _, child := range n.Content {
		c.Content = append(c.Content, Copy(child))
	}
	return &c
}

// Scalars returns the values of a sequence's scalar items.
func Scalars(seq *yaml.Node) []string {
	seq = Deref(seq)
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(seq.Content))
	for _, c := range seq.Content {
		c = Deref(c)
		if c.Kind == yaml.ScalarNode {
			out = append(out, c.Value)
		}
	}
	return out
}
