package application

import (
	"io"
	"log"

	"gopkg.in/yaml.v3"

	"f2yaml/internal/domain"
	"f2yaml/internal/yamldoc"
)

// Match is the node a link segment resolved to.
type Match struct {
	// Key is the key node; nil when segment 0 fell back to the document root.
	Key *yaml.Node
	// Value is the node the key holds. For a scalar sequence item it is nil
	// until promoted.
	Value *yaml.Node
	// Parent is the mapping or sequence holding the pair or item.
	Parent *yaml.Node
	// Index is the position in Parent.Content: the key for mappings, the
	// item for sequences.
	Index int
	// Name is the key text.
	Name string
	// Item is set for sequence children.
	Item *yaml.Node
}

// Line returns the source line of the match.
func (m *Match) Line() int {
	switch {
	case m.Key != nil:
		return m.Key.Line
	case m.Value != nil:
		return m.Value.Line
	}
	return 0
}

// Resolver walks F2YAML links through YAML node trees.
type Resolver struct {
	ignoreWords []string
	log         *log.Logger
}

// NewResolver creates a resolver for the given status codes. A nil logger
// discards traces.
func NewResolver(ignoreWords []string, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Resolver{ignoreWords: ignoreWords, log: logger}
}

// Resolve returns the node the link addresses, promoting a one-line task to
// a mapping holding a WorkLog placeholder.
func (r *Resolver) Resolve(doc *yamldoc.Document, link *domain.Link) (*Match, error) {
	trail, err := r.Trail(doc, link)
	if err != nil {
		return nil, err
	}
	m := trail[len(trail)-1]
	if err := r.promote(m, link); err != nil {
		return nil, err
	}
	return m, nil
}

// Trail returns one match per link segment. Nothing is modified.
func (r *Resolver) Trail(doc *yamldoc.Document, link *domain.Link) ([]*Match, error) {
	if len(link.Segments) == 0 {
		return nil, &ResolutionError{Kind: ErrUnableToFindTask, Name: link.Raw}
	}

	top := r.topLevel(doc, link)
	r.log.Printf("segment %q -> %q", link.Segments[0], top.Name)

	trail := []*Match{top}
	current := top.Value
	for _, seg := range link.Segments[1:] {
		m, ok := r.lookup(current, seg)
		if !ok {
			key, _ := domain.SegmentKey(seg)
			r.log.Printf("segment %q not found", seg)
			return nil, &ResolutionError{Kind: ErrUnableToFindTask, Name: key}
		}
		r.log.Printf("segment %q -> %q (line %d)", seg, m.Name, m.Line())
		trail = append(trail, m)
		current = m.Value
	}
	return trail, nil
}

// topLevel finds segment 0. The document may spell it as a key (with or
// without a leading dot) or by file name, or be the file node itself.
func (r *Resolver) topLevel(doc *yamldoc.Document, link *domain.Link) *Match {
	root := yamldoc.Deref(doc.Root())
	seg := link.Segments[0]
	_, file := link.FileLocator()

	candidates := []string{seg, "." + seg}
	if len(seg) > 1 && seg[0] == '.' {
		candidates = append(candidates, seg[1:])
	}
	if file != "" {
		candidates = append(candidates, file)
	}

	at := func(i int) *Match {
		return &Match{
			Key:    root.Content[i],
			Value:  yamldoc.Deref(root.Content[i+1]),
			Parent: root,
			Index:  i,
			Name:   root.Content[i].Value,
		}
	}

	for _, c := range candidates {
		if i := yamldoc.KeyIndex(root, c); i >= 0 {
			return at(i)
		}
	}
	// A top-level key may carry a status code of its own.
	if root != nil && root.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(root.Content); i += 2 {
			k := domain.StripStatus(root.Content[i].Value, r.ignoreWords)
			if k != root.Content[i].Value && (k == seg || k == file) {
				return at(i)
			}
		}
	}
	return &Match{Value: root, Name: seg, Index: -1}
}

type child struct {
	key   *yaml.Node
	value *yaml.Node
	index int
	item  *yaml.Node
}

// children lists the addressable children of a node: mapping pairs, or
// sequence items keyed by themselves (scalars) or their sole key.
func children(n *yaml.Node) []child {
	n = yamldoc.Deref(n)
	if n == nil {
		return nil
	}

	var out []child
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			out = append(out, child{
				key:   n.Content[i],
				value: yamldoc.Deref(n.Content[i+1]),
				index: i,
			})
		}
	case yaml.SequenceNode:
		for i, raw := range n.Content {
			item := yamldoc.Deref(raw)
			switch item.Kind {
			case yaml.ScalarNode:
				if !yamldoc.IsSentinel(item) {
					out = append(out, child{key: item, index: i, item: item})
				}
			case yaml.MappingNode:
				if k, v, ok := yamldoc.SoleKey(item); ok {
					out = append(out, child{key: k, value: yamldoc.Deref(v), index: i, item: item})
				} else {
					out = append(out, child{value: item, index: i, item: item})
				}
			}
		}
	}
	return out
}

func idOf(n *yaml.Node) (string, bool) {
	v := yamldoc.Get(n, "Id")
	if v == nil || v.Kind != yaml.ScalarNode {
		return "", false
	}
	return v.Value, true
}

func (r *Resolver) lookup(parent *yaml.Node, seg string) (*Match, bool) {
	key, summary := domain.SegmentKey(seg)
	kids := children(parent)

	if summary {
		for _, c := range kids {
			if c.key == nil {
				continue
			}
			if c.key.Value == key || domain.TaskPortion(c.key.Value, r.ignoreWords) == key {
				return r.matchOf(parent, c), true
			}
		}
		return nil, false
	}

	for _, c := range kids {
		if id, ok := idOf(c.value); ok && id == key {
			return r.matchOf(parent, c), true
		}
	}
	for _, c := range kids {
		if c.key == nil {
			continue
		}
		if c.key.Value == key || domain.StripStatus(c.key.Value, r.ignoreWords) == key {
			return r.matchOf(parent, c), true
		}
	}

	parent = yamldoc.Deref(parent)
	if idx, ok := domain.ParseIndex(key); ok && parent != nil && parent.Kind == yaml.SequenceNode && idx < len(parent.Content) {
		for _, c := range kids {
			if c.index == idx {
				return r.matchOf(parent, c), true
			}
		}
		item := yamldoc.Deref(parent.Content[idx])
		return &Match{Value: item, Parent: parent, Index: idx, Name: key, Item: item}, true
	}
	return nil, false
}

func (r *Resolver) matchOf(parent *yaml.Node, c child) *Match {
	m := &Match{
		Key:    c.key,
		Value:  c.value,
		Parent: yamldoc.Deref(parent),
		Index:  c.index,
		Item:   c.item,
	}
	switch {
	case c.key != nil:
		m.Name = c.key.Value
	default:
		if id, ok := idOf(c.value); ok {
			m.Name = id
		}
	}
	return m
}

// promote turns a one-line task into a mapping so it can hold a WorkLog.
func (r *Resolver) promote(m *Match, link *domain.Link) error {
	if m.Value != nil && m.Value.Kind != yaml.ScalarNode {
		return nil
	}
	if m.Key == nil {
		return notProperTask(link.Raw)
	}

	task := yamldoc.NewMapping()
	yamldoc.Set(task, domain.WorkLogKey, yamldoc.NewPlaceholderSequence())

	switch {
	case m.Item == nil:
		// mapping pair
		m.Parent.Content[m.Index+1] = task
	case m.Item == m.Key:
		// scalar sequence item becomes {item: task}
		key := yamldoc.NewScalar(m.Key.Value)
		key.Line, key.Column = m.Key.Line, m.Key.Column
		wrapper := yamldoc.NewMapping()
		wrapper.Content = []*yaml.Node{key, task}
		m.Parent.Content[m.Index] = wrapper
		m.Key, m.Item = key, wrapper
	default:
		// single-key mapping item
		m.Item.Content[1] = task
	}

	r.log.Printf("promoted %q to a task mapping", m.Name)
	m.Value = task
	return nil
}
