// Package yamldoc holds YAML documents as yaml.v3 node trees so that key
// order, comments and source positions survive a load/modify/save cycle.
package yamldoc

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrParse = errors.New("failed to parse YAML")

// Document is one parsed YAML file.
type Document struct {
	Path string

	root     yaml.Node
	inserted []*yaml.Node

	lines  [][]byte
	snap   *snapshot
	indent int
}

// Parse reads the first YAML document in data. Empty input yields an empty
// mapping. The source text is kept so that Bytes can write back the parts
// nobody touched exactly as they were.
func Parse(data []byte) (*Document, error) {
	d := &Document{lines: splitLines(data), indent: 2}
	if err := yaml.Unmarshal(data, &d.root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if d.root.Kind != yaml.DocumentNode {
		d.root = yaml.Node{Kind: yaml.DocumentNode}
	}
	if len(d.root.Content) == 0 {
		d.root.Content = []*yaml.Node{NewMapping()}
		return d, nil
	}

	root := d.Root()
	if step := detectIndent(root); step > 0 {
		d.indent = step
	}
	if len(root.Content) > 0 {
		d.snap = takeSnapshot(root)
	}
	return d, nil
}

// Root returns the top-level node, normally a mapping.
func (d *Document) Root() *yaml.Node {
	return d.root.Content[0]
}

// Empty reports whether the document has no content at all.
func (d *Document) Empty() bool {
	r := Deref(d.Root())
	return r == nil || IsSentinel(r)
}

// MarkInserted registers a scalar the caller just added. On Bytes its text
// is written bare even where the encoder would have quoted it.
func (d *Document) MarkInserted(n *yaml.Node) {
	if n == nil || n.Kind != yaml.ScalarNode {
		return
	}
	d.inserted = append(d.inserted, n)
}

// Bytes serializes the document. Entries that still match the parsed
// source are copied from it byte for byte. Changed and new entries are
// encoded with the indentation the source uses, and inserted literals are
// written bare where that reads back the same.
func (d *Document) Bytes() ([]byte, error) {
	pieces := d.plan()
	tokens := d.swapInTokens()
	defer d.restoreValues(tokens)

	var out bytes.Buffer
	for _, p := range pieces {
		text := p.text
		if p.node != nil {
			encoded, err := p.encode(d.indent)
			if err != nil {
				return nil, err
			}
			text = unquoteTokens(encoded, tokens)
		}
		if len(text) > 0 && out.Len() > 0 && out.Bytes()[out.Len()-1] != '\n' {
			out.WriteByte('\n')
		}
		out.Write(text)
	}
	return out.Bytes(), nil
}

func (d *Document) plan() []piece {
	root := d.Root()
	if d.snap != nil {
		sp := &splicer{lines: d.lines}
		if pieces, ok := sp.collection(root, d.snap, 0, len(d.lines)); ok {
			return pieces
		}
		return []piece{{node: &d.root}}
	}

	// a source of only comments stays above whatever was added
	if onlyFiller(d.lines) && root.Kind == yaml.MappingNode && root.Style&yaml.FlowStyle == 0 {
		pieces := []piece{{text: bytes.Join(d.lines, nil)}}
		for i := 0; i+1 < len(root.Content); i += 2 {
			pieces = append(pieces, piece{node: wrap(yaml.MappingNode, root.Content[i], root.Content[i+1])})
		}
		return pieces
	}
	return []piece{{node: &d.root}}
}

type guardToken struct {
	node  *yaml.Node
	token string
	value string
	tag   string
	style yaml.Style
}

// swapInTokens replaces each inserted literal by a token the encoder always
// writes plain, so the literal can be put back verbatim afterwards. Literals
// that would read back differently when bare, such as "a: b" or "a #b", are
// left to the encoder's quoting.
func (d *Document) swapInTokens() []guardToken {
	var tokens []guardToken
	for i, n := range d.inserted {
		if bytes.ContainsAny([]byte(n.Value), "\n\r") || !plainSafe(n.Value) {
			continue
		}
		t := guardToken{
			node:  n,
			token: fmt.Sprintf("f2yamlguard%06dx", i),
			value: n.Value,
			tag:   n.Tag,
			style: n.Style,
		}
		n.Value, n.Tag, n.Style = t.token, "!!str", 0
		tokens = append(tokens, t)
	}
	return tokens
}

func (d *Document) restoreValues(tokens []guardToken) {
	for _, t := range tokens {
		t.node.Value, t.node.Tag, t.node.Style = t.value, t.tag, t.style
	}
}

func unquoteTokens(out []byte, tokens []guardToken) []byte {
	for _, t := range tokens {
		bare := []byte(t.value)
		out = bytes.ReplaceAll(out, []byte(`"`+t.token+`"`), bare)
		out = bytes.ReplaceAll(out, []byte(`'`+t.token+`'`), bare)
		out = bytes.ReplaceAll(out, []byte(t.token), bare)
	}
	return out
}
