package yamldoc

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// snapshot is a node as Parse saw it. Bytes compares the live tree against
// it to find the entries whose source text can be written back untouched.
type snapshot struct {
	node     *yaml.Node
	kind     yaml.Kind
	style    yaml.Style
	tag      string
	value    string
	anchor   string
	comments [3]string
	alias    *yaml.Node
	line     int
	column   int
	content  []*snapshot
}

func takeSnapshot(n *yaml.Node) *snapshot {
	s := &snapshot{
		node:     n,
		kind:     n.Kind,
		style:    n.Style,
		tag:      n.Tag,
		value:    n.Value,
		anchor:   n.Anchor,
		comments: [3]string{n.HeadComment, n.LineComment, n.FootComment},
		alias:    n.Alias,
		line:     n.Line,
		column:   n.Column,
	}
	for _, c := range n.Content {
		s.content = append(s.content, takeSnapshot(c))
	}
	return s
}

// same compares n with the snapshot, children excluded.
func (s *snapshot) same(n *yaml.Node) bool {
	return n == s.node &&
		n.Kind == s.kind &&
		n.Style == s.style &&
		n.Tag == s.tag &&
		n.Value == s.value &&
		n.Anchor == s.anchor &&
		n.Alias == s.alias &&
		[3]string{n.HeadComment, n.LineComment, n.FootComment} == s.comments &&
		len(n.Content) == len(s.content)
}

func (s *snapshot) unchanged(n *yaml.Node) bool {
	if !s.same(n) {
		return false
	}
	for i, c := range n.Content {
		if !s.content[i].unchanged(c) {
			return false
		}
	}
	return true
}

// endsInBlockScalar reports whether the text of s ends with a literal or
// folded scalar, whose trailing blank lines may be part of its value.
func (s *snapshot) endsInBlockScalar() bool {
	for len(s.content) > 0 {
		s = s.content[len(s.content)-1]
	}
	return s.kind == yaml.ScalarNode && s.style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0
}

// piece is one run of output: source text kept as it is, or an entry to
// encode and shift right by column spaces.
type piece struct {
	text   []byte
	node   *yaml.Node
	column int

	// original entries already have their head comment in the kept text
	original bool
	// stripFeet drops trailing foot comments that the kept text still holds
	stripFeet bool
}

// span is the source of one entry of a block collection: a key with its
// value, or a sequence item.
type span struct {
	start, end int
	column     int
	first      *snapshot
	value      *snapshot
}

type splicer struct {
	lines [][]byte
}

// collection plans the output for the block collection n whose source is
// lines [from, to). Entries that still match the snapshot are copied from
// the source, the others are encoded. It reports false when the source
// layout is not one it can splice into.
func (sp *splicer) collection(n *yaml.Node, s *snapshot, from, to int) ([]piece, bool) {
	step := 1
	switch n.Kind {
	case yaml.MappingNode:
		step = 2
	case yaml.SequenceNode:
	default:
		return nil, false
	}
	if n.Style&yaml.FlowStyle != 0 || s.kind != n.Kind || s.node != n || len(s.content) == 0 || len(n.Content) == 0 {
		return nil, false
	}
	spans, ok := sp.spans(s, step, from, to)
	if !ok {
		return nil, false
	}

	index := make(map[*yaml.Node]int, len(spans))
	for i, sn := range spans {
		index[sn.first.node] = i
	}
	kept := make(map[int]bool, len(spans))
	for i := 0; i+step <= len(n.Content); i += step {
		if k, ok := index[n.Content[i]]; ok {
			kept[k] = true
		}
	}

	last := len(spans) - 1
	out := []piece{sp.verbatim(from, spans[0].start)}
	for i, u := 0, 0; i+step <= len(n.Content); i, u = i+step, u+1 {
		first := n.Content[i]
		var value *yaml.Node
		if step == 2 {
			value = n.Content[i+1]
		}

		k, ok := index[first]
		if !ok {
			out = append(out, piece{node: wrap(n.Kind, first, value), column: spans[0].column})
			// a new entry in the place of a removed one keeps the lines after it
			if u < last && !kept[u] {
				out = append(out, sp.verbatim(sp.bodyEnd(spans[u]), spans[u].end))
			}
			continue
		}
		delete(index, first)

		sn := spans[k]
		end := sp.bodyEnd(sn)
		out = append(out, sp.entry(n.Kind, first, value, sn, end)...)
		if k != last {
			out = append(out, sp.verbatim(end, sn.end))
		}
	}
	return append(out, sp.verbatim(sp.bodyEnd(spans[last]), spans[last].end)), true
}

// entry plans one original entry: kept whole, spliced one level down, or
// encoded again.
func (sp *splicer) entry(kind yaml.Kind, first, value *yaml.Node, sn span, end int) []piece {
	child, cs := first, sn.first
	if kind == yaml.MappingNode {
		if sn.first.unchanged(first) && sn.value.unchanged(value) {
			return []piece{sp.verbatim(sn.start, end)}
		}
		child, cs = value, sn.value
	} else if sn.first.unchanged(first) {
		return []piece{sp.verbatim(sn.start, end)}
	}

	keyKept := kind != yaml.MappingNode || sn.first.unchanged(first)
	if keyKept && cs.node == child && len(cs.content) > 0 && cs.content[0].line-1 > sn.start {
		if inner, ok := sp.collection(child, cs, sn.start, end); ok {
			return inner
		}
	}
	return []piece{{
		node:      wrap(kind, first, value),
		column:    sn.column,
		original:  true,
		stripFeet: end < sn.end,
	}}
}

func (sp *splicer) spans(s *snapshot, step, from, to int) ([]span, bool) {
	var out []span
	for i := 0; i+step <= len(s.content); i += step {
		first := s.content[i]
		start := first.line - 1
		if first.line == 0 || start < from || start >= to || (len(out) > 0 && start <= out[len(out)-1].start) {
			return nil, false
		}
		line := sp.lines[start]
		col := len(line) - len(bytes.TrimLeft(line, " "))
		if col >= len(line) || col > first.column-1 {
			return nil, false
		}
		if step == 1 && line[col] != '-' {
			return nil, false
		}
		if step == 2 && line[col] == '?' {
			return nil, false
		}
		sn := span{start: start, column: col, first: first}
		if step == 2 {
			sn.value = s.content[i+1]
		}
		out = append(out, sn)
	}
	for i := range out {
		out[i].end = to
		if i+1 < len(out) {
			out[i].end = out[i+1].start
		}
	}
	return out, true
}

// bodyEnd is where the entry's own text stops. Blank and comment-only lines
// after it belong to whatever follows.
func (sp *splicer) bodyEnd(sn span) int {
	last := sn.first
	if sn.value != nil {
		last = sn.value
	}
	if last.endsInBlockScalar() {
		return sn.end
	}
	end := sn.end
	for end > sn.start+1 && isFiller(sp.lines[end-1]) {
		end--
	}
	return end
}

func (sp *splicer) verbatim(from, to int) piece {
	if from >= to {
		return piece{}
	}
	return piece{text: bytes.Join(sp.lines[from:to], nil)}
}

func isFiller(line []byte) bool {
	t := bytes.TrimSpace(line)
	return len(t) == 0 || t[0] == '#'
}

func onlyFiller(lines [][]byte) bool {
	for _, l := range lines {
		if !isFiller(l) {
			return false
		}
	}
	return true
}

func wrap(kind yaml.Kind, first, value *yaml.Node) *yaml.Node {
	if kind == yaml.MappingNode {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{first, value}}
	}
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: []*yaml.Node{first}}
}

// trailing lists the nodes whose foot comments close the entry.
func trailing(n *yaml.Node) []*yaml.Node {
	var out []*yaml.Node
	for len(n.Content) > 0 {
		if n.Kind == yaml.MappingNode && len(n.Content) >= 2 {
			out = append(out, n.Content[len(n.Content)-2])
		}
		n = n.Content[len(n.Content)-1]
		out = append(out, n)
	}
	return out
}

func (p piece) encode(indent int) ([]byte, error) {
	head := p.node.Content[0]
	if p.original {
		saved := head.HeadComment
		head.HeadComment = ""
		defer func() { head.HeadComment = saved }()
	}
	if p.stripFeet {
		feet := trailing(p.node)
		saved := make([]string, len(feet))
		for i, f := range feet {
			saved[i], f.FootComment = f.FootComment, ""
		}
		defer func() {
			for i, f := range feet {
				f.FootComment = saved[i]
			}
		}()
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(p.node); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if p.column == 0 {
		return buf.Bytes(), nil
	}

	pad := bytes.Repeat([]byte{' '}, p.column)
	var out bytes.Buffer
	for _, line := range splitLines(buf.Bytes()) {
		if len(bytes.TrimSpace(line)) > 0 {
			out.Write(pad)
		}
		out.Write(line)
	}
	return out.Bytes(), nil
}

// detectIndent returns the indentation step of the source, or 0 when no
// nested block mapping shows one.
func detectIndent(n *yaml.Node) int {
	if n.Kind == yaml.MappingNode && n.Style&yaml.FlowStyle == 0 {
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if v.Kind != yaml.MappingNode || v.Style&yaml.FlowStyle != 0 || len(v.Content) == 0 || v.Content[0].Line <= k.Line {
				continue
			}
			if step := v.Content[0].Column - k.Column; step >= 2 && step <= 9 {
				return step
			}
		}
	}
	for _, c := range n.Content {
		if step := detectIndent(c); step > 0 {
			return step
		}
	}
	return 0
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			lines = append(lines, data)
			break
		}
		lines = append(lines, data[:i+1])
		data = data[i+1:]
	}
	return lines
}

// plainSafe reports whether s written as a bare scalar reads back as s.
func plainSafe(s string) bool {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(s), &n); err != nil || len(n.Content) != 1 {
		return false
	}
	v := n.Content[0]
	return v.Kind == yaml.ScalarNode && v.Style == 0 && v.Tag == "!!str" && v.Value == s
}
