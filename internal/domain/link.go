package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	LinkStart = "-->"
	LinkEnd   = "<"

	// DefaultPathSeparator separates folders inside segment 0. Doubled, it
	// marks the boundary between the folder part and the file name.
	DefaultPathSeparator = "/"
)

var ErrNotValidLink = errors.New("not a valid link")

var indexSegmentRegex = regexp.MustCompile(`^[0-9]+$`)

// LinkSyntaxError describes why a string is not a parsable link
type LinkSyntaxError struct {
	Link   string
	Reason string
}

func (e *LinkSyntaxError) Error() string {
	return fmt.Sprintf("not a valid link %s: %s", e.Link, e.Reason)
}

func (e *LinkSyntaxError) Is(target error) bool {
	return target == ErrNotValidLink
}

// LinkOptions configures link parsing
type LinkOptions struct {
	Separator string
}

func (o LinkOptions) separator() string {
	if o.Separator == "" {
		return DefaultPathSeparator
	}
	return o.Separator
}

// Link is a parsed F2YAML link. Segment 0 names the file (with its folders),
// every following segment addresses one level of the YAML tree.
type Link struct {
	Raw      string
	Segments []string
	Legacy   bool

	separator string
}

// NewLink builds a link from already split segments.
func NewLink(segments []string, opts LinkOptions) *Link {
	l := &Link{
		Segments:  append([]string(nil), segments...),
		separator: opts.separator(),
	}
	l.Raw = l.String()
	return l
}

// ParseLink parses `-->path<` into its segments.
func ParseLink(raw string, opts LinkOptions) (*Link, error) {
	sep := opts.separator()
	raw = strings.TrimSpace(raw)

	if !strings.HasPrefix(raw, LinkStart) || !strings.HasSuffix(raw, LinkEnd) ||
		len(raw) < len(LinkStart)+len(LinkEnd) {
		return nil, &LinkSyntaxError{Link: raw, Reason: "must start with --> and end with <"}
	}

	path := raw[len(LinkStart) : len(raw)-len(LinkEnd)]
	if strings.TrimSpace(path) == "" {
		return nil, &LinkSyntaxError{Link: raw, Reason: "empty path"}
	}

	cleaned, subLinks, reason := extractSubLinks(path)
	if reason != "" {
		return nil, &LinkSyntaxError{Link: raw, Reason: reason}
	}

	legacy, fileEnd, reason := detectLegacy(cleaned, sep)
	if reason != "" {
		return nil, &LinkSyntaxError{Link: raw, Reason: reason}
	}

	var segments []string
	if legacy {
		segments, reason = splitLegacy(cleaned)
	} else {
		// Segment 0 may hold dots of its own, as in v1.2//tasks.
		segments, reason = splitSegments(cleaned[fileEnd:])
		segments = append([]string{strings.TrimPrefix(cleaned[:fileEnd], ".")}, segments...)
	}
	if reason != "" {
		return nil, &LinkSyntaxError{Link: raw, Reason: reason}
	}
	if len(segments) == 0 {
		return nil, &LinkSyntaxError{Link: raw, Reason: "empty path"}
	}

	for i, s := range segments {
		segments[i] = restoreSubLinks(s, subLinks)
	}

	return &Link{Raw: raw, Segments: segments, Legacy: legacy, separator: sep}, nil
}

// Path rejoins the segments with dots.
func (l *Link) Path() string {
	var b strings.Builder
	for i, s := range l.Segments {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s)
	}
	return b.String()
}

// String renders the link. A lone file segment without the folder marker
// is written as //file, since a legacy link needs a key path.
func (l *Link) String() string {
	if len(l.Segments) == 1 {
		marker := l.Separator() + l.Separator()
		if seg := l.Segments[0]; !strings.Contains(seg, marker) {
			return LinkStart + marker + strings.TrimPrefix(seg, ".") + LinkEnd
		}
	}
	return LinkStart + l.Path() + LinkEnd
}

// Separator returns the path separator the link was parsed with.
func (l *Link) Separator() string {
	if l.separator == "" {
		return DefaultPathSeparator
	}
	return l.separator
}

// FileLocator splits segment 0 into folders and file name.
func (l *Link) FileLocator() (folders []string, file string) {
	if len(l.Segments) == 0 {
		return nil, ""
	}
	seg := strings.TrimPrefix(l.Segments[0], ".")
	var parts []string
	for _, p := range strings.Split(seg, l.Separator()) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil, ""
	}
	return parts[:len(parts)-1], parts[len(parts)-1]
}

// Parent returns the link without its last segment.
func (l *Link) Parent() (*Link, bool) {
	if len(l.Segments) <= 1 {
		return nil, false
	}
	return l.withSegments(l.Segments[:len(l.Segments)-1]), true
}

// TrimAtIndexSegment truncates the link before its first purely numeric
// segment. The second result reports whether anything was cut.
func (l *Link) TrimAtIndexSegment() (*Link, bool) {
	for i := 1; i < len(l.Segments); i++ {
		if IsIndexSegment(l.Segments[i]) {
			return l.withSegments(l.Segments[:i]), true
		}
	}
	return l, false
}

// Child returns the link extended by one segment.
func (l *Link) Child(segment string) *Link {
	segs := append(append([]string(nil), l.Segments...), segment)
	return l.withSegments(segs)
}

func (l *Link) withSegments(segs []string) *Link {
	n := &Link{
		Segments:  append([]string(nil), segs...),
		Legacy:    l.Legacy,
		separator: l.separator,
	}
	n.Raw = n.String()
	return n
}

// IsIndexSegment reports whether a segment is a sequence index.
func IsIndexSegment(seg string) bool {
	return indexSegmentRegex.MatchString(seg)
}

// SegmentKey returns the key text a segment addresses and whether the
// segment is summary-style (leading dot).
func SegmentKey(seg string) (key string, summary bool) {
	if strings.HasPrefix(seg, ".") {
		summary = true
		seg = seg[1:]
	}
	return unquote(seg), summary
}

// QuoteSegment wraps a multi-word or dotted key in double quotes.
func QuoteSegment(key string) string {
	key = strings.TrimSpace(key)
	if strings.ContainsAny(key, " .") && !(strings.HasPrefix(key, `"`) && strings.HasSuffix(key, `"`)) {
		return `"` + key + `"`
	}
	return key
}

// SummarySegment builds the summary-style segment addressing a key.
func SummarySegment(key string, ignoreWords []string) string {
	return "." + QuoteSegment(TaskPortion(key, ignoreWords))
}

// NormalizeCSVQuotes collapses the doubled quotes of CSV-escaped text.
func NormalizeCSVQuotes(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}

// FindLinkAt returns the link spanning the given 0-based column of line.
func FindLinkAt(line string, col int) (string, bool) {
	if col > len(line) {
		col = len(line)
	}
	start := -1
	for i := 0; i <= col && i < len(line); i++ {
		if strings.HasPrefix(line[i:], LinkStart) {
			start = i
			i += len(LinkStart) - 1
			continue
		}
		// an end marker under the cursor still closes the link
		if line[i] == LinkEnd[0] && i < col {
			start = -1
		}
	}
	if start < 0 {
		return "", false
	}

	from := col - 1
	if from < start+len(LinkStart) {
		from = start + len(LinkStart)
	}
	end := strings.Index(line[from:], LinkEnd)
	if end < 0 {
		return "", false
	}
	return line[start : from+end+1], true
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

func placeholder(i int) string {
	return fmt.Sprintf("\x00%d\x00", i)
}

// extractSubLinks replaces every -->...< span with a placeholder. Spans
// nest, and quotes inside a span hide its markers. Inside a quoted segment
// an unterminated span is kept as plain text.
func extractSubLinks(path string) (string, []string, string) {
	var (
		b        strings.Builder
		subLinks []string
		inQuotes bool
	)

	for i := 0; i < len(path); {
		c := path[i]
		if c == '"' {
			inQuotes = !inQuotes
			b.WriteByte(c)
			i++
			continue
		}
		if strings.HasPrefix(path[i:], LinkStart) {
			j, ok := subLinkEnd(path, i)
			if !ok {
				if !inQuotes {
					return "", nil, "unterminated sub-link"
				}
				b.WriteString(LinkStart)
				i += len(LinkStart)
				continue
			}
			b.WriteString(placeholder(len(subLinks)))
			subLinks = append(subLinks, path[i:j])
			i = j
			continue
		}
		b.WriteByte(c)
		i++
	}

	if inQuotes {
		return "", nil, "unbalanced quotes"
	}
	return b.String(), subLinks, ""
}

// subLinkEnd returns the index just past the < closing the span that starts
// at i.
func subLinkEnd(path string, i int) (int, bool) {
	depth, quoted := 1, false
	for j := i + len(LinkStart); j < len(path); {
		switch {
		case path[j] == '"':
			quoted = !quoted
			j++
		case quoted:
			j++
		case strings.HasPrefix(path[j:], LinkStart):
			depth++
			j += len(LinkStart)
		case path[j] == LinkEnd[0]:
			depth--
			j++
			if depth == 0 {
				return j, true
			}
		default:
			j++
		}
	}
	return 0, false
}

func restoreSubLinks(s string, subLinks []string) string {
	if !strings.Contains(s, "\x00") {
		return s
	}
	for i, sub := range subLinks {
		s = strings.Replace(s, placeholder(i), sub, 1)
	}
	return s
}

// detectLegacy looks for the folder marker, a doubled separator outside
// quotes. Without one the link is legacy. Otherwise the file name runs from
// the marker up to the next dot outside quotes, and fileEnd is where
// segment 0 stops.
func detectLegacy(path, sep string) (legacy bool, fileEnd int, reason string) {
	marker := sep + sep
	inQuotes := false
	i := 0
	for ; i < len(path); i++ {
		if path[i] == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes && strings.HasPrefix(path[i:], marker) {
			break
		}
	}
	if i == len(path) {
		return true, 0, ""
	}

	for strings.HasPrefix(path[i:], sep) {
		i += len(sep)
	}
	nameStart := i
	for ; i < len(path); i++ {
		if path[i] == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes && path[i] == '.' {
			break
		}
	}
	if i == nameStart {
		return false, 0, "no file name after the folder marker"
	}
	return false, i, ""
}

// splitSegments is the quote-aware split of the new dialect. Two or more
// dots before a segment collapse into a single leading dot.
func splitSegments(path string) ([]string, string) {
	var segs []string
	for i := 0; i < len(path); {
		dots := 0
		for i < len(path) && path[i] == '.' {
			dots++
			i++
		}

		var b strings.Builder
		if i < len(path) && path[i] == '"' {
			b.WriteByte('"')
			i++
			closed := false
			for i < len(path) {
				c := path[i]
				b.WriteByte(c)
				i++
				if c == '"' {
					closed = true
					break
				}
			}
			if !closed {
				return nil, "unbalanced quotes"
			}
		}
		for i < len(path) && path[i] != '.' {
			b.WriteByte(path[i])
			i++
		}

		part := b.String()
		if strings.TrimSpace(part) == "" {
			continue
		}
		if dots >= 2 {
			part = "." + part
		}
		segs = append(segs, part)
	}
	return segs, ""
}

// splitLegacy parses links written before the folder marker existed. The
// file is everything up to the first dot and multi-word keys get quoted.
func splitLegacy(path string) ([]string, string) {
	dot := strings.Index(path, ".")
	for dot == 0 {
		next := strings.Index(path[1:], ".")
		if next < 0 {
			dot = -1
			break
		}
		dot = next + 1
	}
	if dot < 0 {
		return nil, "legacy link without a key path"
	}

	file := path[:dot]
	rest, reason := splitSegments(path[dot:])
	if reason != "" {
		return nil, reason
	}

	segs := []string{file}
	for _, s := range rest {
		if strings.HasPrefix(s, ".") {
			segs = append(segs, "."+QuoteSegment(s[1:]))
			continue
		}
		segs = append(segs, QuoteSegment(s))
	}
	return segs, ""
}

// ParseIndex returns the numeric value of an index segment.
func ParseIndex(seg string) (int, bool) {
	if !IsIndexSegment(seg) {
		return 0, false
	}
	n, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false
	}
	return n, true
}
