package application

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"f2yaml/internal/domain"
	"f2yaml/internal/yamldoc"
)

// Bucket names inside a standup report code.
const (
	WasKey  = "Was"
	NextKey = "Next"
)

// CreateEntry builds a standup entry {link: [0m, "", start]} with a flow
// style tuple. Nothing is attached to a document.
func CreateEntry(link, start string) *yaml.Node {
	tuple := yamldoc.NewFlowSequence(
		yamldoc.NewScalar(domain.FormatMinutes(0)),
		yamldoc.NewScalar(""),
		yamldoc.NewScalar(start),
	)
	entry := yamldoc.NewMapping()
	entry.Content = []*yaml.Node{yamldoc.NewScalar(link), tuple}
	return entry
}

// EntryLink returns the link an entry is keyed by.
func EntryLink(entry *yaml.Node) string {
	if k, _, ok := yamldoc.SoleKey(entry); ok {
		return k.Value
	}
	return ""
}

// StandupBucket returns the mapping of an SR code, creating
// {Was: [~], Next: [~]} when it is missing or not a mapping. An empty
// report becomes a mapping; any other root is left alone and reported as a
// StructuralError.
func StandupBucket(doc *yamldoc.Document, srCode string) (*yaml.Node, error) {
	root := doc.Root()
	if root.Kind != yaml.MappingNode {
		if !yamldoc.IsSentinel(root) {
			return nil, &StructuralError{Path: doc.Path, Reason: "standup report root is not a mapping"}
		}
		root.Kind, root.Tag, root.Value, root.Style, root.Content = yaml.MappingNode, "!!map", "", 0, nil
	}

	bucket := yamldoc.Deref(yamldoc.Get(root, srCode))
	if bucket == nil || bucket.Kind != yaml.MappingNode {
		bucket = yamldoc.NewMapping()
		yamldoc.Set(bucket, WasKey, yamldoc.NewPlaceholderSequence())
		yamldoc.Set(bucket, NextKey, yamldoc.NewPlaceholderSequence())
		if i := yamldoc.KeyIndex(root, srCode); i >= 0 {
			root.Content[i+1] = bucket
		} else {
			root.Content = append(root.Content, yamldoc.NewPlainScalar(srCode), bucket)
		}
	}
	return bucket, nil
}

// standupBucket is StandupBucket for callers that already checked the root.
// A report it cannot use yields a detached bucket, so the document is never
// rewritten.
func standupBucket(doc *yamldoc.Document, srCode string) *yaml.Node {
	bucket, err := StandupBucket(doc, srCode)
	if err != nil {
		return yamldoc.NewMapping()
	}
	return bucket
}

// WasSequence returns the Was (or was) sequence of an SR code, creating it
// when missing.
func WasSequence(doc *yamldoc.Document, srCode string) *yaml.Node {
	return bucketSequence(standupBucket(doc, srCode), WasKey)
}

// NextSequence returns the Next (or next) sequence of an SR code.
func NextSequence(doc *yamldoc.Document, srCode string) *yaml.Node {
	return bucketSequence(standupBucket(doc, srCode), NextKey)
}

func bucketSequence(bucket *yaml.Node, name string) *yaml.Node {
	key, seq := yamldoc.GetAny(bucket, name, strings.ToLower(name))
	seq = yamldoc.Deref(seq)
	if seq != nil && seq.Kind == yaml.SequenceNode {
		return seq
	}
	if key == "" {
		key = name
	}
	seq = yamldoc.NewPlaceholderSequence()
	yamldoc.Set(bucket, key, seq)
	return seq
}

// CheckAlreadyInSr returns the index in Was of the last entry keyed like
// entry, or -1.
func CheckAlreadyInSr(doc *yamldoc.Document, entry *yaml.Node, srCode string) int {
	link := EntryLink(entry)
	was := WasSequence(doc, srCode)
	for i := len(was.Content) - 1; i >= 0; i-- {
		if EntryLink(was.Content[i]) == link {
			return i
		}
	}
	return -1
}

// MoveToWas places entry into Was, reusing the first placeholder slot. A
// plain link scalar planned under Next is taken out of it.
func MoveToWas(doc *yamldoc.Document, entry *yaml.Node, srCode string) int {
	link := EntryLink(entry)
	removeFromNext(NextSequence(doc, srCode), link)

	k, _, _ := yamldoc.SoleKey(entry)
	doc.MarkInserted(k)
	return yamldoc.InsertReuse(WasSequence(doc, srCode), entry)
}

func removeFromNext(next *yaml.Node, link string) {
	var kept []*yaml.Node
	for _, item := range next.Content {
		it := yamldoc.Deref(item)
		if it.Kind == yaml.ScalarNode && strings.TrimSpace(it.Value) == link {
			continue
		}
		if EntryLink(it) == link {
			continue
		}
		kept = append(kept, item)
	}
	if len(kept) == 0 {
		kept = []*yaml.Node{yamldoc.NewNull()}
	}
	next.Content = kept
}

// UpdateDuration adds minutes to the duration counter of Was[index] and
// returns the new counter.
func UpdateDuration(doc *yamldoc.Document, index, minutes int, srCode string) (string, error) {
	was := WasSequence(doc, srCode)
	if index < 0 || index >= len(was.Content) {
		return "", &StructuralError{Path: srCode, Reason: fmt.Sprintf("no standup entry at %d", index)}
	}

	_, tuple, ok := yamldoc.SoleKey(was.Content[index])
	tuple = yamldoc.Deref(tuple)
	if !ok || tuple == nil || tuple.Kind != yaml.SequenceNode || len(tuple.Content) == 0 {
		return "", &StructuralError{Path: srCode, Reason: fmt.Sprintf("standup entry %d has no duration", index)}
	}

	counter := yamldoc.Deref(tuple.Content[0])
	current, err := domain.ParseMinutes(counter.Value)
	if err != nil {
		return "", &StructuralError{Path: srCode, Reason: err.Error()}
	}

	updated := domain.FormatMinutes(current + minutes)
	tuple.Content[0] = yamldoc.NewScalar(updated)
	return updated, nil
}

// AppendLinkToWas inserts a link, with an optional timer text appended, as
// a plain scalar into Was.
func AppendLinkToWas(doc *yamldoc.Document, srCode, link, timer string) int {
	text := link
	if timer != "" {
		text = link + " " + timer
	}
	item := yamldoc.NewScalar(text)
	doc.MarkInserted(item)
	return yamldoc.InsertReuse(WasSequence(doc, srCode), item)
}

// WasEntries lists the entries of Was as link and tuple pairs, skipping
// placeholders and plain scalars.
func WasEntries(doc *yamldoc.Document, srCode string) []WasEntry {
	var out []WasEntry
	for i, item := range WasSequence(doc, srCode).Content {
		k, v, ok := yamldoc.SoleKey(item)
		if !ok {
			continue
		}
		v = yamldoc.Deref(v)
		if v == nil || v.Kind != yaml.SequenceNode {
			continue
		}
		out = append(out, WasEntry{Index: i, Link: k.Value, Tuple: v})
	}
	return out
}

// WasEntry is one timed entry of a standup report.
type WasEntry struct {
	Index int
	Link  string
	Tuple *yaml.Node
}
