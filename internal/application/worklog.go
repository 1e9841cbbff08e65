package application

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"f2yaml/internal/domain"
	"f2yaml/internal/yamldoc"
)

// AppendWorkLog records a standup tuple [duration, status, timestamp] in the
// WorkLog of the task taskLink addresses, prefixed with the user name. The
// returned bool is false when the same session was already logged. The
// document is modified in memory only.
func (e *Engine) AppendWorkLog(ctx context.Context, tuple *yaml.Node, taskLink string) (*TaskRef, bool, error) {
	link, err := e.ParseLink(taskLink)
	if err != nil {
		return nil, false, err
	}
	tuple = yamldoc.Deref(tuple)
	if tuple == nil || tuple.Kind != yaml.SequenceNode {
		return nil, false, &StructuralError{Path: taskLink, Reason: "standup entry has no time tuple"}
	}

	// Build the row before touching the task document.
	row := yamldoc.NewFlowSequence(yamldoc.NewScalar(e.opts.UserName))
	for _, item := range tuple.Content {
		row.Content = append(row.Content, yamldoc.Copy(yamldoc.Deref(item)))
	}
	entry := workLogEntry(row)

	ref, err := e.Load(ctx, link)
	if err != nil {
		return nil, false, err
	}

	task := ref.Match.Value
	if task == nil || task.Kind != yaml.MappingNode {
		return nil, false, notProperTask(taskLink)
	}

	workLog := yamldoc.Deref(yamldoc.Get(task, domain.WorkLogKey))
	if workLog == nil || workLog.Kind != yaml.SequenceNode {
		workLog = yamldoc.NewPlaceholderSequence()
		yamldoc.Set(task, domain.WorkLogKey, workLog)
	}

	for _, existing := range workLog.Content {
		if prev := workLogEntry(yamldoc.Deref(existing)); prev.Timestamp != "" && prev.SameAs(entry) {
			return ref, false, nil
		}
	}

	yamldoc.InsertReuse(workLog, row)
	return ref, true, nil
}

// workLogEntry reads a [name, duration, status, timestamp] row. Malformed
// rows yield a zero entry.
func workLogEntry(n *yaml.Node) domain.WorkLogEntry {
	if n == nil || n.Kind != yaml.SequenceNode || len(n.Content) < 4 {
		return domain.WorkLogEntry{}
	}
	v := func(i int) string { return yamldoc.Deref(n.Content[i]).Value }
	return domain.WorkLogEntry{Name: v(0), Duration: v(1), Status: v(2), Timestamp: v(3)}
}

// WorkLogResult reports one standup entry processed by GenerateWorkLogs.
type WorkLogResult struct {
	Link  string
	Path  string
	Added bool
}

// GenerateWorkLogs copies every Was entry of srCode into its task's WorkLog,
// saving each task file right after its entry. A failure stops the batch;
// files already saved stay saved.
func (e *Engine) GenerateWorkLogs(ctx context.Context, srDoc *yamldoc.Document, srCode string) ([]WorkLogResult, error) {
	var results []WorkLogResult
	for _, w := range WasEntries(srDoc, srCode) {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		ref, added, err := e.AppendWorkLog(ctx, w.Tuple, w.Link)
		if err != nil {
			return results, fmt.Errorf("work log for %s: %w", w.Link, err)
		}
		if err := e.ws.Save(ref.Doc); err != nil {
			return results, fmt.Errorf("save %s: %w", ref.Doc.Path, err)
		}

		e.log.Printf("work log %s -> %s (added: %v)", w.Link, ref.Doc.Path, added)
		results = append(results, WorkLogResult{Link: w.Link, Path: ref.Doc.Path, Added: added})
	}
	return results, nil
}
