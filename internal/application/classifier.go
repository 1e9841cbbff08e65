package application

import (
	"context"

	"f2yaml/internal/domain"
)

// IsTask reports whether a link addresses a task. Links running through a
// sequence index are never tasks themselves; their owner is found with
// NearestEnclosingTask.
func (e *Engine) IsTask(ctx context.Context, link *domain.Link) (bool, error) {
	if _, trimmed := link.TrimAtIndexSegment(); trimmed {
		e.log.Printf("%s runs through an index segment", link)
		return false, nil
	}

	trail, err := e.Trail(ctx, link)
	if err != nil {
		return false, err
	}
	return e.isTaskMatch(trail[len(trail)-1]), nil
}

func (e *Engine) isTaskMatch(m *Match) bool {
	names := []string{m.Name}
	if m.Key != nil && m.Key.Value != m.Name {
		names = append(names, m.Key.Value)
	}
	if m.Item != nil && m.Item.Value != "" && m.Item.Value != m.Name {
		names = append(names, m.Item.Value)
	}

	for _, n := range names {
		if domain.MatchesStatus(n, e.opts.IgnoreWords) {
			return true
		}
	}
	return false
}

// NearestEnclosingTask walks up from link until an ancestor is a task.
func (e *Engine) NearestEnclosingTask(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	current := link
	for {
		parent, ok := current.Parent()
		if !ok {
			return nil, ErrNoEnclosingTask
		}
		isTask, err := e.IsTask(ctx, parent)
		if err != nil {
			return nil, err
		}
		if isTask {
			return parent, nil
		}
		current = parent
	}
}

// StatusCode returns the status word a task key starts with.
func (e *Engine) StatusCode(key string) string {
	return domain.StatusCode(key, e.opts.IgnoreWords)
}

// OwningTask returns link itself when it is a task, otherwise its nearest
// enclosing task.
func (e *Engine) OwningTask(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	isTask, err := e.IsTask(ctx, link)
	if err != nil {
		return nil, err
	}
	if isTask {
		return link, nil
	}
	return e.NearestEnclosingTask(ctx, link)
}
