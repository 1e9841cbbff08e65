package commands

import (
	"context"
	"fmt"

	"f2yaml/internal/application"
	"f2yaml/internal/domain"
)

// IsTaskResult reports whether a link addresses a task
type IsTaskResult struct {
	Link    *domain.Link
	IsTask  bool
	Status  string
	Message string
}

// IsTaskCommand classifies a link
type IsTaskCommand struct {
	engine *application.Engine
	Link   string
}

// NewIsTaskCommand creates a new IsTaskCommand
func NewIsTaskCommand(engine *application.Engine, link string) *IsTaskCommand {
	return &IsTaskCommand{engine: engine, Link: link}
}

// Execute runs the is command
func (c *IsTaskCommand) Execute(ctx context.Context) (*IsTaskResult, error) {
	if err := application.ValidateLink("link", c.Link, c.engine.Options()); err != nil {
		return nil, err
	}
	link, err := c.engine.ParseLink(c.Link)
	if err != nil {
		return nil, err
	}

	isTask, err := c.engine.IsTask(ctx, link)
	if err != nil {
		return nil, err
	}
	result := &IsTaskResult{Link: link, IsTask: isTask}
	if !isTask {
		result.Message = fmt.Sprintf("%s is not a task", link)
		return result, nil
	}

	key, _ := domain.SegmentKey(link.Segments[len(link.Segments)-1])
	trail, err := c.engine.Trail(ctx, link)
	if err == nil {
		key = trail[len(trail)-1].Name
	}
	result.Status = c.engine.StatusCode(key)
	result.Message = fmt.Sprintf("%s is a task", link)
	if result.Status != "" {
		result.Message += fmt.Sprintf(" (%s)", result.Status)
	}
	return result, nil
}

// OwnerCommand finds the task owning a link: the link itself when it is a
// task, else its nearest enclosing task
type OwnerCommand struct {
	engine *application.Engine
	Link   string
}

// NewOwnerCommand creates a new OwnerCommand
func NewOwnerCommand(engine *application.Engine, link string) *OwnerCommand {
	return &OwnerCommand{engine: engine, Link: link}
}

// Execute runs the owner command
func (c *OwnerCommand) Execute(ctx context.Context) (*LinkResult, error) {
	if err := application.ValidateLink("link", c.Link, c.engine.Options()); err != nil {
		return nil, err
	}
	link, err := c.engine.ParseLink(c.Link)
	if err != nil {
		return nil, err
	}
	owner, err := c.engine.OwningTask(ctx, link)
	if err != nil {
		return nil, err
	}
	return linkResult(owner), nil
}
