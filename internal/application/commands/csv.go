package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"f2yaml/internal/application"
	"f2yaml/internal/domain"
	"f2yaml/internal/yamldoc"
)

// Built-in CSV fields; any other name is read from the task's own keys.
const (
	FieldTaskStatus  = "TaskStatus"
	FieldSummaryLink = "SummaryLink"
	FieldIDLink      = "IdLink"
	FieldTask        = "Task"
)

// CSVLineResult holds one CSV record for a task
type CSVLineResult struct {
	Fields  []string
	Values  []string
	Message string
}

// CSVLineCommand renders the task owning a link as a CSV line
type CSVLineCommand struct {
	engine *application.Engine
	Link   string
	Fields []string
}

// NewCSVLineCommand creates a new CSVLineCommand. Empty fields fall back
// to the configured ones.
func NewCSVLineCommand(engine *application.Engine, link string, fields []string) *CSVLineCommand {
	if len(fields) == 0 {
		fields = engine.Options().CSVFields
	}
	return &CSVLineCommand{engine: engine, Link: link, Fields: fields}
}

// Execute runs the csv command
func (c *CSVLineCommand) Execute(ctx context.Context) (*CSVLineResult, error) {
	raw := domain.NormalizeCSVQuotes(c.Link)
	if err := application.ValidateLink("link", raw, c.engine.Options()); err != nil {
		return nil, err
	}
	if len(c.Fields) == 0 {
		return nil, &application.ValidationError{Field: "fields", Message: "at least one CSV field is required"}
	}

	link, err := c.engine.ParseLink(raw)
	if err != nil {
		return nil, err
	}
	owner, err := c.engine.OwningTask(ctx, link)
	if err != nil {
		return nil, err
	}
	trail, err := c.engine.Trail(ctx, owner)
	if err != nil {
		return nil, err
	}
	task := trail[len(trail)-1]

	values := make([]string, 0, len(c.Fields))
	for _, field := range c.Fields {
		v, err := c.field(ctx, owner, task, field)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		values = append(values, v)
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(values); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &CSVLineResult{
		Fields:  c.Fields,
		Values:  values,
		Message: strings.TrimRight(b.String(), "\r\n"),
	}, nil
}

func (c *CSVLineCommand) field(ctx context.Context, owner *domain.Link, task *application.Match, field string) (string, error) {
	ignore := c.engine.Options().IgnoreWords
	switch field {
	case FieldTaskStatus:
		return domain.StatusCode(task.Name, ignore), nil
	case FieldTask:
		return domain.TaskPortion(task.Name, ignore), nil
	case FieldIDLink:
		id, err := c.engine.IDLink(ctx, owner)
		if err != nil {
			return "", err
		}
		return id.String(), nil
	case FieldSummaryLink:
		path, err := c.engine.Workspace().Locate(owner)
		if err != nil {
			return "", err
		}
		summary, err := c.engine.SummaryLinkAt(ctx, path, task.Line())
		if err != nil {
			return "", err
		}
		return summary.String(), nil
	}

	// One-line tasks have no fields of their own.
	value := yamldoc.Deref(task.Value)
	if value == nil || value.Kind != yaml.MappingNode {
		return "", nil
	}
	v := yamldoc.Get(value, field)
	if v == nil || yamldoc.IsNull(v) {
		return "", nil
	}
	if v.Kind == yaml.ScalarNode {
		return v.Value, nil
	}
	return strings.Join(yamldoc.Scalars(v), " "), nil
}
