package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"f2yaml/internal/application"
	"f2yaml/internal/ports"
	"f2yaml/internal/yamldoc"
)

// SelectStandupResult contains the result of selecting a standup report
type SelectStandupResult struct {
	Code    string
	Path    string
	Created bool
	Message string
}

// SelectStandupCommand makes a code inside a YAML file the current
// standup report
type SelectStandupCommand struct {
	engine *application.Engine
	store  ports.SessionStore
	File   string
	Code   string
}

// NewSelectStandupCommand creates a new SelectStandupCommand
func NewSelectStandupCommand(engine *application.Engine, store ports.SessionStore, file, code string) *SelectStandupCommand {
	return &SelectStandupCommand{engine: engine, store: store, File: file, Code: code}
}

// Validate checks the required fields
func (c *SelectStandupCommand) Validate() error {
	if err := application.ValidateRequired("srFile", c.File); err != nil {
		return err
	}
	return application.ValidateRequired("srCode", c.Code)
}

// Execute runs the select command
func (c *SelectStandupCommand) Execute(ctx context.Context) (*SelectStandupResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	path, err := filepath.Abs(c.File)
	if err != nil {
		return nil, err
	}

	ws := c.engine.Workspace()
	doc, err := ws.Load(path)
	if err != nil {
		return nil, err
	}

	created := yamldoc.Get(doc.Root(), c.Code) == nil
	if _, err := application.StandupBucket(doc, c.Code); err != nil {
		return nil, err
	}
	if created {
		if err := ws.Save(doc); err != nil {
			return nil, fmt.Errorf("failed to save standup report: %w", err)
		}
	}

	sess, err := c.store.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	sess.SRCode = c.Code
	sess.SRDocPath = path
	if err := c.store.SaveSession(ctx, sess); err != nil {
		return nil, err
	}

	return &SelectStandupResult{
		Code:    c.Code,
		Path:    path,
		Created: created,
		Message: fmt.Sprintf("Standup report set to %s in %s", c.Code, path),
	}, nil
}

// NoteStandupResult contains the result of noting a link in the report
type NoteStandupResult struct {
	Link    string
	Index   int
	Message string
}

// NoteStandupCommand records a link in Was without timing it
type NoteStandupCommand struct {
	engine *application.Engine
	store  ports.SessionStore
	Link   string
	Timer  string
}

// NewNoteStandupCommand creates a new NoteStandupCommand
func NewNoteStandupCommand(engine *application.Engine, store ports.SessionStore, link, timer string) *NoteStandupCommand {
	return &NoteStandupCommand{engine: engine, store: store, Link: link, Timer: timer}
}

// Validate checks the link syntax
func (c *NoteStandupCommand) Validate() error {
	return application.ValidateLink("link", c.Link, c.engine.Options())
}

// Execute runs the note command
func (c *NoteStandupCommand) Execute(ctx context.Context) (*NoteStandupResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sess, err := c.store.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	if !sess.HasStandup() {
		return nil, application.ErrNoStandupReport
	}

	ws := c.engine.Workspace()
	doc, err := ws.Load(sess.SRDocPath)
	if err != nil {
		return nil, err
	}
	if _, err := application.StandupBucket(doc, sess.SRCode); err != nil {
		return nil, err
	}
	idx := application.AppendLinkToWas(doc, sess.SRCode, c.Link, c.Timer)
	if err := ws.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to save standup report: %w", err)
	}

	return &NoteStandupResult{
		Link:    c.Link,
		Index:   idx,
		Message: fmt.Sprintf("Noted %s in %s", c.Link, sess.SRCode),
	}, nil
}
