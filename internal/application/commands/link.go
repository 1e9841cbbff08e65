package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"f2yaml/internal/application"
	"f2yaml/internal/domain"
)

// ParseLinkResult describes the segments of a link
type ParseLinkResult struct {
	Link    *domain.Link
	Folders []string
	File    string
	Message string
}

// ParseLinkCommand splits a link into its segments without touching files
type ParseLinkCommand struct {
	engine *application.Engine
	Link   string
}

// NewParseLinkCommand creates a new ParseLinkCommand
func NewParseLinkCommand(engine *application.Engine, link string) *ParseLinkCommand {
	return &ParseLinkCommand{engine: engine, Link: link}
}

// Execute runs the parse command
func (c *ParseLinkCommand) Execute(_ context.Context) (*ParseLinkResult, error) {
	if err := application.ValidateLink("link", c.Link, c.engine.Options()); err != nil {
		return nil, err
	}
	link, err := c.engine.ParseLink(c.Link)
	if err != nil {
		return nil, err
	}
	folders, file := link.FileLocator()

	var b strings.Builder
	dialect := "current"
	if link.Legacy {
		dialect = "legacy"
	}
	fmt.Fprintf(&b, "%s (%s)\n", link, dialect)
	for i, seg := range link.Segments {
		fmt.Fprintf(&b, "  %d: %s\n", i, seg)
	}
	fmt.Fprintf(&b, "file: %s", filepath.Join(append(folders, file)...))

	return &ParseLinkResult{Link: link, Folders: folders, File: file, Message: b.String()}, nil
}

// FollowResult is the location a link resolves to
type FollowResult struct {
	Path    string
	Line    int
	Message string
}

// FollowCommand resolves a link to a file position
type FollowCommand struct {
	engine *application.Engine
	Link   string
}

// NewFollowCommand creates a new FollowCommand
func NewFollowCommand(engine *application.Engine, link string) *FollowCommand {
	return &FollowCommand{engine: engine, Link: link}
}

// Execute runs the follow command
func (c *FollowCommand) Execute(ctx context.Context) (*FollowResult, error) {
	raw := domain.NormalizeCSVQuotes(c.Link)
	if err := application.ValidateLink("link", raw, c.engine.Options()); err != nil {
		return nil, err
	}
	link, err := c.engine.ParseLink(raw)
	if err != nil {
		return nil, err
	}

	path, err := c.engine.Workspace().Locate(link)
	if err != nil {
		return nil, err
	}
	trail, err := c.engine.Trail(ctx, link)
	if err != nil {
		return nil, err
	}

	line := trail[len(trail)-1].Line()
	if line == 0 {
		line = 1
	}
	return &FollowResult{
		Path:    path,
		Line:    line,
		Message: fmt.Sprintf("%s:%d", path, line),
	}, nil
}

// LinkResult carries a generated link
type LinkResult struct {
	Link    *domain.Link
	Message string
}

func linkResult(link *domain.Link) *LinkResult {
	return &LinkResult{Link: link, Message: link.String()}
}

// IDLinkCommand converts a summary link to its Id form
type IDLinkCommand struct {
	engine *application.Engine
	Link   string
}

// NewIDLinkCommand creates a new IDLinkCommand
func NewIDLinkCommand(engine *application.Engine, link string) *IDLinkCommand {
	return &IDLinkCommand{engine: engine, Link: link}
}

// Execute runs the id command
func (c *IDLinkCommand) Execute(ctx context.Context) (*LinkResult, error) {
	if err := application.ValidateLink("link", c.Link, c.engine.Options()); err != nil {
		return nil, err
	}
	link, err := c.engine.ParseLink(c.Link)
	if err != nil {
		return nil, err
	}
	id, err := c.engine.IDLink(ctx, link)
	if err != nil {
		return nil, err
	}
	return linkResult(id), nil
}

// LinkAtCommand finds the link at a cursor position. With a column it
// returns the link written under the cursor; otherwise it derives the
// summary link of the key enclosing the line.
type LinkAtCommand struct {
	engine *application.Engine
	Path   string
	Line   int
	// Col is 0-based; negative means no column was given
	Col int
}

// NewLinkAtCommand creates a new LinkAtCommand
func NewLinkAtCommand(engine *application.Engine, path string, line, col int) *LinkAtCommand {
	return &LinkAtCommand{engine: engine, Path: path, Line: line, Col: col}
}

// Validate checks the position
func (c *LinkAtCommand) Validate() error {
	if err := application.ValidateRequired("file", c.Path); err != nil {
		return err
	}
	if c.Line < 1 {
		return &application.ValidationError{Field: "line", Message: "line must be 1 or greater"}
	}
	return nil
}

// Execute runs the at command
func (c *LinkAtCommand) Execute(ctx context.Context) (*LinkResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	path, err := filepath.Abs(c.Path)
	if err != nil {
		return nil, err
	}

	if c.Col >= 0 {
		text, err := c.engine.Workspace().ReadLine(path, c.Line)
		if err != nil {
			return nil, err
		}
		if raw, ok := domain.FindLinkAt(text, c.Col); ok {
			link, err := c.engine.ParseLink(domain.NormalizeCSVQuotes(raw))
			if err != nil {
				return nil, err
			}
			return linkResult(link), nil
		}
	}

	link, err := c.engine.SummaryLinkAt(ctx, path, c.Line)
	if err != nil {
		return nil, err
	}
	return linkResult(link), nil
}

// ParsePosition splits "file:line[:col]". A missing column is returned
// as -1.
func ParsePosition(pos string) (path string, line, col int, err error) {
	col = -1
	parts := strings.Split(pos, ":")
	if len(parts) > 3 || len(parts) < 2 {
		return "", 0, 0, &application.ValidationError{Field: "position", Message: "expected file:line[:col]"}
	}
	if len(parts) == 3 {
		if col, err = strconv.Atoi(parts[2]); err != nil {
			return "", 0, 0, &application.ValidationError{Field: "position", Message: "column must be a number"}
		}
	}
	if line, err = strconv.Atoi(parts[1]); err != nil {
		return "", 0, 0, &application.ValidationError{Field: "position", Message: "line must be a number"}
	}
	return parts[0], line, col, nil
}
