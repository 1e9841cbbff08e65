package commands

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"f2yaml/internal/application"
)

func TestParseLinkCommand(t *testing.T) {
	f := setupFixture(t)

	result, err := NewParseLinkCommand(f.engine, `-->Work/ProjectA//tasks.."Fix bug"<`).Execute(context.Background())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if result.File != "tasks" || len(result.Folders) != 2 || result.Folders[1] != "ProjectA" {
		t.Errorf("locator = %v %s", result.Folders, result.File)
	}
	if len(result.Link.Segments) != 2 {
		t.Errorf("segments = %q", result.Link.Segments)
	}

	_, err = NewParseLinkCommand(f.engine, "-->ProjectA//tasks").Execute(context.Background())
	var verr *application.ValidationError
	if !errors.As(err, &verr) || verr.Field != "link" {
		t.Errorf("expected a link ValidationError, got %v", err)
	}
}

func TestFollowCommand(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	tests := []struct {
		link string
		line int
	}{
		{"-->ProjectA//tasks.T-1<", 1},
		{`-->ProjectA//tasks.."Fix bug"..notes<`, 3},
		{"-->ProjectA//tasks.list.T-7<", 7},
		{`-->ProjectA//tasks.list..""Write docs""<`, 7},
	}

	for _, tt := range tests {
		result, err := NewFollowCommand(f.engine, tt.link).Execute(ctx)
		if err != nil {
			t.Fatalf("follow %s failed: %v", tt.link, err)
		}
		want := filepath.Join(f.root, "ProjectA", "tasks.yml")
		if result.Path != want || result.Line != tt.line {
			t.Errorf("follow %s = %s:%d, want %s:%d", tt.link, result.Path, result.Line, want, tt.line)
		}
	}
}

func TestFollowCommand_Unresolved(t *testing.T) {
	f := setupFixture(t)

	tests := []struct {
		link string
		want error
	}{
		{"-->ProjectB//tasks.T-1<", application.ErrUnableToFindFile},
		{"-->ProjectA//tasks.T-99<", application.ErrUnableToFindTask},
	}
	for _, tt := range tests {
		_, err := NewFollowCommand(f.engine, tt.link).Execute(context.Background())
		if !errors.Is(err, tt.want) {
			t.Errorf("follow %s: expected %v, got %v", tt.link, tt.want, err)
		}
	}
}

func TestIDLinkCommand(t *testing.T) {
	f := setupFixture(t)

	result, err := NewIDLinkCommand(f.engine, `-->ProjectA//tasks.list.."Write docs"<`).Execute(context.Background())
	if err != nil {
		t.Fatalf("id failed: %v", err)
	}
	if result.Message != "-->ProjectA//tasks.list.T-7<" {
		t.Errorf("id link = %s", result.Message)
	}
}

func TestLinkAtCommand(t *testing.T) {
	f := setupFixture(t)
	writeFile(t, filepath.Join(f.root, "notes.yml"), "see: -->ProjectA//tasks.T-1< later\n")
	tasks := filepath.Join(f.root, "ProjectA", "tasks.yml")

	tests := []struct {
		name string
		path string
		line int
		col  int
		want string
	}{
		{"link under cursor", filepath.Join(f.root, "notes.yml"), 1, 8, "-->ProjectA//tasks.T-1<"},
		{"no link under cursor", filepath.Join(f.root, "notes.yml"), 1, 1, "-->//notes..see<"},
		{"summary of a line", tasks, 3, -1, `-->ProjectA//tasks.."Fix bug"..notes<`},
		{"sequence item", tasks, 6, -1, `-->ProjectA//tasks..list..one-liner<`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewLinkAtCommand(f.engine, tt.path, tt.line, tt.col).Execute(context.Background())
			if err != nil {
				t.Fatalf("at failed: %v", err)
			}
			if result.Message != tt.want {
				t.Errorf("link = %s, want %s", result.Message, tt.want)
			}
		})
	}
}

func TestLinkAtCommand_Validation(t *testing.T) {
	f := setupFixture(t)

	_, err := NewLinkAtCommand(f.engine, f.sr, 0, -1).Execute(context.Background())
	var verr *application.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected a ValidationError, got %v", err)
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		pos     string
		path    string
		line    int
		col     int
		wantErr bool
	}{
		{"a/b.yml:12", "a/b.yml", 12, -1, false},
		{"a/b.yml:12:4", "a/b.yml", 12, 4, false},
		{"a/b.yml", "", 0, 0, true},
		{"a/b.yml:x", "", 0, 0, true},
		{"a/b.yml:1:y", "", 0, 0, true},
	}

	for _, tt := range tests {
		path, line, col, err := ParsePosition(tt.pos)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePosition(%q) error = %v, wantErr %v", tt.pos, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (path != tt.path || line != tt.line || col != tt.col) {
			t.Errorf("ParsePosition(%q) = %s, %d, %d", tt.pos, path, line, col)
		}
	}
}
