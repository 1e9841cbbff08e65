package application

import (
	"context"
	"errors"
	"testing"
)

func TestIDLink(t *testing.T) {
	engine, _ := newTestEngine(t)

	tests := []struct {
		link string
		want string
	}{
		{`-->ProjectA//tasks.."Fix bug"<`, "-->ProjectA//tasks.T-1<"},
		{`-->ProjectA//tasks.list.."Write docs"<`, "-->ProjectA//tasks.list.T-7<"},
		{"-->ProjectA//tasks..Refactor<", "-->ProjectA//tasks.Refactor<"},
		{`-->ProjectA//tasks.."Fix bug"..notes<`, "-->ProjectA//tasks.T-1.notes<"},
	}

	for _, tt := range tests {
		got, err := engine.IDLink(context.Background(), mustParse(t, engine, tt.link))
		if err != nil {
			t.Fatalf("IDLink(%s) failed: %v", tt.link, err)
		}
		if got.String() != tt.want {
			t.Errorf("IDLink(%s) = %s, want %s", tt.link, got, tt.want)
		}
	}
}

func TestSummaryLinkAt(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		line int
		want string
	}{
		{1, `-->ProjectA//tasks.."Fix bug"<`},
		{3, `-->ProjectA//tasks.."Fix bug"..notes<`},
		{7, `-->ProjectA//tasks..list.."Write docs"<`},
	}

	for _, tt := range tests {
		got, err := engine.SummaryLinkAt(ctx, "ProjectA/tasks.yml", tt.line)
		if err != nil {
			t.Fatalf("SummaryLinkAt(%d) failed: %v", tt.line, err)
		}
		if got.String() != tt.want {
			t.Errorf("SummaryLinkAt(%d) = %s, want %s", tt.line, got, tt.want)
			continue
		}

		// The generated link resolves back to the same key.
		if _, err := engine.Trail(ctx, mustParse(t, engine, got.String())); err != nil {
			t.Errorf("generated link %s does not resolve: %v", got, err)
		}
	}
}

func TestSummaryLinkAt_RootLevelFile(t *testing.T) {
	ws := newMemWorkspace(map[string]string{
		"tasks.yml": "tasks:\n  TODO Fix:\n    Id: T-9\n",
	})
	engine := NewEngine(ws, Options{}, nil)
	ctx := context.Background()

	tests := []struct {
		line int
		want string
	}{
		{1, "-->//tasks<"},
		{2, "-->//tasks..Fix<"},
	}

	for _, tt := range tests {
		got, err := engine.SummaryLinkAt(ctx, "tasks.yml", tt.line)
		if err != nil {
			t.Fatalf("SummaryLinkAt(%d) failed: %v", tt.line, err)
		}
		if got.String() != tt.want {
			t.Errorf("SummaryLinkAt(%d) = %s, want %s", tt.line, got, tt.want)
			continue
		}
		if _, err := engine.ParseLink(got.String()); err != nil {
			t.Errorf("generated link %s does not parse: %v", got, err)
		}
	}
}

func TestSummaryLinkAt_NothingAtLine(t *testing.T) {
	ws := newMemWorkspace(map[string]string{
		"P/t.yml": "\n\nTODO late: 1\n",
	})
	engine := NewEngine(ws, Options{}, nil)

	_, err := engine.SummaryLinkAt(context.Background(), "P/t.yml", 1)
	if !errors.Is(err, ErrUnableToFindTask) {
		t.Errorf("expected ErrUnableToFindTask, got %v", err)
	}
}
