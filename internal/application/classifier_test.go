package application

import (
	"context"
	"errors"
	"testing"
)

func TestIsTask(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		name string
		link string
		want bool
	}{
		{"status key", `-->ProjectA//tasks.."Fix bug"<`, true},
		{"status key by id", "-->ProjectA//tasks.T-1<", true},
		{"field of a task", `-->ProjectA//tasks."Fix bug".notes<`, false},
		{"sequence item with status", "-->ProjectA//tasks.list.T-7<", true},
		{"scalar sequence item", "-->ProjectA//tasks.list..one-liner<", true},
		{"numeric segment is never a task", "-->ProjectA//tasks.list.1<", false},
		{"plain container", "-->ProjectA//tasks.plain<", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.IsTask(ctx, mustParse(t, engine, tt.link))
			if err != nil {
				t.Fatalf("IsTask failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsTask(%s) = %v, want %v", tt.link, got, tt.want)
			}
		})
	}
}

func TestIsTask_CaseInsensitiveExpression(t *testing.T) {
	ws := newMemWorkspace(map[string]string{
		"P/t.yml": "my todo list:\n  a: 1\n",
	})
	engine := NewEngine(ws, Options{IgnoreWords: []string{"TODO"}}, nil)

	got, err := engine.IsTask(context.Background(), mustParse(t, engine, `-->P//t."my todo list"<`))
	if err != nil {
		t.Fatalf("IsTask failed: %v", err)
	}
	if !got {
		t.Error("ignore words match anywhere, ignoring case")
	}
}

func TestNearestEnclosingTask(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		name string
		link string
		want string
	}{
		{"index segment", "-->ProjectC//tasks.3<", "-->ProjectC//tasks<"},
		{"task field", `-->ProjectA//tasks.."Fix bug".notes<`, `-->ProjectA//tasks.."Fix bug"<`},
		{"inside sequence item", "-->ProjectA//tasks.list.T-7.Id<", "-->ProjectA//tasks.list.T-7<"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := mustParse(t, engine, tt.link)
			if tt.name == "index segment" {
				isTask, err := engine.IsTask(ctx, link)
				if err != nil || isTask {
					t.Fatalf("IsTask = %v, %v; want false", isTask, err)
				}
			}

			got, err := engine.NearestEnclosingTask(ctx, link)
			if err != nil {
				t.Fatalf("NearestEnclosingTask failed: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNearestEnclosingTask_Exhausted(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.NearestEnclosingTask(context.Background(), mustParse(t, engine, "-->ProjectA//tasks.plain.x<"))
	if !errors.Is(err, ErrNoEnclosingTask) {
		t.Errorf("expected ErrNoEnclosingTask, got %v", err)
	}
}

func TestOwningTask(t *testing.T) {
	engine, _ := newTestEngine(t)
	link := mustParse(t, engine, "-->ProjectA//tasks.T-1<")

	got, err := engine.OwningTask(context.Background(), link)
	if err != nil {
		t.Fatalf("OwningTask failed: %v", err)
	}
	if got != link {
		t.Errorf("a task owns itself, got %s", got)
	}
}
