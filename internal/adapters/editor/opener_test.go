package editor

import (
	"reflect"
	"testing"
)

func TestLineArgs(t *testing.T) {
	tests := []struct {
		editor string
		line   int
		want   []string
	}{
		{"nvim", 12, []string{"+12", "tasks.yml"}},
		{"/usr/bin/vim", 3, []string{"+3", "tasks.yml"}},
		{"code", 12, []string{"-g", "tasks.yml:12"}},
		{"hx", 4, []string{"tasks.yml:4"}},
		{"nano", 0, []string{"tasks.yml"}},
	}

	for _, tt := range tests {
		if got := lineArgs(tt.editor, "tasks.yml", tt.line); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("lineArgs(%s, %d) = %q, want %q", tt.editor, tt.line, got, tt.want)
		}
	}
}

func TestCommand_UsesEditorVariable(t *testing.T) {
	env := map[string]string{"EDITOR": "code --wait"}
	o := &Opener{lookup: func(k string) string { return env[k] }}

	cmd, err := o.Command("tasks.yml", 7)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	want := []string{"code", "--wait", "-g", "tasks.yml:7"}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Errorf("args = %q, want %q", cmd.Args, want)
	}
}
