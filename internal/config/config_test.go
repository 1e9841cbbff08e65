package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("USER", "alice")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.PathSeparator != "/" {
		t.Errorf("PathSeparator = %q", cfg.PathSeparator)
	}
	if cfg.UserName != "alice" {
		t.Errorf("UserName = %q, want alice", cfg.UserName)
	}
	if !reflect.DeepEqual(cfg.IgnoreWords, []string{"TODO", "DOING", "DONE", "BLOCKED"}) {
		t.Errorf("IgnoreWords = %q", cfg.IgnoreWords)
	}
	if !reflect.DeepEqual(cfg.CSVFields, []string{"TaskStatus", "SummaryLink"}) {
		t.Errorf("CSVFields = %q", cfg.CSVFields)
	}
}

func TestLoadFrom_ProjectOverridesGlobal(t *testing.T) {
	global := writeConfig(t, t.TempDir(), "user_name: global\nignore_words: [TODO, WAIT]\nroot_path: /global\n")
	project := writeConfig(t, t.TempDir(), "user_name: project\n")

	cfg, err := LoadFrom(global, project)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.UserName != "project" {
		t.Errorf("UserName = %q, want project", cfg.UserName)
	}
	if cfg.RootPath != "/global" {
		t.Errorf("RootPath = %q, want /global", cfg.RootPath)
	}
	if !reflect.DeepEqual(cfg.IgnoreWords, []string{"TODO", "WAIT"}) {
		t.Errorf("IgnoreWords = %q", cfg.IgnoreWords)
	}
}

func TestLoadFrom_Environment(t *testing.T) {
	t.Setenv("F2YAML_USER_NAME", "env-user")
	t.Setenv("F2YAML_ROOT_PATH", "/from/env")
	project := writeConfig(t, t.TempDir(), "user_name: project\n")

	cfg, err := LoadFrom(project)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.UserName != "env-user" {
		t.Errorf("UserName = %q, want env-user", cfg.UserName)
	}
	if cfg.RootPath != "/from/env" {
		t.Errorf("RootPath = %q", cfg.RootPath)
	}
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	bad := writeConfig(t, t.TempDir(), "user_name: [unclosed\n")
	if _, err := LoadFrom(bad); err == nil {
		t.Error("expected an error for invalid YAML")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/.f2yaml/state.db"); got != filepath.Join(home, ".f2yaml", "state.db") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs"); got != "/abs" {
		t.Errorf("ExpandHome(/abs) = %q", got)
	}
}
