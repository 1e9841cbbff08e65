package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"f2yaml/internal/adapters/filesystem"
	"f2yaml/internal/adapters/sqlite"
	"f2yaml/internal/application"
)

const tasksYAML = `TODO Fix bug:
  Id: T-1
  notes: check the parser
DOING Refactor: ~
list:
  - TODO one-liner
  - DONE Write docs:
      Id: T-7
      owner: bob
plain:
  x: 1
`

type fixture struct {
	root   string
	sr     string
	engine *application.Engine
	store  *sqlite.Store
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "ProjectA", "tasks.yml"), tasksYAML)
	sr := filepath.Join(root, "sr.yml")
	writeFile(t, sr, "# standups\n")

	store, err := sqlite.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ws := filesystem.NewWorkspace(root, "", nil).WithRetry(2, time.Millisecond)
	engine := application.NewEngine(ws, application.Options{
		UserName:  "alice",
		CSVFields: []string{FieldTaskStatus, FieldSummaryLink},
	}, nil)

	return &fixture{root: root, sr: sr, engine: engine, store: store}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return string(data)
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
