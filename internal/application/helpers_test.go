package application

import (
	"context"
	"path"
	"strings"
	"testing"

	"f2yaml/internal/domain"
	"f2yaml/internal/yamldoc"
)

// memWorkspace keeps task files in memory, keyed by slash path with extension.
type memWorkspace struct {
	files map[string]string
	saves int
}

func newMemWorkspace(files map[string]string) *memWorkspace {
	return &memWorkspace{files: files}
}

func (w *memWorkspace) Locate(link *domain.Link) (string, error) {
	folders, file := link.FileLocator()
	p := path.Join(append(folders, file)...) + ".yml"
	if _, ok := w.files[p]; !ok {
		return "", &ResolutionError{Kind: ErrUnableToFindFile, Name: p}
	}
	return p, nil
}

func (w *memWorkspace) Load(p string) (*yamldoc.Document, error) {
	content, ok := w.files[p]
	if !ok {
		return nil, &ResolutionError{Kind: ErrUnableToFindFile, Name: p}
	}
	doc, err := yamldoc.Parse([]byte(content))
	if err != nil {
		return nil, &ParseError{Path: p, Err: err}
	}
	doc.Path = p
	return doc, nil
}

func (w *memWorkspace) Save(doc *yamldoc.Document) error {
	data, err := doc.Bytes()
	if err != nil {
		return err
	}
	w.files[doc.Path] = string(data)
	w.saves++
	return nil
}

func (w *memWorkspace) Symbols(_ context.Context, p string) (*yamldoc.Document, error) {
	return w.Load(p)
}

func (w *memWorkspace) Locator(p string) (string, error) {
	p = strings.TrimSuffix(p, ".yml")
	dir, file := path.Split(p)
	return strings.TrimSuffix(dir, "/") + "//" + file, nil
}

func (w *memWorkspace) ReadLine(p string, line int) (string, error) {
	lines := strings.Split(w.files[p], "\n")
	if line < 1 || line > len(lines) {
		return "", ErrUnableToFindTask
	}
	return lines[line-1], nil
}

const projectA = `TODO Fix bug:
  Id: T-1
  notes: check the parser
DOING Refactor: ~
list:
  - TODO one-liner
  - DONE Write docs:
      Id: T-7
plain:
  x: 1
`

const projectC = `DOING ProjectC//tasks:
  - a
  - b
  - c
  - d
`

func newTestEngine(t *testing.T) (*Engine, *memWorkspace) {
	t.Helper()
	ws := newMemWorkspace(map[string]string{
		"ProjectA/tasks.yml": projectA,
		"ProjectC/tasks.yml": projectC,
	})
	engine := NewEngine(ws, Options{
		IgnoreWords: domain.DefaultIgnoreWords,
		UserName:    "alice",
	}, nil)
	return engine, ws
}

func mustParse(t *testing.T, e *Engine, raw string) *domain.Link {
	t.Helper()
	link, err := e.ParseLink(raw)
	if err != nil {
		t.Fatalf("ParseLink(%q) failed: %v", raw, err)
	}
	return link
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
