package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"f2yaml/internal/application"
	"f2yaml/internal/domain"
	"f2yaml/internal/yamldoc"
)

// DefaultExtensions are tried in order when locating a task file.
var DefaultExtensions = []string{".yml", ".yaml"}

// Workspace implements ports.Workspace over a directory of YAML files
type Workspace struct {
	root       string
	separator  string
	extensions []string

	// symbol reads retry while a file is still empty
	attempts int
	backoff  time.Duration
}

// NewWorkspace creates a workspace rooted at root
func NewWorkspace(root, separator string, extensions []string) *Workspace {
	// Expand ~ to home directory
	if strings.HasPrefix(root, "~") {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, root[1:])
	}
	if separator == "" {
		separator = domain.DefaultPathSeparator
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Workspace{
		root:       root,
		separator:  separator,
		extensions: extensions,
		attempts:   5,
		backoff:    50 * time.Millisecond,
	}
}

// WithRetry overrides the symbol read retry policy.
func (w *Workspace) WithRetry(attempts int, backoff time.Duration) *Workspace {
	w.attempts, w.backoff = attempts, backoff
	return w
}

// Root returns the workspace directory
func (w *Workspace) Root() string {
	return w.root
}

// Locate returns the path of the file segment 0 names, trying each
// extension in order.
func (w *Workspace) Locate(link *domain.Link) (string, error) {
	folders, file := link.FileLocator()
	if file == "" {
		return "", &application.ResolutionError{Kind: application.ErrUnableToFindFile, Name: link.Raw}
	}

	base := filepath.Join(append(append([]string{w.root}, folders...), file)...)
	for _, ext := range w.extensions {
		path := base + ext
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", &application.ResolutionError{Kind: application.ErrUnableToFindFile, Name: base}
}

// Load reads and parses a YAML file
func (w *Workspace) Load(path string) (*yamldoc.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &application.ResolutionError{Kind: application.ErrUnableToFindFile, Name: path}
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := yamldoc.Parse(data)
	if err != nil {
		return nil, &application.ParseError{Path: path, Err: err}
	}
	doc.Path = path
	return doc, nil
}

// Save writes a document back to its path atomically, keeping the file mode
func (w *Workspace) Save(doc *yamldoc.Document) error {
	if doc.Path == "" {
		return fmt.Errorf("document has no path")
	}
	data, err := doc.Bytes()
	if err != nil {
		return err
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(doc.Path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := atomic.WriteFile(doc.Path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", doc.Path, err)
	}
	// new files are created with the temp file's 0600
	return os.Chmod(doc.Path, mode)
}

// ReadLine returns the text of a 1-based line of a file
func (w *Workspace) ReadLine(path string, line int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &application.ResolutionError{Kind: application.ErrUnableToFindFile, Name: path}
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	lines := strings.Split(string(data), "\n")
	if line < 1 || line > len(lines) {
		return "", fmt.Errorf("%s has no line %d", path, line)
	}
	return strings.TrimRight(lines[line-1], "\r"), nil
}

// Symbols loads a file once it has content, backing off exponentially
// between attempts.
func (w *Workspace) Symbols(ctx context.Context, path string) (*yamldoc.Document, error) {
	var doc *yamldoc.Document
	err := waitFor(ctx, w.attempts, w.backoff, func() (bool, error) {
		d, err := w.Load(path)
		if err != nil {
			return false, err
		}
		doc = d
		return !d.Empty(), nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Locator returns segment 0 for a file: its folders relative to the root,
// then the doubled separator, then the file name without extension. Files
// directly under the root start with the separator pair.
func (w *Workspace) Locator(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	root, err := filepath.Abs(w.root)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", &application.ResolutionError{Kind: application.ErrUnableToFindFile, Name: path}
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	parts := strings.Split(filepath.ToSlash(rel), "/")
	file := parts[len(parts)-1]
	folders := strings.Join(parts[:len(parts)-1], w.separator)
	return folders + w.separator + w.separator + file, nil
}
