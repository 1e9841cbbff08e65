package ports

import (
	"context"

	"f2yaml/internal/domain"
	"f2yaml/internal/yamldoc"
)

// Workspace gives access to the YAML task files under a root directory.
type Workspace interface {
	// Locate returns the file segment 0 of a link names
	Locate(link *domain.Link) (string, error)

	// Load parses a file; Save writes a document back to its Path
	Load(path string) (*yamldoc.Document, error)
	Save(doc *yamldoc.Document) error

	// Symbols loads a file for position lookups, waiting while the file is
	// still empty (an editor may be mid-write)
	Symbols(ctx context.Context, path string) (*yamldoc.Document, error)

	// Locator returns segment 0 of links into the given file
	Locator(path string) (string, error)

	// ReadLine returns the text of a 1-based line
	ReadLine(path string, line int) (string, error)
}
