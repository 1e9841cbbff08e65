package ports

import "os/exec"

// EditorOpener defines the interface for opening files in an external editor
type EditorOpener interface {
	// OpenAt opens the file at a 1-based line in the user's preferred editor
	OpenAt(path string, line int) error

	// Command returns an exec.Cmd for opening a file at a line
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string, line int) (*exec.Cmd, error)
}

// Clipboard receives generated links
type Clipboard interface {
	WriteAll(text string) error
}
