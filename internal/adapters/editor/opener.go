package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
)

// Opener implements ports.EditorOpener
type Opener struct {
	lookup func(string) string
}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookup: os.Getenv}
}

// OpenAt opens a file at a line in the user's preferred editor
func (o *Opener) OpenAt(path string, line int) error {
	cmd, err := o.Command(path, line)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file at a line in the editor
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string, line int) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	fields := strings.Fields(editor)
	args := append(fields[1:], lineArgs(fields[0], path, line)...)

	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// lineArgs returns the arguments that open path at line for the given
// editor binary.
func lineArgs(editor, path string, line int) []string {
	if line < 1 {
		return []string{path}
	}
	switch filepath.Base(editor) {
	case "code", "code-insiders", "codium":
		return []string{"-g", path + ":" + strconv.Itoa(line)}
	case "subl", "zed", "hx":
		return []string{path + ":" + strconv.Itoa(line)}
	}
	// vi, vim, nvim, nano, emacs, micro and kak all take +N
	return []string{"+" + strconv.Itoa(line), path}
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	// Check $EDITOR first
	if editor := o.lookup("EDITOR"); editor != "" {
		return editor
	}

	// Check $VISUAL
	if visual := o.lookup("VISUAL"); visual != "" {
		return visual
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano", "code"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}

// Clipboard implements ports.Clipboard on the system clipboard
type Clipboard struct{}

// WriteAll copies text to the system clipboard
func (Clipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not available on this system")
	}
	return clipboard.WriteAll(text)
}
