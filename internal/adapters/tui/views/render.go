package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"f2yaml/internal/adapters/tui/styles"
)

// helpLine renders key bindings separated by bullets
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

func muted(text string) string {
	return styles.MutedText.Render(text)
}

// screen assembles a view top to bottom
type screen struct {
	b strings.Builder
}

func newScreen() *screen { return &screen{} }

func (s *screen) title(t string) *screen {
	s.b.WriteString(styles.Title.Render(t) + "\n\n")
	return s
}

func (s *screen) subtitle(t string) *screen {
	s.b.WriteString(styles.Subtitle.Render(t) + "\n\n")
	return s
}

func (s *screen) line(text string) *screen {
	s.b.WriteString(text + "\n")
	return s
}

func (s *screen) blank() *screen {
	s.b.WriteString("\n")
	return s
}

func (s *screen) raw(text string) *screen {
	s.b.WriteString(text)
	return s
}

// message adds the status line, if any
func (s *screen) message(msg string, isErr bool) *screen {
	if msg == "" {
		return s
	}
	style := styles.Success
	if isErr {
		style = styles.ErrorMsg
	}
	s.b.WriteString(style.Render(msg) + "\n\n")
	return s
}

func (s *screen) help(bindings ...key.Binding) *screen {
	s.b.WriteString(helpLine(bindings...))
	return s
}

func (s *screen) String() string {
	return styles.App.Render(s.b.String())
}
