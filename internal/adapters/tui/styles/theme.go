package styles

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Accent  = lipgloss.Color("#7C3AED")
	Running = lipgloss.Color("#10B981")
	Paused  = lipgloss.Color("#F59E0B")
	Idle    = lipgloss.Color("#6B7280")
	Failure = lipgloss.Color("#EF4444")
	Link    = lipgloss.Color("#60A5FA")
	Text    = lipgloss.Color("#FFFFFF")
)

var (
	App      = lipgloss.NewStyle().Padding(1, 2)
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Accent).MarginBottom(1)
	Subtitle = lipgloss.NewStyle().Foreground(Idle).Italic(true)

	// Timer panel
	TimerBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(0, 2).
			MarginBottom(1)
	Clock      = lipgloss.NewStyle().Bold(true).Foreground(Text)
	ActiveLink = lipgloss.NewStyle().Foreground(Link)

	// Was entries; the duration column is right-aligned like "  125m"
	Entry         = lipgloss.NewStyle()
	EntrySelected = lipgloss.NewStyle().Background(Accent).Foreground(Text).Bold(true)
	EntryDuration = lipgloss.NewStyle().
			Foreground(Running).
			Width(7).
			Align(lipgloss.Right).
			MarginRight(1)

	// Forms
	InputLabel   = lipgloss.NewStyle().Foreground(Running).Bold(true)
	InputField   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Accent).Padding(0, 1)
	InputFocused = InputField.BorderForeground(Running)

	HelpKey       = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	HelpDesc      = lipgloss.NewStyle().Foreground(Idle)
	HelpSeparator = lipgloss.NewStyle().Foreground(Idle).SetString(" • ")

	Success   = lipgloss.NewStyle().Foreground(Running).Bold(true)
	ErrorMsg  = lipgloss.NewStyle().Foreground(Failure).Bold(true)
	MutedText = lipgloss.NewStyle().Foreground(Idle)
)

// StateColor returns the color for a timer state name
func StateColor(state string) lipgloss.Color {
	switch state {
	case "running":
		return Running
	case "paused":
		return Paused
	default:
		return Idle
	}
}

// StateBadge renders a timer state as a colored badge
func StateBadge(state string) string {
	return lipgloss.NewStyle().
		Background(StateColor(state)).
		Foreground(Text).
		Bold(true).
		Padding(0, 1).
		Render(state)
}
