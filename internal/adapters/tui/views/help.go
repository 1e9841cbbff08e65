package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"f2yaml/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, HelpKeys.Close) {
		return m, send(SwitchToDashboardMsg{})
	}
	return m, nil
}

type helpRow struct {
	binding key.Binding
	desc    string
}

// View renders the help view from the dashboard bindings
func (m *HelpModel) View() string {
	k := DashboardKeys
	sections := []struct {
		title string
		rows  []helpRow
	}{
		{"Timer", []helpRow{
			{k.Start, "Start a task by link"},
			{k.Resume, "Start timing the selected entry"},
			{k.Pause, "Pause or resume"},
			{k.Stop, "Stop and add the minutes to the standup entry"},
		}},
		{"Standup report", []helpRow{
			{k.Standup, "Select the standup file and code"},
			{k.WorkLogs, "Write all Was entries into task WorkLogs"},
			{k.Copy, "Copy the entry link"},
			{k.Open, "Open the entry's task in $EDITOR"},
		}},
		{"General", []helpRow{
			{k.Reload, "Reload"},
			{k.Help, "Toggle help"},
			{k.Quit, "Quit"},
		}},
	}

	s := newScreen().title("f2yaml Help").subtitle("Time tracking on YAML tasks")
	for _, sec := range sections {
		s.line(styles.InputLabel.Render(sec.title))
		for _, r := range sec.rows {
			s.line("  " + styles.HelpKey.Render(fmt.Sprintf("%-12s", r.binding.Help().Key)) + styles.HelpDesc.Render(r.desc))
		}
		s.blank()
	}
	s.line(styles.InputLabel.Render("Links"))
	s.line(muted(`  -->Work/ProjectA//tasks.."Fix bug".notes<`))
	s.line(muted("  folders / file // then one segment per key")).blank()
	return s.help(HelpKeys.Close).String()
}
