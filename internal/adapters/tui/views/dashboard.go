package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"f2yaml/internal/adapters/tui/styles"
	"f2yaml/internal/domain"
)

// DashboardKeyMap defines key bindings for the dashboard
type DashboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Resume   key.Binding
	Start    key.Binding
	Pause    key.Binding
	Stop     key.Binding
	WorkLogs key.Binding
	Copy     key.Binding
	Open     key.Binding
	Standup  key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DashboardKeys are the default dashboard bindings
var DashboardKeys = DashboardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Resume: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "time entry"),
	),
	Start: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "pause"),
	),
	Stop: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "stop"),
	),
	WorkLogs: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "worklogs"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy link"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	Standup: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "standup"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// TickMsg redraws the running clock
type TickMsg time.Time

// Tick schedules the next clock redraw
func Tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// DashboardModel shows the timer and the Was entries of the selected
// standup report
type DashboardModel struct {
	ViewState
	snapshot  Snapshot
	window    *entryWindow
	now       func() time.Time
	Keys      DashboardKeyMap
}

// NewDashboardModel creates the dashboard
func NewDashboardModel() *DashboardModel {
	return &DashboardModel{
		snapshot:  Snapshot{Session: &domain.Session{}},
		window:    newEntryWindow(10),
		now:       time.Now,
		Keys:      DashboardKeys,
	}
}

// SetSnapshot replaces the displayed session and entries
func (m *DashboardModel) SetSnapshot(s Snapshot) {
	if s.Session == nil {
		s.Session = &domain.Session{}
	}
	m.snapshot = s
	m.window.resize(len(s.Entries))
	if s.Err != nil {
		m.SetMessage(s.Err.Error(), true)
	}
}

// Selected returns the entry under the cursor
func (m *DashboardModel) Selected() (Entry, bool) {
	i := m.window.cursor
	if i < 0 || i >= len(m.snapshot.Entries) {
		return Entry{}, false
	}
	return m.snapshot.Entries[i], true
}

// Init starts the clock
func (m *DashboardModel) Init() tea.Cmd {
	return Tick()
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Update handles messages for the dashboard
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m, Tick()

	case tea.KeyMsg:
		m.ClearMessage()
		selected, hasSelection := m.Selected()

		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Up):
			m.window.up()
		case key.Matches(msg, m.Keys.Down):
			m.window.down()
		case key.Matches(msg, m.Keys.Resume):
			if hasSelection {
				return m, send(StartTaskMsg{Link: selected.Link})
			}
		case key.Matches(msg, m.Keys.Start):
			return m, send(SwitchToStartMsg{})
		case key.Matches(msg, m.Keys.Pause):
			return m, send(PauseTaskMsg{})
		case key.Matches(msg, m.Keys.Stop):
			return m, send(StopTaskMsg{})
		case key.Matches(msg, m.Keys.WorkLogs):
			return m, send(SwitchToConfirmMsg{
				Prompt:  "Write every Was entry of " + m.snapshot.Session.SRCode + " into its task's WorkLog?",
				Confirm: GenerateWorkLogsMsg{},
			})
		case key.Matches(msg, m.Keys.Copy):
			if link := m.focusLink(selected, hasSelection); link != "" {
				return m, send(CopyLinkMsg{Link: link})
			}
		case key.Matches(msg, m.Keys.Open):
			if link := m.focusLink(selected, hasSelection); link != "" {
				return m, send(FollowLinkMsg{Link: link})
			}
		case key.Matches(msg, m.Keys.Standup):
			return m, send(SwitchToStandupMsg{})
		case key.Matches(msg, m.Keys.Reload):
			return m, send(DoneMsg{})
		case key.Matches(msg, m.Keys.Help):
			return m, send(SwitchToHelpMsg{})
		}
	}
	return m, nil
}

// focusLink is the selected entry, else the active task.
func (m *DashboardModel) focusLink(selected Entry, ok bool) string {
	if ok {
		return selected.Link
	}
	return m.snapshot.Session.ActiveLink
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	v := newScreen().title("f2yaml")
	sess := m.snapshot.Session

	v.raw(m.renderTimer(sess)).blank()

	if !sess.HasStandup() {
		v.line(muted("No standup report selected. Press r to pick one."))
	} else {
		v.subtitle(fmt.Sprintf("%s  %s", sess.SRCode, sess.SRDocPath))
		v.raw(m.renderEntries(sess))
	}

	v.blank().message(m.Message, m.MessageErr)
	v.help(m.Keys.Start, m.Keys.Pause, m.Keys.Stop, m.Keys.WorkLogs, m.Keys.Copy, m.Keys.Help, m.Keys.Quit)
	return v.String()
}

func (m *DashboardModel) renderTimer(sess *domain.Session) string {
	state := sess.Timer.State.String()
	elapsed := sess.Timer.Elapsed(m.now())

	var b strings.Builder
	b.WriteString(styles.StateBadge(state))
	b.WriteString("  ")
	b.WriteString(styles.Clock.Render(FormatClock(elapsed)))
	b.WriteString("\n")
	if sess.ActiveLink != "" {
		b.WriteString(styles.ActiveLink.Render(sess.ActiveLink))
	} else {
		b.WriteString(muted("no active task"))
	}
	return styles.TimerBox.Render(b.String())
}

func (m *DashboardModel) renderEntries(sess *domain.Session) string {
	if len(m.snapshot.Entries) == 0 {
		return muted("Nothing timed yet.") + "\n"
	}

	var b strings.Builder
	start, end := m.window.visible()
	for i := start; i < end; i++ {
		e := m.snapshot.Entries[i]
		line := styles.EntryDuration.Render(e.Duration) + e.Link
		if e.Started != "" {
			line += "  " + muted(e.Started)
		}
		if e.Link == sess.ActiveLink && sess.Timer.State != domain.TimerStopped {
			line += " " + muted("("+sess.Timer.State.String()+")")
		}
		if i == m.window.cursor {
			b.WriteString(styles.EntrySelected.Render(line))
		} else {
			b.WriteString(styles.Entry.Render(line))
		}
		b.WriteString("\n")
	}
	if m.window.pages() > 1 {
		b.WriteString(muted(fmt.Sprintf("page %d/%d", m.window.page(), m.window.pages())))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatClock renders a duration as H:MM:SS
func FormatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%d:%02d:%02d", h, m, d/time.Second)
}
