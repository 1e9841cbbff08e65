package views

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"f2yaml/internal/domain"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd runs cmd and returns the message it produces.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func snapshot() Snapshot {
	return Snapshot{
		Session: &domain.Session{
			SRCode:     "2025-03-04",
			SRDocPath:  "/tmp/sr.yml",
			ActiveLink: "-->A//t.T-1<",
			Timer: domain.Timer{
				State:        domain.TimerRunning,
				SegmentStart: time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC),
			},
		},
		Entries: []Entry{
			{Link: "-->A//t.T-1<", Duration: "10m"},
			{Link: "-->A//t.T-2<", Duration: "5m"},
		},
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00"},
		{90 * time.Second, "0:01:30"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "2:03:04"},
		{1500 * time.Millisecond, "0:00:02"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.d); got != tt.want {
			t.Errorf("FormatClock(%v) = %s, want %s", tt.d, got, tt.want)
		}
	}
}

func TestDashboard_Keys(t *testing.T) {
	m := NewDashboardModel()
	m.SetSnapshot(snapshot())

	_, cmd := m.Update(keyMsg("enter"))
	if msg, ok := runCmd(t, cmd).(StartTaskMsg); !ok || msg.Link != "-->A//t.T-1<" {
		t.Errorf("enter = %#v", msg)
	}

	m.Update(keyMsg("down"))
	_, cmd = m.Update(keyMsg("c"))
	if msg, ok := runCmd(t, cmd).(CopyLinkMsg); !ok || msg.Link != "-->A//t.T-2<" {
		t.Errorf("copy = %#v", msg)
	}

	_, cmd = m.Update(keyMsg("w"))
	msg, ok := runCmd(t, cmd).(SwitchToConfirmMsg)
	if !ok {
		t.Fatalf("w = %#v", msg)
	}
	if _, ok := msg.Confirm.(GenerateWorkLogsMsg); !ok || !strings.Contains(msg.Prompt, "2025-03-04") {
		t.Errorf("confirm = %#v", msg)
	}

	tests := []struct {
		key  string
		want tea.Msg
	}{
		{"p", PauseTaskMsg{}},
		{"x", StopTaskMsg{}},
		{"s", SwitchToStartMsg{}},
		{"r", SwitchToStandupMsg{}},
		{"?", SwitchToHelpMsg{}},
	}
	for _, tt := range tests {
		_, cmd := m.Update(keyMsg(tt.key))
		if got := runCmd(t, cmd); got != tt.want {
			t.Errorf("key %s = %#v, want %#v", tt.key, got, tt.want)
		}
	}
}

func TestDashboard_View(t *testing.T) {
	m := NewDashboardModel()
	m.now = func() time.Time { return time.Date(2025, 3, 4, 9, 2, 5, 0, time.UTC) }
	m.SetSnapshot(snapshot())

	view := m.View()
	for _, want := range []string{"0:02:05", "running", "-->A//t.T-2<", "2025-03-04"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	empty := NewDashboardModel()
	if view := empty.View(); !strings.Contains(view, "No standup report selected") {
		t.Errorf("empty view = %q", view)
	}
}

func TestStandupForm(t *testing.T) {
	f := NewStandupForm()

	_, cmd := f.Update(keyMsg("enter"))
	if cmd != nil || !f.MessageErr {
		t.Fatal("expected a validation message without a file")
	}

	f.Prefill("sr.yml")
	_, cmd = f.Update(keyMsg("enter"))
	msg, ok := runCmd(t, cmd).(SelectStandupMsg)
	if !ok || msg.File != "sr.yml" || msg.Code != time.Now().Format("2006-01-02") {
		t.Errorf("submit = %#v", msg)
	}

	_, cmd = f.Update(keyMsg("esc"))
	if _, ok := runCmd(t, cmd).(SwitchToDashboardMsg); !ok {
		t.Error("esc should return to the dashboard")
	}
}

func TestEntryWindow(t *testing.T) {
	w := newEntryWindow(3)
	w.resize(7)
	for range 4 {
		w.down()
	}
	if start, end := w.visible(); w.cursor != 4 || start != 3 || end != 6 {
		t.Errorf("cursor %d, range %d-%d", w.cursor, start, end)
	}
	if w.page() != 2 || w.pages() != 3 {
		t.Errorf("page %d/%d, want 2/3", w.page(), w.pages())
	}

	w.resize(2)
	if start, end := w.visible(); w.cursor != 1 || start != 0 || end != 2 {
		t.Errorf("after shrink: cursor %d, range %d-%d", w.cursor, start, end)
	}

	w.resize(0)
	if w.cursor != 0 || w.pages() != 1 {
		t.Errorf("empty window: cursor %d, pages %d", w.cursor, w.pages())
	}
}
