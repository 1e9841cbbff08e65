package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"f2yaml/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// View switching messages
type (
	SwitchToDashboardMsg struct{}
	SwitchToHelpMsg      struct{}
	SwitchToStartMsg     struct{ Link string }
	SwitchToStandupMsg   struct{}
	SwitchToConfirmMsg   struct {
		Prompt  string
		Confirm tea.Msg
	}
)

// Requests handled by the app, which owns the session store and workspace
type (
	StartTaskMsg        struct{ Link string }
	SelectStandupMsg    struct{ File, Code string }
	PauseTaskMsg        struct{}
	StopTaskMsg         struct{}
	GenerateWorkLogsMsg struct{}
	CopyLinkMsg         struct{ Link string }
	FollowLinkMsg       struct{ Link string }
)

// DoneMsg reports the outcome of a request. The dashboard reloads after it.
type DoneMsg struct {
	Message string
	Err     error
}

// Snapshot is what the dashboard displays
type Snapshot struct {
	Session *domain.Session
	Entries []Entry
	Err     error
}

// Entry is one timed standup entry
type Entry struct {
	Link     string
	Duration string
	Started  string
}
