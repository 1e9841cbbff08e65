package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"f2yaml/internal/adapters/tui/views"
	"f2yaml/internal/application"
	"f2yaml/internal/application/commands"
	"f2yaml/internal/ports"
	"f2yaml/internal/yamldoc"
)

// ViewState represents the current view
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewStart
	ViewStandup
	ViewConfirm
	ViewHelp
)

// App is the main TUI application model
type App struct {
	ctx       context.Context
	engine    *application.Engine
	store     ports.SessionStore
	editor    ports.EditorOpener
	clipboard ports.Clipboard

	state     ViewState
	dashboard *views.DashboardModel
	start     *views.FormModel
	standup   *views.FormModel
	confirm   *views.ConfirmationModel
	help      *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. The editor and clipboard may be nil.
func NewApp(ctx context.Context, engine *application.Engine, store ports.SessionStore, ed ports.EditorOpener, cb ports.Clipboard) *App {
	return &App{
		ctx:       ctx,
		engine:    engine,
		store:     store,
		editor:    ed,
		clipboard: cb,
		state:     ViewDashboard,
		dashboard: views.NewDashboardModel(),
		start:     views.NewStartForm(),
		standup:   views.NewStandupForm(),
		confirm:   views.NewConfirmationModel(),
		help:      views.NewHelpModel(),
	}
}

type snapshotMsg views.Snapshot

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.dashboard.Init(), a.reload())
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.SetSize(msg.Width, msg.Height)
		a.start.SetSize(msg.Width, msg.Height)
		a.standup.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToDashboardMsg:
		a.state = ViewDashboard
		return a, nil

	case views.SwitchToStartMsg:
		a.state = ViewStart
		a.start.Prefill(msg.Link)
		return a, a.start.Init()

	case views.SwitchToStandupMsg:
		a.state = ViewStandup
		a.standup.Prefill("")
		return a, a.standup.Init()

	case views.SwitchToConfirmMsg:
		a.state = ViewConfirm
		a.confirm.Ask(msg.Prompt, msg.Confirm)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	// Requests
	case views.StartTaskMsg:
		return a, a.run(func(ctx context.Context) (string, error) {
			result, err := commands.NewStartTaskCommand(a.engine, a.store, msg.Link).Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})

	case views.SelectStandupMsg:
		return a, a.run(func(ctx context.Context) (string, error) {
			result, err := commands.NewSelectStandupCommand(a.engine, a.store, msg.File, msg.Code).Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})

	case views.PauseTaskMsg:
		return a, a.run(func(ctx context.Context) (string, error) {
			result, err := commands.NewPauseTaskCommand(a.store).Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})

	case views.StopTaskMsg:
		return a, a.run(func(ctx context.Context) (string, error) {
			result, err := commands.NewStopTaskCommand(a.engine, a.store).Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})

	case views.GenerateWorkLogsMsg:
		return a, a.run(func(ctx context.Context) (string, error) {
			result, err := commands.NewGenerateWorkLogsCommand(a.engine, a.store).Execute(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Logged %d entries", len(result.Entries)), nil
		})

	case views.CopyLinkMsg:
		return a, a.run(func(context.Context) (string, error) {
			if a.clipboard == nil {
				return "", errors.New("clipboard is not available")
			}
			if err := a.clipboard.WriteAll(msg.Link); err != nil {
				return "", err
			}
			return "Copied " + msg.Link, nil
		})

	case views.FollowLinkMsg:
		return a, a.openLink(msg.Link)

	case views.DoneMsg:
		a.state = ViewDashboard
		if msg.Err != nil {
			a.dashboard.SetMessage(msg.Err.Error(), true)
		} else if msg.Message != "" {
			a.dashboard.SetMessage(msg.Message, false)
		}
		return a, a.reload()

	case views.TickMsg:
		_, cmd := a.dashboard.Update(msg)
		return a, cmd

	case snapshotMsg:
		a.dashboard.SetSnapshot(views.Snapshot(msg))
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewDashboard:
		_, cmd = a.dashboard.Update(msg)
	case ViewStart:
		_, cmd = a.start.Update(msg)
	case ViewStandup:
		_, cmd = a.standup.Update(msg)
	case ViewConfirm:
		_, cmd = a.confirm.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// run executes a command off the update loop and reports back with DoneMsg.
func (a *App) run(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		message, err := fn(a.ctx)
		return views.DoneMsg{Message: message, Err: err}
	}
}

// reload reads the session and the Was entries of its standup report.
func (a *App) reload() tea.Cmd {
	return func() tea.Msg {
		sess, err := a.store.LoadSession(a.ctx)
		if err != nil {
			return snapshotMsg{Err: err}
		}
		snap := views.Snapshot{Session: sess}
		if !sess.HasStandup() {
			return snapshotMsg(snap)
		}

		doc, err := a.engine.Workspace().Load(sess.SRDocPath)
		if err != nil {
			snap.Err = err
			return snapshotMsg(snap)
		}
		for _, e := range application.WasEntries(doc, sess.SRCode) {
			values := yamldoc.Scalars(e.Tuple)
			entry := views.Entry{Link: e.Link}
			if len(values) > 0 {
				entry.Duration = values[0]
			}
			if len(values) > 2 {
				entry.Started = values[2]
			}
			snap.Entries = append(snap.Entries, entry)
		}
		return snapshotMsg(snap)
	}
}

func (a *App) openLink(link string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	result, err := commands.NewFollowCommand(a.engine, link).Execute(a.ctx)
	if err != nil {
		return func() tea.Msg { return views.DoneMsg{Err: err} }
	}

	cmd, err := a.editor.Command(result.Path, result.Line)
	if err != nil {
		return func() tea.Msg { return views.DoneMsg{Err: err} }
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return views.DoneMsg{Err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewStart:
		return a.start.View()
	case ViewStandup:
		return a.standup.View()
	case ViewConfirm:
		return a.confirm.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.dashboard.View()
	}
}
