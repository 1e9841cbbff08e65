package commands

import (
	"context"
	"fmt"
	"time"

	"f2yaml/internal/application"
	"f2yaml/internal/domain"
	"f2yaml/internal/ports"
)

// Clock returns the current time
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// StopTaskResult contains the result of stopping the timer
type StopTaskResult struct {
	Link     string
	Minutes  int
	Duration string
	Message  string
}

// StopTaskCommand stops the timer and adds the elapsed minutes to the
// active standup entry
type StopTaskCommand struct {
	engine *application.Engine
	store  ports.SessionStore
	Clock  Clock
}

// NewStopTaskCommand creates a new StopTaskCommand
func NewStopTaskCommand(engine *application.Engine, store ports.SessionStore) *StopTaskCommand {
	return &StopTaskCommand{engine: engine, store: store}
}

// Execute runs the stop command
func (c *StopTaskCommand) Execute(ctx context.Context) (*StopTaskResult, error) {
	sess, err := c.store.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess.Timer.State == domain.TimerStopped {
		return nil, application.ErrNoActiveTask
	}
	return stopActive(ctx, c.engine, c.store, sess, c.Clock.now())
}

// stopActive closes the running entry: the rounded minutes go into the SR
// file first, then the session and history are saved together.
func stopActive(ctx context.Context, engine *application.Engine, store ports.SessionStore, sess *domain.Session, now time.Time) (*StopTaskResult, error) {
	if !sess.HasStandup() {
		return nil, application.ErrNoStandupReport
	}

	elapsed, err := sess.Timer.Stop(now)
	if err != nil {
		return nil, err
	}
	minutes := domain.RoundMinutes(elapsed)

	ws := engine.Workspace()
	srDoc, err := ws.Load(sess.SRDocPath)
	if err != nil {
		return nil, err
	}

	if _, err := application.StandupBucket(srDoc, sess.SRCode); err != nil {
		return nil, err
	}
	entry := application.CreateEntry(sess.ActiveLink, sess.EntryStart)
	idx := application.CheckAlreadyInSr(srDoc, entry, sess.SRCode)
	if idx < 0 {
		idx = application.MoveToWas(srDoc, entry, sess.SRCode)
	}
	duration, err := application.UpdateDuration(srDoc, idx, minutes, sess.SRCode)
	if err != nil {
		return nil, err
	}
	if err := ws.Save(srDoc); err != nil {
		return nil, fmt.Errorf("failed to save standup report: %w", err)
	}

	startedAt, err := domain.ParseTimestamp(sess.EntryStart)
	if err != nil {
		startedAt = now.Add(-elapsed)
	}
	link := sess.ActiveLink
	record := &domain.TimeEntry{
		Link:      link,
		SRCode:    sess.SRCode,
		StartedAt: startedAt,
		StoppedAt: now,
		Minutes:   minutes,
	}

	sess.ActiveLink, sess.EntryStart = "", ""
	if err := store.FinishEntry(ctx, sess, record); err != nil {
		return nil, err
	}

	return &StopTaskResult{
		Link:     link,
		Minutes:  minutes,
		Duration: duration,
		Message:  fmt.Sprintf("Stopped %s after %dm (total %s)", link, minutes, duration),
	}, nil
}

// StartTaskResult contains the result of starting a task
type StartTaskResult struct {
	Link        string
	EntryStart  string
	AlreadyInSr bool
	Stopped     *StopTaskResult
	Message     string
}

// StartTaskCommand starts timing a task and records it in the standup report
type StartTaskCommand struct {
	engine *application.Engine
	store  ports.SessionStore
	Link   string
	Clock  Clock
}

// NewStartTaskCommand creates a new StartTaskCommand
func NewStartTaskCommand(engine *application.Engine, store ports.SessionStore, link string) *StartTaskCommand {
	return &StartTaskCommand{engine: engine, store: store, Link: link}
}

// Validate checks the link syntax
func (c *StartTaskCommand) Validate() error {
	return application.ValidateLink("taskLink", c.Link, c.engine.Options())
}

// Execute runs the start command
func (c *StartTaskCommand) Execute(ctx context.Context) (*StartTaskResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sess, err := c.store.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	if !sess.HasStandup() {
		return nil, application.ErrNoStandupReport
	}

	link, err := c.engine.ParseLink(c.Link)
	if err != nil {
		return nil, err
	}
	isTask, err := c.engine.IsTask(ctx, link)
	if err != nil {
		return nil, err
	}
	if !isTask {
		return nil, &application.NotATaskError{Link: link.Raw}
	}

	now := c.Clock.now()
	result := &StartTaskResult{Link: link.Raw}

	if sess.Timer.State != domain.TimerStopped {
		stopped, err := stopActive(ctx, c.engine, c.store, sess, now)
		if err != nil {
			return nil, fmt.Errorf("failed to stop %s: %w", sess.ActiveLink, err)
		}
		result.Stopped = stopped
	}

	ws := c.engine.Workspace()
	srDoc, err := ws.Load(sess.SRDocPath)
	if err != nil {
		return nil, err
	}

	if _, err := application.StandupBucket(srDoc, sess.SRCode); err != nil {
		return nil, err
	}

	result.EntryStart = domain.FormatTimestamp(now)
	entry := application.CreateEntry(link.Raw, result.EntryStart)
	// An entry already in Was keeps accumulating minutes.
	if application.CheckAlreadyInSr(srDoc, entry, sess.SRCode) >= 0 {
		result.AlreadyInSr = true
	} else {
		application.MoveToWas(srDoc, entry, sess.SRCode)
		if err := ws.Save(srDoc); err != nil {
			return nil, fmt.Errorf("failed to save standup report: %w", err)
		}
	}

	if err := sess.Timer.Start(now); err != nil {
		return nil, err
	}
	sess.ActiveLink = link.Raw
	sess.EntryStart = result.EntryStart
	if err := c.store.SaveSession(ctx, sess); err != nil {
		return nil, err
	}

	result.Message = fmt.Sprintf("Started %s", link.Raw)
	return result, nil
}

// PauseTaskResult contains the timer state after a pause toggle
type PauseTaskResult struct {
	State   domain.TimerState
	Elapsed time.Duration
	Message string
}

// PauseTaskCommand pauses a running timer or resumes a paused one
type PauseTaskCommand struct {
	store ports.SessionStore
	Clock Clock
}

// NewPauseTaskCommand creates a new PauseTaskCommand
func NewPauseTaskCommand(store ports.SessionStore) *PauseTaskCommand {
	return &PauseTaskCommand{store: store}
}

// Execute runs the pause command
func (c *PauseTaskCommand) Execute(ctx context.Context) (*PauseTaskResult, error) {
	sess, err := c.store.LoadSession(ctx)
	if err != nil {
		return nil, err
	}

	now := c.Clock.now()
	state, err := sess.Timer.Toggle(now)
	if err != nil {
		return nil, err
	}
	if err := c.store.SaveSession(ctx, sess); err != nil {
		return nil, err
	}

	verb := "Resumed"
	if state == domain.TimerPaused {
		verb = "Paused"
	}
	elapsed := sess.Timer.Elapsed(now)
	return &PauseTaskResult{
		State:   state,
		Elapsed: elapsed,
		Message: fmt.Sprintf("%s %s at %s", verb, sess.ActiveLink, elapsed.Round(time.Second)),
	}, nil
}

// StatusResult describes the current session
type StatusResult struct {
	Session *domain.Session
	Elapsed time.Duration
	Message string
}

// StatusCommand reports the current session
type StatusCommand struct {
	store ports.SessionStore
	Clock Clock
}

// NewStatusCommand creates a new StatusCommand
func NewStatusCommand(store ports.SessionStore) *StatusCommand {
	return &StatusCommand{store: store}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context) (*StatusResult, error) {
	sess, err := c.store.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	elapsed := sess.Timer.Elapsed(c.Clock.now())

	msg := "No active task"
	if sess.Timer.State != domain.TimerStopped {
		msg = fmt.Sprintf("%s %s (%s)", sess.Timer.State, sess.ActiveLink, elapsed.Round(time.Second))
	}
	if sess.HasStandup() {
		msg += fmt.Sprintf("\nStandup report %s in %s", sess.SRCode, sess.SRDocPath)
	} else {
		msg += "\nNo standup report selected"
	}

	return &StatusResult{Session: sess, Elapsed: elapsed, Message: msg}, nil
}
