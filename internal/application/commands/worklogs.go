package commands

import (
	"context"
	"fmt"
	"strings"

	"f2yaml/internal/application"
	"f2yaml/internal/domain"
	"f2yaml/internal/ports"
)

// GenerateWorkLogsResult contains the result of copying standup entries
// into their tasks
type GenerateWorkLogsResult struct {
	Stopped *StopTaskResult
	Entries []application.WorkLogResult
	Message string
}

// GenerateWorkLogsCommand stops the running task, then writes every entry
// of the current standup report into its task's WorkLog
type GenerateWorkLogsCommand struct {
	engine *application.Engine
	store  ports.SessionStore
	Clock  Clock
}

// NewGenerateWorkLogsCommand creates a new GenerateWorkLogsCommand
func NewGenerateWorkLogsCommand(engine *application.Engine, store ports.SessionStore) *GenerateWorkLogsCommand {
	return &GenerateWorkLogsCommand{engine: engine, store: store}
}

// Execute runs the generate command
func (c *GenerateWorkLogsCommand) Execute(ctx context.Context) (*GenerateWorkLogsResult, error) {
	sess, err := c.store.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	if !sess.HasStandup() {
		return nil, application.ErrNoStandupReport
	}

	result := &GenerateWorkLogsResult{}
	if sess.Timer.State != domain.TimerStopped {
		if result.Stopped, err = stopActive(ctx, c.engine, c.store, sess, c.Clock.now()); err != nil {
			return nil, err
		}
	}

	srDoc, err := c.engine.Workspace().Load(sess.SRDocPath)
	if err != nil {
		return nil, err
	}

	entries, err := c.engine.GenerateWorkLogs(ctx, srDoc, sess.SRCode)
	result.Entries = entries
	if err != nil {
		return result, err
	}

	added := 0
	var lines []string
	for _, e := range entries {
		mark := "="
		if e.Added {
			mark = "+"
			added++
		}
		lines = append(lines, fmt.Sprintf("  %s %s", mark, e.Link))
	}
	result.Message = fmt.Sprintf("Logged %d of %d entries from %s", added, len(entries), sess.SRCode)
	if len(lines) > 0 {
		result.Message += "\n" + strings.Join(lines, "\n")
	}
	return result, nil
}
