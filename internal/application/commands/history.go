package commands

import (
	"context"
	"fmt"
	"strings"

	"f2yaml/internal/domain"
	"f2yaml/internal/ports"
)

// HistoryResult lists finished timing runs
type HistoryResult struct {
	Entries []domain.TimeEntry
	Message string
}

// HistoryCommand lists the most recent timing runs
type HistoryCommand struct {
	store ports.SessionStore
	Limit int
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(store ports.SessionStore, limit int) *HistoryCommand {
	return &HistoryCommand{store: store, Limit: limit}
}

// Execute runs the history command
func (c *HistoryCommand) Execute(ctx context.Context) (*HistoryResult, error) {
	entries, err := c.store.ListEntries(ctx, c.Limit)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &HistoryResult{Message: "No entries yet"}, nil
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %4dm  %-12s %s\n",
			e.StartedAt.Local().Format("2006-01-02 15:04"), e.Minutes, e.SRCode, e.Link)
	}
	return &HistoryResult{Entries: entries, Message: strings.TrimRight(b.String(), "\n")}, nil
}
