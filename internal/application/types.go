package application

import (
	"f2yaml/internal/domain"
	"f2yaml/internal/yamldoc"
)

// Re-export domain types for use by adapters
type (
	Link       = domain.Link
	Session    = domain.Session
	TimeEntry  = domain.TimeEntry
	Timer      = domain.Timer
	TimerState = domain.TimerState
)

const (
	TimerStopped = domain.TimerStopped
	TimerRunning = domain.TimerRunning
	TimerPaused  = domain.TimerPaused
)

// Options are the settings the engine works with
type Options struct {
	IgnoreWords   []string
	PathSeparator string
	UserName      string
	CSVFields     []string
}

func (o Options) linkOptions() domain.LinkOptions {
	return domain.LinkOptions{Separator: o.PathSeparator}
}

// TaskRef is a resolved link together with the document that holds it
type TaskRef struct {
	Link  *domain.Link
	Doc   *yamldoc.Document
	Match *Match
}
