package domain

import (
	"errors"
	"time"
)

var (
	ErrTimerStopped = errors.New("there is no active task")
	ErrTimerPaused  = errors.New("timer is paused")
	ErrTimerRunning = errors.New("timer is already running")
)

// TimerState is the state of the task timer
type TimerState int

const (
	TimerStopped TimerState = iota
	TimerRunning
	TimerPaused
)

func (s TimerState) String() string {
	switch s {
	case TimerRunning:
		return "running"
	case TimerPaused:
		return "paused"
	default:
		return "stopped"
	}
}

// Timer accumulates time across pause/resume cycles. It only does
// arithmetic over the instants it is given.
type Timer struct {
	State        TimerState
	SegmentStart time.Time
	Accumulated  time.Duration
}

// Start begins a new run.
func (t *Timer) Start(now time.Time) error {
	switch t.State {
	case TimerRunning:
		return ErrTimerRunning
	case TimerPaused:
		return ErrTimerPaused
	}
	t.State = TimerRunning
	t.SegmentStart = now
	t.Accumulated = 0
	return nil
}

// Toggle pauses a running timer or resumes a paused one.
func (t *Timer) Toggle(now time.Time) (TimerState, error) {
	switch t.State {
	case TimerRunning:
		t.Accumulated += nonNegative(now.Sub(t.SegmentStart))
		t.State = TimerPaused
	case TimerPaused:
		t.SegmentStart = now
		t.State = TimerRunning
	default:
		return t.State, ErrTimerStopped
	}
	return t.State, nil
}

// Stop ends the run and returns the total elapsed time.
func (t *Timer) Stop(now time.Time) (time.Duration, error) {
	if t.State == TimerStopped {
		return 0, ErrTimerStopped
	}
	total := t.Elapsed(now)
	*t = Timer{}
	return total, nil
}

// Elapsed returns the time accumulated so far.
func (t Timer) Elapsed(now time.Time) time.Duration {
	if t.State == TimerRunning {
		return t.Accumulated + nonNegative(now.Sub(t.SegmentStart))
	}
	return t.Accumulated
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// Session is the bookkeeping shared between invocations: the selected
// standup report and the task being timed.
type Session struct {
	SRCode     string
	SRDocPath  string
	ActiveLink string
	EntryStart string
	Timer      Timer
}

// HasStandup reports whether a standup report has been selected.
func (s *Session) HasStandup() bool {
	return s.SRCode != "" && s.SRDocPath != ""
}

// TimeEntry is a finished timing run.
type TimeEntry struct {
	ID        int64
	Link      string
	SRCode    string
	StartedAt time.Time
	StoppedAt time.Time
	Minutes   int
}
