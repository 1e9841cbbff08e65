package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout formats the start time of a standup entry, e.g. "20250101 T 120000".
const TimestampLayout = "20060102 T 150405"

// WorkLogKey is the field holding a task's work log sequence.
const WorkLogKey = "WorkLog"

// FormatTimestamp renders t with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses a TimestampLayout string in the local zone.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, strings.TrimSpace(s), time.Local)
}

// FormatMinutes renders a duration counter such as "25m".
func FormatMinutes(m int) string {
	return fmt.Sprintf("%dm", m)
}

// ParseMinutes reads a "Nm" duration counter. An empty counter is zero.
func ParseMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "m"))
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return n, nil
}

// RoundMinutes rounds a duration to whole minutes.
func RoundMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(d.Minutes()))
}

// WorkLogEntry is one row of a task's WorkLog: [name, duration, status, timestamp].
type WorkLogEntry struct {
	Name      string
	Duration  string
	Status    string
	Timestamp string
}

// SameAs reports whether two entries describe the same session.
func (e WorkLogEntry) SameAs(other WorkLogEntry) bool {
	return e.Name == other.Name && e.Timestamp == other.Timestamp
}
