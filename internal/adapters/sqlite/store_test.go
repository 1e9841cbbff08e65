package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"f2yaml/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_EmptySession(t *testing.T) {
	s := openTestStore(t)

	sess, err := s.LoadSession(context.Background())
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if sess.HasStandup() || sess.Timer.State != domain.TimerStopped {
		t.Errorf("expected an empty session, got %+v", sess)
	}
}

func TestStore_SessionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 12, 0, 0, 123000000, time.UTC)

	want := &domain.Session{
		SRCode:     "2025-01-01",
		SRDocPath:  "/tmp/sr.yml",
		ActiveLink: "-->A//b.c<",
		EntryStart: "20250101 T 120000",
		Timer: domain.Timer{
			State:        domain.TimerPaused,
			SegmentStart: start,
			Accumulated:  90 * time.Second,
		},
	}
	if err := s.SaveSession(ctx, want); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	got, err := s.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if got.SRCode != want.SRCode || got.SRDocPath != want.SRDocPath ||
		got.ActiveLink != want.ActiveLink || got.EntryStart != want.EntryStart {
		t.Errorf("session = %+v, want %+v", got, want)
	}
	if got.Timer.State != domain.TimerPaused || got.Timer.Accumulated != 90*time.Second {
		t.Errorf("timer = %+v", got.Timer)
	}
	if !got.Timer.SegmentStart.Equal(start) {
		t.Errorf("segment start = %v, want %v", got.Timer.SegmentStart, start)
	}
}

func TestStore_FinishEntry(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, link := range []string{"-->A//b.c<", "-->A//b.d<"} {
		sess := &domain.Session{SRCode: "sr", SRDocPath: "sr.yml"}
		entry := &domain.TimeEntry{
			Link:      link,
			SRCode:    "sr",
			StartedAt: start,
			StoppedAt: start.Add(time.Duration(i+1) * time.Minute),
			Minutes:   i + 1,
		}
		if err := s.FinishEntry(ctx, sess, entry); err != nil {
			t.Fatalf("FinishEntry failed: %v", err)
		}
		if entry.ID == 0 {
			t.Error("expected the entry ID to be set")
		}
	}

	entries, err := s.ListEntries(ctx, 10)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Link != "-->A//b.d<" || entries[0].Minutes != 2 {
		t.Errorf("newest entry = %+v", entries[0])
	}
	if !entries[1].StartedAt.Equal(start) {
		t.Errorf("started at = %v", entries[1].StartedAt)
	}

	sess, _ := s.LoadSession(ctx)
	if sess.SRCode != "sr" {
		t.Errorf("session not saved with the entry: %+v", sess)
	}
}

func TestStore_ReopenKeepsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "state.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SaveSession(ctx, &domain.Session{SRCode: "sr", SRDocPath: "sr.yml"}); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	sess, err := s.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if sess.SRCode != "sr" {
		t.Errorf("SRCode = %q after reopen", sess.SRCode)
	}
}
