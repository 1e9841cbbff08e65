package ports

import (
	"context"

	"f2yaml/internal/domain"
)

// SessionStore persists the current session and the timing history
// between invocations.
type SessionStore interface {
	LoadSession(ctx context.Context) (*domain.Session, error)
	SaveSession(ctx context.Context, s *domain.Session) error

	// FinishEntry saves the session and records the entry atomically
	FinishEntry(ctx context.Context, s *domain.Session, e *domain.TimeEntry) error
	ListEntries(ctx context.Context, limit int) ([]domain.TimeEntry, error)

	Close() error
}
