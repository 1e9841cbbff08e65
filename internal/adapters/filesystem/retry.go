package filesystem

import (
	"context"
	"errors"
	"time"
)

var errNotReady = errors.New("file has no content yet")

// waitFor polls ready until it reports true, at most attempts times,
// doubling the delay after each miss. Errors from ready end the wait.
func waitFor(ctx context.Context, attempts int, delay time.Duration, ready func() (bool, error)) error {
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		ok, err := ready()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if i == attempts-1 {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return errNotReady
}
