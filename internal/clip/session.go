package clip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultOpenAttempts = 5
	defaultOpenBackoff  = 50 * time.Millisecond
)

// RetryPolicy bounds how long Acquire waits for a busy store.
type RetryPolicy struct {
	// Attempts is the total number of Open calls; values below 1 mean 1.
	Attempts int
	// Backoff is the fixed wait between attempts.
	Backoff time.Duration
}

// DefaultRetryPolicy returns 5 attempts, 50ms apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: defaultOpenAttempts, Backoff: defaultOpenBackoff}
}

// Session is one held acquisition of a Store.
type Session struct {
	store Store
	once  sync.Once
	err   error
}

// Acquire opens s, retrying ErrBusy according to p. Any other Open error, an
// exhausted policy or a cancelled ctx yields an error wrapping
// ErrStoreUnavailable and the cause.
func Acquire(ctx context.Context, s Store, p RetryPolicy) (*Session, error) {
	attempts := max(p.Attempts, 1)
	for attempt := 1; ; attempt++ {
		err := s.Open(ctx)
		if err == nil {
			return &Session{store: s}, nil
		}
		if !errors.Is(err, ErrBusy) || attempt >= attempts {
			return nil, fmt.Errorf("%w: %s after %d attempt(s): %w", ErrStoreUnavailable, s.Name(), attempt, err)
		}
		slog.Debug("clipboard busy, retrying", "store", s.Name(), "attempt", attempt, "retry_in", p.Backoff)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, s.Name(), ctx.Err())
		case <-time.After(p.Backoff):
		}
	}
}

// Store returns the held store.
func (s *Session) Store() Store { return s.store }

// Release closes the store. Only the first call has an effect.
func (s *Session) Release() error {
	s.once.Do(func() { s.err = s.store.Close() })
	return s.err
}

// With acquires s, runs fn and releases s on every path. An error from fn
// takes precedence over one from Release.
func With(ctx context.Context, s Store, p RetryPolicy, fn func(Store) error) (err error) {
	sess, err := Acquire(ctx, s, p)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := sess.Release(); rerr != nil && err == nil {
			err = fmt.Errorf("clip: release: %w", rerr)
		}
	}()
	return fn(sess.Store())
}
