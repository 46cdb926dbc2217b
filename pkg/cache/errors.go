package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound means the upstream has no such item, e.g. an unknown
	// license key or an unregistered PyPI name.
	ErrNotFound = errors.New("not found")

	// ErrNetwork covers transport failures and unexpected status codes.
	ErrNetwork = errors.New("network error")
)

// RetryableError marks a failure worth another attempt (5xx, dropped
// connection).
type RetryableError struct{ Err error }

// Retryable marks err as retryable. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff retries retryable failures, doubling the wait after each one.
type Backoff struct {
	Attempts int
	Initial  time.Duration
}

// DefaultBackoff is used by the API clients: three tries, 1s then 2s apart.
var DefaultBackoff = Backoff{Attempts: 3, Initial: time.Second}

// Do calls fn until it succeeds, fails with a non-retryable error, or the
// attempts run out. The last error is returned; ctx.Err() is returned if
// ctx ends while waiting.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	wait := b.Initial
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= b.Attempts {
			return err
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
}
