// Package retry runs an operation under an explicit policy: a bounded number
// of attempts, exponential backoff between them and a classifier deciding
// which errors are worth another attempt.
package retry

import (
	"context"
	"errors"
	"time"
)

// Policy bounds how an operation is retried.
type Policy struct {
	MaxAttempts    int           // total attempts including the first; < 1 means 1
	InitialBackoff time.Duration // wait before the second attempt
	MaxBackoff     time.Duration // cap on any single wait; 0 means uncapped
	Multiplier     float64       // backoff growth per attempt; < 1 means 1

	// Retryable reports whether err should be retried. Nil retries every
	// error except context cancellation and Permanent errors.
	Retryable func(err error) bool
}

// DefaultPolicy makes three attempts 200ms, 400ms apart.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    3,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		Multiplier:     2,
	}
}

type permanent struct{ err error }

func (p permanent) Error() string { return p.err.Error() }
func (p permanent) Unwrap() error { return p.err }

// Permanent marks err as not retryable regardless of the policy.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanent{err: err}
}

// Do calls op until it succeeds, returns a non-retryable error, the attempts
// run out or ctx is done. The last error is returned.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := max(p.MaxAttempts, 1)
	wait := p.InitialBackoff

	var err error
	for attempt := 1; ; attempt++ {
		if err = op(ctx); err == nil {
			return nil
		}
		if attempt >= attempts || !p.retryable(err) {
			return err
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return errors.Join(err, ctx.Err())
		case <-t.C:
		}
		wait = p.next(wait)
	}
}

func (p Policy) retryable(err error) bool {
	var perm permanent
	if errors.As(err, &perm) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if p.Retryable == nil {
		return true
	}
	return p.Retryable(err)
}

func (p Policy) next(wait time.Duration) time.Duration {
	m := p.Multiplier
	if m < 1 {
		m = 1
	}
	wait = time.Duration(float64(wait) * m)
	if p.MaxBackoff > 0 && wait > p.MaxBackoff {
		wait = p.MaxBackoff
	}
	return wait
}
