package utils

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

type Backoff struct {
	base       time.Duration
	maxRetries int
	jitter     time.Duration
}

func NewBackoff(base time.Duration, maxRetries int) Backoff {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return Backoff{base: base, maxRetries: maxRetries, jitter: base / 2}
}

type permanentError struct{ err error }

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do calls fn until it succeeds, returns a Permanent error, the retries run
// out or ctx ends. It returns the number of attempts made and the last error.
func (b Backoff) Do(ctx context.Context, fn func(i int) error) (int, error) {
	var err error
	for i := 0; i <= b.maxRetries; i++ {
		err = fn(i)
		if err == nil {
			return i + 1, nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return i + 1, perm.err
		}
		if i == b.maxRetries {
			return i + 1, err
		}
		t := time.Duration(1<<i) * b.base
		if b.jitter > 0 {
			t += rand.N(b.jitter)
		}
		select {
		case <-ctx.Done():
			return i + 1, errors.Join(err, ctx.Err())
		case <-time.After(t):
		}
	}
	return b.maxRetries + 1, err
}
