package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss is returned by [GetJSON] when the key is not cached.
	ErrCacheMiss = errors.New("cache miss")

	// ErrNetwork marks a failure to reach a remote backend.
	ErrNetwork = errors.New("network error")
)

// RetryableError marks an error that [RetryWithBackoff] should retry.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is wrapped in a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryDelay is the wait before the first retry; it doubles each time.
var retryDelay = time.Second

// RetryWithBackoff calls fn up to 3 times, doubling the delay between
// attempts. Only errors wrapped with [Retryable] are retried.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := retryDelay
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
