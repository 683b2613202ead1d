package cache

import (
	"context"
	"time"
)

// Connection attempts made by NewRedisCache before giving up. Redis often
// starts alongside the API server and may refuse the first pings.
const (
	connectAttempts = 4
	connectDelay    = 250 * time.Millisecond
)

// retry calls fn up to attempts times, doubling delay after each failure.
// It returns the last error, or ctx.Err() if ctx ends while waiting.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := 0; i < attempts; i++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}
