package db

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBackoff  = 50 * time.Millisecond
)

// WithRetry runs fn and retries it a bounded number of times when the failure
// looks transient (connection drops, pool exhaustion). Integrity violations
// and context cancellation surface immediately.
func WithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(
		defaultRetryAttempts-1,
		retry.NewExponential(defaultRetryBackoff),
	)

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if IsTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
